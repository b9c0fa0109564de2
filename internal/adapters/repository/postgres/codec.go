package postgres

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
)

// The functions below are the only place proposal options, results and
// ballots cross between Go values and their JSON columns.

func encodeOptions(options []string) (string, error) {
	if options == nil {
		options = []string{}
	}
	b, err := json.Marshal(options)
	if err != nil {
		return "", fmt.Errorf("failed to encode options: %w", err)
	}
	return string(b), nil
}

func decodeOptions(raw []byte) ([]string, error) {
	var options []string
	if err := json.Unmarshal(raw, &options); err != nil {
		return nil, fmt.Errorf("failed to decode options: %w", err)
	}
	if options == nil {
		options = []string{}
	}
	return options, nil
}

func encodeResults(results domain.Results) (string, error) {
	if results == nil {
		results = domain.Results{}
	}
	b, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("failed to encode results: %w", err)
	}
	return string(b), nil
}

// decodeResults reads a results column and reseeds it so the mapping has
// exactly one entry per option.
func decodeResults(raw []byte, optionCount int) (domain.Results, error) {
	var stored map[string]float64
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &stored); err != nil {
			return nil, fmt.Errorf("failed to decode results: %w", err)
		}
	}

	results := domain.NewResults(optionCount)
	for key, value := range stored {
		index, err := strconv.Atoi(key)
		if err != nil || index < 0 || index >= optionCount {
			return nil, fmt.Errorf("failed to decode results: unexpected option key %q", key)
		}
		results[key] = value
	}
	return results, nil
}

// encodeVotes returns the ballot text unchanged once it is known to be JSON.
func encodeVotes(votes json.RawMessage) (string, error) {
	if !json.Valid(votes) {
		return "", fmt.Errorf("failed to encode votes: payload is not valid JSON")
	}
	return string(votes), nil
}

func decodeVotes(raw []byte) json.RawMessage {
	return json.RawMessage(append([]byte(nil), raw...))
}
