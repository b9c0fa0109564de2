package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type Vote struct {
	ID               uuid.UUID       `json:"id"`
	ProposalID       uuid.UUID       `json:"proposal_id"`
	UserID           uuid.UUID       `json:"user_id"`
	SpaceID          uuid.UUID       `json:"space_id"`
	Votes            json.RawMessage `json:"votes"`
	VotePower        float64         `json:"vote_power"`
	BlockchainTxHash *string         `json:"blockchain_tx_hash,omitempty"`
	VoteHash         *string         `json:"vote_hash,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

const DefaultVotePower = 1.0

// VotePayload is the decoded form of a ballot. The concrete type depends on
// the proposal's voting type: SingleChoice, MultipleChoice, Weighted, or
// NoContribution when the stored payload cannot be read as that type.
type VotePayload interface {
	votePayload()
}

type SingleChoice struct {
	Option int
}

type MultipleChoice struct {
	Options []int
}

type Weighted struct {
	Weights map[int]float64
}

type NoContribution struct {
	Reason string
}

func (SingleChoice) votePayload()   {}
func (MultipleChoice) votePayload() {}
func (Weighted) votePayload()       {}
func (NoContribution) votePayload() {}

// ParseVotes decodes a stored ballot for the given voting type. It never
// fails: anything that does not match the expected shape comes back as
// NoContribution.
func ParseVotes(votingType VotingType, raw json.RawMessage) VotePayload {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return NoContribution{Reason: "empty payload"}
	}

	// Older clients stored the ballot as a JSON-encoded string.
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return NoContribution{Reason: fmt.Sprintf("invalid string payload: %v", err)}
		}
		inner = string(bytes.TrimSpace([]byte(inner)))
		if inner == "" || inner[0] == '"' {
			return NoContribution{Reason: "string payload does not contain a ballot"}
		}
		return ParseVotes(votingType, json.RawMessage(inner))
	}

	switch votingType {
	case VotingTypeSingle:
		return parseSingle(raw)
	case VotingTypeMultiple:
		return parseMultiple(raw)
	case VotingTypeWeighted:
		return parseWeighted(raw)
	default:
		return NoContribution{Reason: fmt.Sprintf("unknown voting type %q", votingType)}
	}
}

func parseSingle(raw json.RawMessage) VotePayload {
	var fields map[string]json.RawMessage
	if err := decodeNumbers(raw, &fields); err != nil {
		return NoContribution{Reason: fmt.Sprintf("single choice: %v", err)}
	}
	optionRaw, ok := fields["option"]
	if !ok {
		return NoContribution{Reason: "single choice: missing option"}
	}
	option, err := parseIndex(optionRaw)
	if err != nil {
		return NoContribution{Reason: fmt.Sprintf("single choice: %v", err)}
	}
	return SingleChoice{Option: option}
}

func parseMultiple(raw json.RawMessage) VotePayload {
	var items []json.RawMessage
	if err := decodeNumbers(raw, &items); err != nil {
		return NoContribution{Reason: fmt.Sprintf("multiple choice: %v", err)}
	}

	seen := make(map[int]struct{}, len(items))
	options := make([]int, 0, len(items))
	for _, item := range items {
		index, err := parseIndex(item)
		if err != nil {
			return NoContribution{Reason: fmt.Sprintf("multiple choice: %v", err)}
		}
		if _, dup := seen[index]; dup {
			continue
		}
		seen[index] = struct{}{}
		options = append(options, index)
	}
	return MultipleChoice{Options: options}
}

func parseWeighted(raw json.RawMessage) VotePayload {
	var fields map[string]json.Number
	if err := decodeNumbers(raw, &fields); err != nil {
		return NoContribution{Reason: fmt.Sprintf("weighted: %v", err)}
	}

	weights := make(map[int]float64, len(fields))
	for key, value := range fields {
		// Keys must be canonical so "0", "00" and "+0" never name the same option.
		index, err := strconv.Atoi(key)
		if err != nil || strconv.Itoa(index) != key {
			return NoContribution{Reason: fmt.Sprintf("weighted: invalid option key %q", key)}
		}
		weight, err := value.Float64()
		if err != nil {
			return NoContribution{Reason: fmt.Sprintf("weighted: invalid weight for option %d", index)}
		}
		weights[index] = weight
	}
	return Weighted{Weights: weights}
}

// parseIndex accepts an integral JSON number (1 or 1.0) or a string holding
// one.
func parseIndex(raw json.RawMessage) (int, error) {
	var value any
	if err := decodeNumbers(raw, &value); err != nil {
		return 0, err
	}

	var text string
	switch v := value.(type) {
	case json.Number:
		text = v.String()
	case string:
		text = v
	default:
		return 0, fmt.Errorf("option index must be a number, got %s", string(raw))
	}

	if index, err := strconv.Atoi(text); err == nil {
		return index, nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("invalid option index %q", text)
	}
	return int(f), nil
}

func decodeNumbers(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(v)
}

// IsBallotJSON reports whether raw is a JSON object or array, the only
// shapes a ballot can take.
func IsBallotJSON(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || !json.Valid(raw) {
		return false
	}
	return raw[0] == '{' || raw[0] == '['
}
