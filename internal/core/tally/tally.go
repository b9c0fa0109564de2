// Package tally computes proposal results from the full set of stored votes.
//
// Compute is pure: it reads nothing but its arguments, and the results it
// returns do not depend on the order of the votes. Weights are accumulated
// as exact decimals and converted to float64 once at the end, so summing the
// same ballots in a different order yields byte-identical results. The one
// exception is a ballot that would push a total past the float64 range: it
// is skipped, and which ballot that is depends on the order votes arrive in
// (ListAllByProposal orders them by creation time).
package tally

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
)

// SkippedVote describes a ballot that contributed nothing to the tally.
type SkippedVote struct {
	VoteID uuid.UUID
	UserID uuid.UUID
	Reason string
}

type Outcome struct {
	Results domain.Results
	// VoteCount is the number of vote records, including skipped ones.
	VoteCount int
	Skipped   []SkippedVote
}

// Compute tallies votes for a proposal with optionCount options.
//
//   - single:   the voter's power goes to the chosen option.
//   - multiple: the voter's full power goes to every selected option.
//   - weighted: each option receives power * weight.
//
// A ballot that cannot be decoded for votingType, references an option
// outside 0..optionCount-1, carries a negative weight, or has an unusable
// vote power is skipped as a whole and reported in Outcome.Skipped.
func Compute(votingType domain.VotingType, optionCount int, votes []domain.Vote) Outcome {
	if optionCount < 0 {
		optionCount = 0
	}

	acc := make([]decimal.Decimal, optionCount)
	for i := range acc {
		acc[i] = decimal.Zero
	}

	var skipped []SkippedVote
	for i := range votes {
		vote := &votes[i]
		contribution, reason := ballotContribution(votingType, optionCount, vote)
		if reason != "" {
			skipped = append(skipped, SkippedVote{VoteID: vote.ID, UserID: vote.UserID, Reason: reason})
			continue
		}
		if option, ok := overflows(acc, contribution); ok {
			reason := fmt.Sprintf("total for option %d would exceed the float64 range", option)
			skipped = append(skipped, SkippedVote{VoteID: vote.ID, UserID: vote.UserID, Reason: reason})
			continue
		}
		for option, weight := range contribution {
			acc[option] = acc[option].Add(weight)
		}
	}

	results := make(domain.Results, optionCount)
	for i, total := range acc {
		results[domain.OptionKey(i)] = total.InexactFloat64()
	}

	return Outcome{
		Results:   results,
		VoteCount: len(votes),
		Skipped:   skipped,
	}
}

// ballotContribution returns the weight a single vote adds per option, or a
// non-empty reason when the vote must be skipped.
func ballotContribution(votingType domain.VotingType, optionCount int, vote *domain.Vote) (map[int]decimal.Decimal, string) {
	if math.IsNaN(vote.VotePower) || math.IsInf(vote.VotePower, 0) || vote.VotePower < 0 {
		return nil, fmt.Sprintf("unusable vote power %v", vote.VotePower)
	}
	power := decimal.NewFromFloat(vote.VotePower)

	switch payload := domain.ParseVotes(votingType, vote.Votes).(type) {
	case domain.SingleChoice:
		if !inRange(payload.Option, optionCount) {
			return nil, fmt.Sprintf("option %d out of range", payload.Option)
		}
		return map[int]decimal.Decimal{payload.Option: power}, ""

	case domain.MultipleChoice:
		contribution := make(map[int]decimal.Decimal, len(payload.Options))
		for _, option := range payload.Options {
			if !inRange(option, optionCount) {
				return nil, fmt.Sprintf("option %d out of range", option)
			}
			contribution[option] = power
		}
		return contribution, ""

	case domain.Weighted:
		contribution := make(map[int]decimal.Decimal, len(payload.Weights))
		for option, weight := range payload.Weights {
			if !inRange(option, optionCount) {
				return nil, fmt.Sprintf("option %d out of range", option)
			}
			if weight < 0 {
				return nil, fmt.Sprintf("negative weight for option %d", option)
			}
			c := power.Mul(decimal.NewFromFloat(weight))
			if !finite(c) {
				return nil, fmt.Sprintf("contribution for option %d is not a finite number", option)
			}
			contribution[option] = c
		}
		return contribution, ""

	case domain.NoContribution:
		return nil, payload.Reason

	default:
		return nil, fmt.Sprintf("unsupported payload %T", payload)
	}
}

// overflows reports an option whose running total would stop being
// representable as a finite float64 once contribution is added.
func overflows(acc []decimal.Decimal, contribution map[int]decimal.Decimal) (int, bool) {
	for option, weight := range contribution {
		if !finite(acc[option].Add(weight)) {
			return option, true
		}
	}
	return 0, false
}

func finite(d decimal.Decimal) bool {
	return !math.IsInf(d.InexactFloat64(), 0)
}

func inRange(option, optionCount int) bool {
	return option >= 0 && option < optionCount
}
