package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

type VotingType string

const (
	VotingTypeSingle   VotingType = "single"
	VotingTypeMultiple VotingType = "multiple"
	VotingTypeWeighted VotingType = "weighted"
)

func (t VotingType) Valid() bool {
	switch t {
	case VotingTypeSingle, VotingTypeMultiple, VotingTypeWeighted:
		return true
	default:
		return false
	}
}

type ProposalStatus string

const (
	ProposalStatusDraft     ProposalStatus = "draft"
	ProposalStatusActive    ProposalStatus = "active"
	ProposalStatusClosed    ProposalStatus = "closed"
	ProposalStatusCancelled ProposalStatus = "cancelled"
)

func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalStatusDraft, ProposalStatusActive, ProposalStatusClosed, ProposalStatusCancelled:
		return true
	default:
		return false
	}
}

// proposalTransitions lists the statuses reachable from each status.
// closed and cancelled are terminal.
var proposalTransitions = map[ProposalStatus][]ProposalStatus{
	ProposalStatusDraft:  {ProposalStatusActive, ProposalStatusCancelled},
	ProposalStatusActive: {ProposalStatusClosed, ProposalStatusCancelled},
}

// CanTransitionTo reports whether a proposal in status s may move to next.
// Setting the current status again is a no-op and always allowed.
func (s ProposalStatus) CanTransitionTo(next ProposalStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range proposalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Results maps an option index ("0".."n-1") to its accumulated weight.
type Results map[string]float64

// NewResults returns a results mapping with one zero entry per option.
func NewResults(optionCount int) Results {
	results := make(Results, optionCount)
	for i := 0; i < optionCount; i++ {
		results[OptionKey(i)] = 0
	}
	return results
}

func OptionKey(index int) string {
	return strconv.Itoa(index)
}

type Proposal struct {
	ID                   uuid.UUID      `json:"id"`
	SpaceID              uuid.UUID      `json:"space_id"`
	CreatorID            uuid.UUID      `json:"creator_id"`
	Title                string         `json:"title"`
	Description          string         `json:"description"`
	Options              []string       `json:"options"`
	VotingType           VotingType     `json:"voting_type"`
	StartDate            time.Time      `json:"start_date"`
	EndDate              time.Time      `json:"end_date"`
	Status               ProposalStatus `json:"status"`
	Results              Results        `json:"results"`
	VoteCount            int            `json:"vote_count"`
	BlockchainProposalID *int64         `json:"blockchain_proposal_id,omitempty"`
	TxHash               *string        `json:"tx_hash,omitempty"`
	ContractAddress      *string        `json:"contract_address,omitempty"`
	IsBlockchain         bool           `json:"is_blockchain"`
	BlockchainVerified   bool           `json:"blockchain_verified"`
	ContentHash          *string        `json:"content_hash,omitempty"`
	HashVerified         bool           `json:"hash_verified"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// IsOpenAt reports whether votes may be cast at t.
func (p *Proposal) IsOpenAt(t time.Time) bool {
	return !t.Before(p.StartDate) && !t.After(p.EndDate)
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (o SortOrder) Valid() bool {
	return o == SortAsc || o == SortDesc
}
