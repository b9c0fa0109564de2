package domain

import (
	"time"

	"github.com/google/uuid"
)

type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
)

func (r MemberRole) Valid() bool {
	return r == MemberRoleAdmin || r == MemberRoleMember
}

type Space struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   uuid.UUID `json:"creator_id"`
	RequiresKYC bool      `json:"requires_kyc"`
	CreatedAt   time.Time `json:"created_at"`
}

// Membership links a user to a space. VotingPower is the weight the
// member's ballots carry in the space's proposals.
type Membership struct {
	SpaceID     uuid.UUID  `json:"space_id"`
	UserID      uuid.UUID  `json:"user_id"`
	Role        MemberRole `json:"role"`
	VotingPower float64    `json:"voting_power"`
	JoinedAt    time.Time  `json:"joined_at"`
}

func (m *Membership) IsAdmin() bool {
	return m.Role == MemberRoleAdmin
}
