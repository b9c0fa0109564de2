package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
	"github.com/vncsmyrnk/voxen/internal/core/ports"
)

const voteColumns = `
	id, proposal_id, user_id, space_id, votes, vote_power,
	blockchain_tx_hash, vote_hash, created_at, updated_at
`

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// Upsert relies on the (proposal_id, user_id) unique constraint: a second
// ballot from the same user replaces the payload of the existing row and
// keeps its id and created_at.
func (r *voteRepository) Upsert(ctx context.Context, vote *domain.Vote) (*domain.Vote, error) {
	votes, err := encodeVotes(vote.Votes)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO votes (id, proposal_id, user_id, space_id, votes, vote_power, blockchain_tx_hash, vote_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (proposal_id, user_id) DO UPDATE SET
			votes = EXCLUDED.votes,
			vote_power = EXCLUDED.vote_power,
			blockchain_tx_hash = EXCLUDED.blockchain_tx_hash,
			vote_hash = EXCLUDED.vote_hash,
			updated_at = NOW()
		RETURNING ` + voteColumns

	stored, err := scanVote(r.db.QueryRowContext(ctx, query,
		vote.ID, vote.ProposalID, vote.UserID, vote.SpaceID, votes, vote.VotePower,
		vote.BlockchainTxHash, vote.VoteHash,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrProposalNotFound
		}
		return nil, wrap("upsert vote", err)
	}
	return stored, nil
}

func (r *voteRepository) GetByUser(ctx context.Context, proposalID, userID uuid.UUID) (*domain.Vote, error) {
	query := `SELECT ` + voteColumns + ` FROM votes WHERE proposal_id = $1 AND user_id = $2`

	vote, err := scanVote(r.db.QueryRowContext(ctx, query, proposalID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVoteNotFound
		}
		return nil, wrap("get vote", err)
	}
	return vote, nil
}

func (r *voteRepository) ListByProposal(ctx context.Context, proposalID uuid.UUID, limit, offset int) ([]*domain.Vote, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes WHERE proposal_id = $1`, proposalID).Scan(&total); err != nil {
		return nil, 0, wrap("count votes", err)
	}

	query := `
		SELECT ` + voteColumns + `
		FROM votes
		WHERE proposal_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, proposalID, limit, offset)
	if err != nil {
		return nil, 0, wrap("list votes", err)
	}
	defer rows.Close()

	votes := []*domain.Vote{}
	for rows.Next() {
		vote, err := scanVote(rows)
		if err != nil {
			return nil, 0, wrap("scan vote", err)
		}
		votes = append(votes, vote)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrap("iterate votes", err)
	}
	return votes, total, nil
}

func (r *voteRepository) ListAllByProposal(ctx context.Context, proposalID uuid.UUID) ([]domain.Vote, error) {
	query := `SELECT ` + voteColumns + ` FROM votes WHERE proposal_id = $1 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, proposalID)
	if err != nil {
		return nil, wrap("list votes", err)
	}
	defer rows.Close()

	var votes []domain.Vote
	for rows.Next() {
		vote, err := scanVote(rows)
		if err != nil {
			return nil, wrap("scan vote", err)
		}
		votes = append(votes, *vote)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("iterate votes", err)
	}
	return votes, nil
}

func scanVote(row rowScanner) (*domain.Vote, error) {
	var (
		v     domain.Vote
		votes []byte
	)
	err := row.Scan(
		&v.ID, &v.ProposalID, &v.UserID, &v.SpaceID, &votes, &v.VotePower,
		&v.BlockchainTxHash, &v.VoteHash, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.Votes = decodeVotes(votes)
	return &v, nil
}
