package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
	"github.com/vncsmyrnk/voxen/internal/core/ports"
)

const proposalColumns = `
	id, space_id, creator_id, title, description, options, voting_type,
	start_date, end_date, status, results, vote_count,
	blockchain_proposal_id, tx_hash, contract_address, is_blockchain,
	blockchain_verified, content_hash, hash_verified, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

type proposalRepository struct {
	db *sql.DB
}

func NewProposalRepository(db *sql.DB) ports.ProposalRepository {
	return &proposalRepository{
		db: db,
	}
}

func (r *proposalRepository) Save(ctx context.Context, proposal *domain.Proposal) error {
	options, err := encodeOptions(proposal.Options)
	if err != nil {
		return err
	}
	results, err := encodeResults(proposal.Results)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO proposals (` + proposalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`
	_, err = r.db.ExecContext(ctx, query,
		proposal.ID, proposal.SpaceID, proposal.CreatorID, proposal.Title, proposal.Description,
		options, proposal.VotingType, proposal.StartDate, proposal.EndDate, proposal.Status,
		results, proposal.VoteCount, proposal.BlockchainProposalID, proposal.TxHash,
		proposal.ContractAddress, proposal.IsBlockchain, proposal.BlockchainVerified,
		proposal.ContentHash, proposal.HashVerified, proposal.CreatedAt, proposal.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrSpaceNotFound
		}
		return wrap("insert proposal", err)
	}
	return nil
}

func (r *proposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE id = $1`

	proposal, err := scanProposal(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProposalNotFound
		}
		return nil, wrap("get proposal", err)
	}
	return proposal, nil
}

func (r *proposalRepository) List(ctx context.Context, filter ports.ProposalFilter) ([]*domain.Proposal, int, error) {
	order := "DESC"
	if filter.Sort == domain.SortAsc {
		order = "ASC"
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM proposals WHERE space_id = $1 AND ($2::text = '' OR status = $2)`
	if err := r.db.QueryRowContext(ctx, countQuery, filter.SpaceID, string(filter.Status)).Scan(&total); err != nil {
		return nil, 0, wrap("count proposals", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM proposals
		WHERE space_id = $1 AND ($2::text = '' OR status = $2)
		ORDER BY created_at %s, id %s
		LIMIT $3 OFFSET $4
	`, proposalColumns, order, order)

	rows, err := r.db.QueryContext(ctx, query, filter.SpaceID, string(filter.Status), filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, wrap("list proposals", err)
	}
	defer rows.Close()

	proposals, err := scanProposals(rows)
	if err != nil {
		return nil, 0, err
	}
	return proposals, total, nil
}

func (r *proposalRepository) ListByStatus(ctx context.Context, status domain.ProposalStatus) ([]*domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE status = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, wrap("list proposals by status", err)
	}
	defer rows.Close()

	return scanProposals(rows)
}

func (r *proposalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProposalStatus) error {
	query := `UPDATE proposals SET status = $2, updated_at = NOW() WHERE id = $1`
	return r.execOne(ctx, "update proposal status", query, id, status)
}

func (r *proposalRepository) UpdateResults(ctx context.Context, id uuid.UUID, results domain.Results, voteCount int) error {
	encoded, err := encodeResults(results)
	if err != nil {
		return err
	}

	query := `UPDATE proposals SET results = $2, vote_count = $3, updated_at = NOW() WHERE id = $1`
	return r.execOne(ctx, "update proposal results", query, id, encoded, voteCount)
}

func (r *proposalRepository) UpdateVerification(ctx context.Context, id uuid.UUID, contentHash string, hashVerified, blockchainVerified bool) error {
	query := `
		UPDATE proposals
		SET content_hash = $2, hash_verified = $3, blockchain_verified = $4, updated_at = NOW()
		WHERE id = $1
	`
	return r.execOne(ctx, "update proposal verification", query, id, contentHash, hashVerified, blockchainVerified)
}

func (r *proposalRepository) execOne(ctx context.Context, op, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return wrap(op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrap(op, err)
	}
	if affected == 0 {
		return domain.ErrProposalNotFound
	}
	return nil
}

func scanProposals(rows *sql.Rows) ([]*domain.Proposal, error) {
	proposals := []*domain.Proposal{}
	for rows.Next() {
		proposal, err := scanProposal(rows)
		if err != nil {
			return nil, wrap("scan proposal", err)
		}
		proposals = append(proposals, proposal)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("iterate proposals", err)
	}
	return proposals, nil
}

func scanProposal(row rowScanner) (*domain.Proposal, error) {
	var (
		p       domain.Proposal
		options []byte
		results []byte
	)
	err := row.Scan(
		&p.ID, &p.SpaceID, &p.CreatorID, &p.Title, &p.Description, &options, &p.VotingType,
		&p.StartDate, &p.EndDate, &p.Status, &results, &p.VoteCount,
		&p.BlockchainProposalID, &p.TxHash, &p.ContractAddress, &p.IsBlockchain,
		&p.BlockchainVerified, &p.ContentHash, &p.HashVerified, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if p.Options, err = decodeOptions(options); err != nil {
		return nil, err
	}
	if p.Results, err = decodeResults(results, len(p.Options)); err != nil {
		return nil, err
	}
	return &p, nil
}
