package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
	"github.com/vncsmyrnk/voxen/internal/core/ports"
)

type spaceRepository struct {
	db *sql.DB
}

func NewSpaceRepository(db *sql.DB) ports.SpaceRepository {
	return &spaceRepository{
		db: db,
	}
}

func (r *spaceRepository) Create(ctx context.Context, space *domain.Space, owner *domain.Membership) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap("begin transaction", err)
	}
	defer tx.Rollback()

	querySpace := `
		INSERT INTO spaces (id, name, description, creator_id, requires_kyc, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = tx.ExecContext(ctx, querySpace, space.ID, space.Name, space.Description, space.CreatorID, space.RequiresKYC, space.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return wrap("insert space", err)
	}

	if err := insertMember(ctx, tx, owner); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return wrap("commit transaction", err)
	}
	return nil
}

func (r *spaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Space, error) {
	query := `
		SELECT id, name, description, creator_id, requires_kyc, created_at
		FROM spaces
		WHERE id = $1
	`
	var space domain.Space
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&space.ID, &space.Name, &space.Description, &space.CreatorID, &space.RequiresKYC, &space.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSpaceNotFound
		}
		return nil, wrap("get space", err)
	}
	return &space, nil
}

func (r *spaceRepository) AddMember(ctx context.Context, member *domain.Membership) error {
	return insertMember(ctx, r.db, member)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertMember(ctx context.Context, db execer, member *domain.Membership) error {
	query := `
		INSERT INTO space_members (space_id, user_id, role, voting_power, joined_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := db.ExecContext(ctx, query, member.SpaceID, member.UserID, member.Role, member.VotingPower, member.JoinedAt)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.ErrAlreadyMember
	case isForeignKeyViolation(err):
		return domain.ErrUserNotFound
	default:
		return wrap("insert member", err)
	}
}

func (r *spaceRepository) GetMembership(ctx context.Context, spaceID, userID uuid.UUID) (*domain.Membership, error) {
	query := `
		SELECT space_id, user_id, role, voting_power, joined_at
		FROM space_members
		WHERE space_id = $1 AND user_id = $2
	`
	var m domain.Membership
	err := r.db.QueryRowContext(ctx, query, spaceID, userID).Scan(&m.SpaceID, &m.UserID, &m.Role, &m.VotingPower, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotSpaceMember
		}
		return nil, wrap("get membership", err)
	}
	return &m, nil
}

func (r *spaceRepository) ListMembers(ctx context.Context, spaceID uuid.UUID) ([]*domain.Membership, error) {
	query := `
		SELECT space_id, user_id, role, voting_power, joined_at
		FROM space_members
		WHERE space_id = $1
		ORDER BY joined_at, user_id
	`
	rows, err := r.db.QueryContext(ctx, query, spaceID)
	if err != nil {
		return nil, wrap("list members", err)
	}
	defer rows.Close()

	members := []*domain.Membership{}
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.SpaceID, &m.UserID, &m.Role, &m.VotingPower, &m.JoinedAt); err != nil {
			return nil, wrap("scan member", err)
		}
		members = append(members, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("iterate members", err)
	}
	return members, nil
}

func (r *spaceRepository) UpdateVotingPower(ctx context.Context, spaceID, userID uuid.UUID, power float64) error {
	query := `UPDATE space_members SET voting_power = $3 WHERE space_id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, spaceID, userID, power)
	if err != nil {
		return wrap("update voting power", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrap("update voting power", err)
	}
	if affected == 0 {
		return domain.ErrNotSpaceMember
	}
	return nil
}
