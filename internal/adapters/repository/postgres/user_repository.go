package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
	"github.com/vncsmyrnk/voxen/internal/core/ports"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) ports.UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, wallet_address, name, email, kyc_verified, created_at`

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(&user.ID, &user.WalletAddress, &user.Name, &user.Email, &user.KYCVerified, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByWallet returns nil without an error when no user owns the wallet.
func (r *UserRepository) GetByWallet(ctx context.Context, walletAddress string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE wallet_address = $1 AND deleted_at IS NULL`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, walletAddress))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get user by wallet", err)
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, wrap("get user", err)
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (wallet_address, name) VALUES ($1, $2) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, user.WalletAddress, user.Name).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return wrap("insert user", err)
	}
	return nil
}

func (r *UserRepository) LinkEmail(ctx context.Context, id uuid.UUID, email, name string) error {
	query := `
		UPDATE users
		SET email = $2, name = CASE WHEN name = '' THEN $3 ELSE name END
		WHERE id = $1 AND deleted_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, id, email, name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewValidationError("email", "account is already linked to another user")
		}
		return wrap("link email", err)
	}
	return r.requireRow(res, "link email")
}

func (r *UserRepository) SetKYCVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET kyc_verified = $2 WHERE id = $1 AND deleted_at IS NULL`, id, verified)
	if err != nil {
		return wrap("update kyc status", err)
	}
	return r.requireRow(res, "update kyc status")
}

func (r *UserRepository) requireRow(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return wrap(op, err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
