package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
)

// newTestDB starts a throwaway Postgres, applies the migrations and returns
// an open handle. The container is removed when the test ends.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Open(ctx, connStr, 5, zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = Migrate(ctx, db)
	require.NoError(t, err)

	return db
}

func seedUser(t *testing.T, db *sql.DB) *domain.User {
	t.Helper()

	user := &domain.User{WalletAddress: fmt.Sprintf("0x%040x", uuid.New().ID())}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func seedSpace(t *testing.T, db *sql.DB, owner *domain.User) *domain.Space {
	t.Helper()

	now := time.Now().UTC()
	space := &domain.Space{ID: uuid.New(), Name: "Test Space", CreatorID: owner.ID, CreatedAt: now}
	err := NewSpaceRepository(db).Create(context.Background(), space, &domain.Membership{
		SpaceID:     space.ID,
		UserID:      owner.ID,
		Role:        domain.MemberRoleAdmin,
		VotingPower: 1,
		JoinedAt:    now,
	})
	require.NoError(t, err)
	return space
}

func seedProposal(t *testing.T, db *sql.DB, space *domain.Space, votingType domain.VotingType, options ...string) *domain.Proposal {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	proposal := &domain.Proposal{
		ID:         uuid.New(),
		SpaceID:    space.ID,
		CreatorID:  space.CreatorID,
		Title:      "Proposal " + uuid.NewString()[:8],
		Options:    options,
		VotingType: votingType,
		StartDate:  now.Add(-time.Hour),
		EndDate:    now.Add(time.Hour),
		Status:     domain.ProposalStatusActive,
		Results:    domain.NewResults(len(options)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, NewProposalRepository(db).Save(context.Background(), proposal))
	return proposal
}
