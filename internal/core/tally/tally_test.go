package tally

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
)

func vote(power float64, payload string) domain.Vote {
	return domain.Vote{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Votes:     json.RawMessage(payload),
		VotePower: power,
	}
}

func TestCompute_NoVotesSeedsEveryOption(t *testing.T) {
	outcome := Compute(domain.VotingTypeSingle, 4, nil)

	assert.Equal(t, domain.Results{"0": 0, "1": 0, "2": 0, "3": 0}, outcome.Results)
	assert.Equal(t, 0, outcome.VoteCount)
	assert.Empty(t, outcome.Skipped)
}

func TestCompute_Single(t *testing.T) {
	votes := []domain.Vote{
		vote(1, `{"option": 0}`),
		vote(2, `{"option": 0}`),
		vote(1, `{"option": 2}`),
	}

	outcome := Compute(domain.VotingTypeSingle, 3, votes)

	assert.Equal(t, domain.Results{"0": 3, "1": 0, "2": 1}, outcome.Results)
	assert.Equal(t, 3, outcome.VoteCount)
}

func TestCompute_SingleAcceptsStringIndex(t *testing.T) {
	outcome := Compute(domain.VotingTypeSingle, 2, []domain.Vote{vote(1, `{"option": "1"}`)})

	assert.Equal(t, domain.Results{"0": 0, "1": 1}, outcome.Results)
}

func TestCompute_Weighted(t *testing.T) {
	outcome := Compute(domain.VotingTypeWeighted, 2, []domain.Vote{vote(10, `{"0": 0.5, "1": 0.5}`)})

	assert.Equal(t, domain.Results{"0": 5, "1": 5}, outcome.Results)
}

func TestCompute_Multiple(t *testing.T) {
	outcome := Compute(domain.VotingTypeMultiple, 3, []domain.Vote{vote(1, `[0, 1]`)})

	assert.Equal(t, domain.Results{"0": 1, "1": 1, "2": 0}, outcome.Results)
}

func TestCompute_MultipleCountsDuplicateSelectionOnce(t *testing.T) {
	outcome := Compute(domain.VotingTypeMultiple, 2, []domain.Vote{vote(3, `[1, 1, 1]`)})

	assert.Equal(t, domain.Results{"0": 0, "1": 3}, outcome.Results)
}

func TestCompute_MalformedVotesContributeNothing(t *testing.T) {
	votes := []domain.Vote{
		vote(1, `{"option": 1}`),
		vote(5, `not json at all`),
		vote(5, `"{broken"`),
		vote(5, `{"choice": 0}`),
		vote(5, `[0, 1]`),
		vote(5, `{"option": 7}`),
		vote(5, `{"option": 1.5}`),
		vote(5, ``),
	}

	var outcome Outcome
	require.NotPanics(t, func() {
		outcome = Compute(domain.VotingTypeSingle, 2, votes)
	})

	assert.Equal(t, domain.Results{"0": 0, "1": 1}, outcome.Results)
	assert.Equal(t, len(votes), outcome.VoteCount)
	assert.Len(t, outcome.Skipped, len(votes)-1)
}

func TestCompute_StringEncodedBallot(t *testing.T) {
	outcome := Compute(domain.VotingTypeWeighted, 2, []domain.Vote{vote(4, `"{\"0\": 0.25, \"1\": 0.75}"`)})

	assert.Equal(t, domain.Results{"0": 1, "1": 3}, outcome.Results)
	assert.Empty(t, outcome.Skipped)
}

func TestCompute_WeightedRejectsNegativeWeights(t *testing.T) {
	votes := []domain.Vote{
		vote(10, `{"0": 1.5, "1": -0.5}`),
		vote(2, `{"1": 1}`),
	}

	outcome := Compute(domain.VotingTypeWeighted, 2, votes)

	assert.Equal(t, domain.Results{"0": 0, "1": 2}, outcome.Results)
	require.Len(t, outcome.Skipped, 1)
	assert.Equal(t, votes[0].ID, outcome.Skipped[0].VoteID)
}

func TestCompute_WeightedAliasedKeysAreSkipped(t *testing.T) {
	for i := 0; i < 50; i++ {
		votes := []domain.Vote{
			vote(10, `{"0": 0.2, "00": 0.8}`),
			vote(10, `{"+0": 1}`),
			vote(1, `{"1": 1}`),
		}

		outcome := Compute(domain.VotingTypeWeighted, 2, votes)

		require.Equal(t, domain.Results{"0": 0, "1": 1}, outcome.Results)
		require.Len(t, outcome.Skipped, 2)
	}
}

func TestCompute_NonFiniteContributionIsSkipped(t *testing.T) {
	votes := []domain.Vote{
		vote(1, `{"0": 1}`),
		vote(2, `{"1": 1e308}`),
	}

	outcome := Compute(domain.VotingTypeWeighted, 2, votes)

	assert.Equal(t, domain.Results{"0": 1, "1": 0}, outcome.Results)
	require.Len(t, outcome.Skipped, 1)
	assert.Equal(t, votes[1].ID, outcome.Skipped[0].VoteID)

	_, err := json.Marshal(outcome.Results)
	require.NoError(t, err)
}

func TestCompute_BallotOverflowingTotalIsSkipped(t *testing.T) {
	votes := []domain.Vote{
		vote(1.5, `{"0": 1e308}`),
		vote(1.5, `{"0": 1e308}`),
	}

	outcome := Compute(domain.VotingTypeWeighted, 2, votes)

	assert.Equal(t, 1.5e308, outcome.Results["0"])
	require.Len(t, outcome.Skipped, 1)
	assert.Equal(t, votes[1].ID, outcome.Skipped[0].VoteID)
	assert.Contains(t, outcome.Skipped[0].Reason, "float64 range")

	_, err := json.Marshal(outcome.Results)
	require.NoError(t, err)
}

func TestCompute_IntegralFloatIndex(t *testing.T) {
	assert.Equal(t,
		domain.Results{"0": 0, "1": 2},
		Compute(domain.VotingTypeSingle, 2, []domain.Vote{vote(2, `{"option": 1.0}`)}).Results,
	)
	assert.Equal(t,
		domain.Results{"0": 0, "1": 3},
		Compute(domain.VotingTypeMultiple, 2, []domain.Vote{vote(3, `[1.0]`)}).Results,
	)
}

func TestCompute_NegativeVotePowerIsSkipped(t *testing.T) {
	outcome := Compute(domain.VotingTypeSingle, 2, []domain.Vote{vote(-3, `{"option": 0}`)})

	assert.Equal(t, domain.Results{"0": 0, "1": 0}, outcome.Results)
	assert.Len(t, outcome.Skipped, 1)
}

func TestCompute_OrderIndependent(t *testing.T) {
	votes := []domain.Vote{
		vote(0.1, `{"0": 0.3, "1": 0.7}`),
		vote(0.2, `{"0": 0.1, "2": 0.9}`),
		vote(0.3, `{"1": 1}`),
		vote(1.7, `{"0": 0.33, "1": 0.33, "2": 0.34}`),
		vote(12.25, `{"2": 0.6, "0": 0.4}`),
		vote(3, `garbage`),
	}

	want, err := json.Marshal(Compute(domain.VotingTypeWeighted, 3, votes).Results)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := append([]domain.Vote(nil), votes...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := json.Marshal(Compute(domain.VotingTypeWeighted, 3, shuffled).Results)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got))
	}
}

func TestCompute_Idempotent(t *testing.T) {
	votes := []domain.Vote{
		vote(1, `[0, 2]`),
		vote(2, `[1]`),
	}

	first := Compute(domain.VotingTypeMultiple, 3, votes)
	second := Compute(domain.VotingTypeMultiple, 3, votes)

	assert.Equal(t, first.Results, second.Results)
	assert.Equal(t, first.VoteCount, second.VoteCount)
}

func TestCompute_UnknownVotingType(t *testing.T) {
	outcome := Compute(domain.VotingType("ranked"), 2, []domain.Vote{vote(1, `{"option": 0}`)})

	assert.Equal(t, domain.Results{"0": 0, "1": 0}, outcome.Results)
	assert.Len(t, outcome.Skipped, 1)
}
