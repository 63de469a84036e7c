package query

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/ecsquery/internal/core/models"
)

func TestBuildMembershipIndex(t *testing.T) {
	t.Run("Groups in first-seen order", func(t *testing.T) {
		m, err := BuildMembershipIndex([]models.Pair{
			models.P("e1", B),
			models.P("e2", A),
			models.P("e1", A),
			models.P("e1", B),
		})
		require.NoError(t, err)
		require.Len(t, m, 2)
		require.Equal(t, []models.ComponentTag{B, A, B}, m["e1"])
		require.Equal(t, []models.ComponentTag{A}, m["e2"])
	})

	t.Run("Empty input", func(t *testing.T) {
		m, err := BuildMembershipIndex(nil)
		require.NoError(t, err)
		require.Empty(t, m)
	})

	t.Run("Keys are the distinct entities", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		pairs := randomPairs(rng, 50, 6)

		m, err := BuildMembershipIndex(pairs)
		require.NoError(t, err)

		want := make(map[models.EntityID][]models.ComponentTag)
		for _, p := range pairs {
			want[p.Entity] = append(want[p.Entity], p.Tag)
		}
		require.Len(t, m, len(want))
		for id, tags := range want {
			require.Equal(t, tags, m[id])
		}
	})

	t.Run("Malformed pair", func(t *testing.T) {
		_, err := BuildMembershipIndex([]models.Pair{models.P("e1", A), models.P("", A)})
		require.ErrorIs(t, err, ErrInput)
		require.ErrorIs(t, err, ErrMalformedPair)

		var inputErr *InputError
		require.ErrorAs(t, err, &inputErr)
		require.Equal(t, 1, inputErr.Index)

		_, err = BuildMembershipIndex([]models.Pair{models.P("e1", models.NoTag)})
		require.ErrorIs(t, err, ErrMalformedPair)
	})
}
