// internal/engine/generate_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readyBoth(t *testing.T, env *testEnv, roomCode string) {
	t.Helper()
	require.NoError(t, env.eng.Join("conn-a", roomCode, true))
	require.NoError(t, env.eng.Join("conn-b", roomCode, false))
	require.NoError(t, env.eng.Ready("conn-a", roomCode))
	require.NoError(t, env.eng.Ready("conn-b", roomCode))
}

func TestGenerateExactMinimumCatalog(t *testing.T) {
	env := setupEngine(t, 2*PoolSize)
	r := env.createRoom(t, "")
	readyBoth(t, env, r.Code)

	m := env.store.waitForInsert(t)
	require.Len(t, m.BlueTeam, PoolSize)
	require.Len(t, m.RedTeam, PoolSize)

	// With exactly 30 champions the two pools partition the catalog.
	seen := make(map[string]bool, 2*PoolSize)
	for _, c := range append(m.BlueTeam, m.RedTeam...) {
		assert.False(t, seen[c.ID], "%s drawn twice", c.ID)
		seen[c.ID] = true
	}
	assert.Len(t, seen, 2*PoolSize)
}

func TestGenerateDoesNotReorderCatalog(t *testing.T) {
	cat := newFakeCatalog(40)
	before := make([]string, len(cat.champions))
	for i, c := range cat.champions {
		before[i] = c.ID
	}

	env := setupEngine(t, 0)
	env.eng.catalog = cat
	r := env.createRoom(t, "")
	readyBoth(t, env, r.Code)
	env.store.waitForInsert(t)

	for i, c := range cat.champions {
		assert.Equal(t, before[i], c.ID, "shuffle must act on a copy")
	}
}

func TestGenerateFreshPoolsEachRound(t *testing.T) {
	env := setupEngine(t, 160)
	r := env.createRoom(t, "")
	readyBoth(t, env, r.Code)
	first := env.store.waitForInsert(t)

	require.NoError(t, env.eng.Restart("conn-a", r.Code))
	require.NoError(t, env.eng.Ready("conn-a", r.Code))
	require.NoError(t, env.eng.Ready("conn-b", r.Code))
	second := env.store.waitForInsert(t)

	assert.NotEqual(t, first.UUID, second.UUID)

	// 15 draws out of 160 colliding on every slot is as good as impossible.
	same := true
	for i := range first.BlueTeam {
		if first.BlueTeam[i].ID != second.BlueTeam[i].ID {
			same = false
			break
		}
	}
	assert.False(t, same, "consecutive rounds must reshuffle")
}
