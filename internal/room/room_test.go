// internal/room/room_test.go
package room

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aramdraft/aramdraft/internal/models"
)

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Len(t, code, CodeLength)
		for _, ch := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, ch), "unexpected character %q", ch)
		}
		seen[code] = true
	}
	// 200 draws from 36^6 colliding down to a handful would mean the
	// generator is broken.
	assert.Greater(t, len(seen), 190)
}

func TestStoreCreateGetDelete(t *testing.T) {
	s := NewStore()

	r, err := s.Create("Team Scrims")
	require.NoError(t, err)
	assert.Equal(t, "Team Scrims", r.Name)
	assert.Equal(t, models.StatusWaiting, r.Status)
	assert.Len(t, r.Code, CodeLength)
	assert.Empty(t, r.Players)

	assert.Same(t, r, s.Get(r.Code))
	assert.Equal(t, 1, s.Len())

	s.Delete(r.Code)
	assert.Nil(t, s.Get(r.Code))
	assert.Equal(t, 0, s.Len())

	// Deleting again is harmless.
	s.Delete(r.Code)
}

func TestStoreCodesAreUnique(t *testing.T) {
	s := NewStore()
	codes := make(map[string]bool)
	for i := 0; i < 50; i++ {
		r, err := s.Create("")
		require.NoError(t, err)
		assert.False(t, codes[r.Code])
		codes[r.Code] = true
	}
	assert.Equal(t, 50, s.Len())
}

func TestNewRoomDefaultName(t *testing.T) {
	r := New("ABC123", "")
	assert.Equal(t, models.DefaultRoomName, r.Name)
}

func TestRoomRoles(t *testing.T) {
	r := New("ABC123", "x")
	r.Players["c1"] = &models.Player{ConnID: "c1", Role: models.RoleInitiator}

	assert.True(t, r.HasRole(models.RoleInitiator))
	assert.False(t, r.HasRole(models.RoleJoiner))

	connID, p := r.PlayerByRole(models.RoleInitiator)
	require.NotNil(t, p)
	assert.Equal(t, "c1", connID)

	connID, p = r.PlayerByRole(models.RoleJoiner)
	assert.Nil(t, p)
	assert.Empty(t, connID)
}

func TestRoomReadyAccounting(t *testing.T) {
	r := New("ABC123", "x")
	assert.False(t, r.AllReady(), "an empty room is never all-ready")

	r.Players["c1"] = &models.Player{ConnID: "c1", Role: models.RoleInitiator, Ready: true}
	assert.True(t, r.AllReady())
	assert.Equal(t, 1, r.ReadyCount())

	r.Players["c2"] = &models.Player{ConnID: "c2", Role: models.RoleJoiner}
	assert.False(t, r.AllReady())
	assert.Equal(t, 1, r.ReadyCount())

	r.Players["c2"].Ready = true
	assert.True(t, r.AllReady())
	assert.Equal(t, 2, r.ReadyCount())
}

func TestRoomReset(t *testing.T) {
	r := New("ABC123", "x")
	r.Players["c1"] = &models.Player{ConnID: "c1", Role: models.RoleInitiator, Ready: true}
	r.Players["c2"] = &models.Player{ConnID: "c2", Role: models.RoleJoiner, Ready: true}
	r.Status = models.StatusGenerated
	r.MatchUUID = uuid.New()
	r.BlueTeam = []models.ChampionSummary{{ID: "Ahri"}}
	r.RedTeam = []models.ChampionSummary{{ID: "Jinx"}}

	r.Reset()

	assert.Equal(t, models.StatusWaiting, r.Status)
	assert.Equal(t, uuid.Nil, r.MatchUUID)
	assert.Nil(t, r.BlueTeam)
	assert.Nil(t, r.RedTeam)
	assert.Len(t, r.Players, 2)
	for _, p := range r.Players {
		assert.False(t, p.Ready)
	}
}

func TestConnStore(t *testing.T) {
	cs := NewConnStore()

	_, ok := cs.Resolve("c1")
	assert.False(t, ok)

	cs.Bind("c1", "ROOM01", models.RoleInitiator)
	cs.Bind("c2", "ROOM01", models.RoleJoiner)
	cs.Bind("c3", "ROOM02", models.RoleInitiator)

	b, ok := cs.Resolve("c1")
	require.True(t, ok)
	assert.Equal(t, "ROOM01", b.RoomCode)
	assert.Equal(t, models.RoleInitiator, b.Role)

	assert.ElementsMatch(t, []string{"c1", "c2"}, cs.ConnsInRoom("ROOM01"))
	assert.ElementsMatch(t, []string{"c3"}, cs.ConnsInRoom("ROOM02"))
	assert.Empty(t, cs.ConnsInRoom("ROOM03"))

	// Rebinding a connection moves it, never duplicates it.
	cs.Bind("c1", "ROOM02", models.RoleJoiner)
	assert.ElementsMatch(t, []string{"c2"}, cs.ConnsInRoom("ROOM01"))
	assert.ElementsMatch(t, []string{"c1", "c3"}, cs.ConnsInRoom("ROOM02"))

	cs.Unbind("c1")
	_, ok = cs.Resolve("c1")
	assert.False(t, ok)
	cs.Unbind("c1") // unknown id is a no-op
}

func TestConnStoreUnbindRoom(t *testing.T) {
	cs := NewConnStore()
	cs.Bind("c1", "ROOM01", models.RoleInitiator)
	cs.Bind("c2", "ROOM01", models.RoleJoiner)
	cs.Bind("c3", "ROOM02", models.RoleInitiator)

	cs.UnbindRoom("ROOM01")

	assert.Empty(t, cs.ConnsInRoom("ROOM01"))
	_, ok := cs.Resolve("c1")
	assert.False(t, ok)
	_, ok = cs.Resolve("c2")
	assert.False(t, ok)

	// Other rooms' bindings are untouched.
	_, ok = cs.Resolve("c3")
	assert.True(t, ok)

	cs.UnbindRoom("ROOM03") // unknown room is a no-op
}
