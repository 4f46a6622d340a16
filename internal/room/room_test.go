package room_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dom/draft-advisor/internal/recommender"
	"github.com/dom/draft-advisor/internal/room"
	"github.com/dom/draft-advisor/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dir := t.TempDir()
	rolePool := `{"roles": ["top","jungle","mid","carry","support"], "heroes": {
		"Ace": {"possibleRoles": ["mid"]}, "Bolt": {"possibleRoles": ["top"]}
	}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hero_role_pool.json"), []byte(rolePool), 0o644))
	tierList := `{"roles": {
		"mid": {"heroDetails": [{"hero":"Ace","tier":"A"}]},
		"top": {"heroDetails": [{"hero":"Bolt","tier":"A"}]}
	}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hero_tier_list.json"), []byte(tierList), 0o644))
	s, err := store.New(dir, true)
	require.NoError(t, err)
	return s
}

func TestHub_GetOrCreateReturnsSameRoom(t *testing.T) {
	hub := room.NewHub()
	a := hub.GetOrCreate("ABCD")
	b := hub.GetOrCreate("ABCD")
	assert.Same(t, a, b)
}

func TestRoom_ApplyBroadcastsToSubscribers(t *testing.T) {
	s := newTestStore(t)
	r := room.New("ABCD")
	sub := r.Subscribe()
	defer r.Unsubscribe(sub)

	action, _, err := r.Apply(s, s.Keys(), recommender.DefaultParams, "ace")
	require.NoError(t, err)
	require.NotNil(t, action)

	select {
	case update := <-sub:
		assert.Equal(t, "ABCD", update.RoomCode)
	case <-time.After(time.Second):
		t.Fatal("expected a broadcast update")
	}
}

func TestRoom_ApplyAdvancesState(t *testing.T) {
	s := newTestStore(t)
	r := room.New("ABCD")
	_, _, err := r.Apply(s, s.Keys(), recommender.DefaultParams, "ace")
	require.NoError(t, err)
	assert.Contains(t, r.State().Bans["ally"], "ace")
}
