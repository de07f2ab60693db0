package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmamonov/hilo/internal/world"
)

func TestChoosePlayer(t *testing.T) {
	w := world.New(world.Options{Seed: 1})
	w.Init(5, []string{"P P E P=alice P=bob"})
	players := w.Players()
	require.Len(t, players, 2)
	alice, bob := players[0], players[1]
	require.Equal(t, "alice", alice.Name())
	require.Equal(t, "bob", bob.Name())

	none := map[uint64]*world.Actor{}
	assert.Same(t, bob, choosePlayer(w, "bob", none))
	assert.Same(t, alice, choosePlayer(w, "carol", none))
	assert.Same(t, alice, choosePlayer(w, "", none))

	oneClaimed := map[uint64]*world.Actor{1: alice}
	assert.Same(t, bob, choosePlayer(w, "carol", oneClaimed))
	// a named player is handed out even when already controlled
	assert.Same(t, alice, choosePlayer(w, "alice", oneClaimed))

	allClaimed := map[uint64]*world.Actor{1: alice, 2: bob}
	assert.Same(t, alice, choosePlayer(w, "carol", allClaimed))
}

func TestChoosePlayer_NoPlayers(t *testing.T) {
	w := world.New(world.Options{Seed: 1})
	w.Init(3, []string{"WEW"})
	assert.Nil(t, choosePlayer(w, "neo", map[uint64]*world.Actor{}))
}
