package socialgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pulseclub/go-pulse/service/persist"
)

func TestBuildGraph(t *testing.T) {
	t.Run("accepted edges are symmetric", func(t *testing.T) {
		g := BuildGraph([]persist.Friendship{
			{UserID: "a", FriendID: "b", Status: persist.FriendshipStatusAccepted},
			{UserID: "b", FriendID: "c", Status: persist.FriendshipStatusAccepted},
		})

		assert.True(t, g.Neighbors["a"]["b"])
		assert.True(t, g.Neighbors["b"]["a"])
		assert.True(t, g.Neighbors["b"]["c"])
		assert.True(t, g.Neighbors["c"]["b"])
		assert.Equal(t, 2, g.Metadata.TotalEdges)
		assert.Equal(t, 2, g.Metadata.MaxDegree)
	})

	t.Run("pending and declined edges are skipped", func(t *testing.T) {
		g := BuildGraph([]persist.Friendship{
			{UserID: "a", FriendID: "b", Status: persist.FriendshipStatusAccepted},
			{UserID: "b", FriendID: "c", Status: persist.FriendshipStatusAccepted},
			{UserID: "a", FriendID: "c", Status: persist.FriendshipStatusPending},
			{UserID: "a", FriendID: "d", Status: persist.FriendshipStatusDeclined},
		})

		assert.False(t, g.Neighbors["a"]["c"])
		assert.False(t, g.Neighbors["c"]["a"])
		assert.NotContains(t, g.Neighbors, persist.DBID("d"))
		assert.Equal(t, 2, g.Metadata.TotalEdges)
	})

	t.Run("duplicate edges are a no-op", func(t *testing.T) {
		g := BuildGraph([]persist.Friendship{
			{UserID: "a", FriendID: "b", Status: persist.FriendshipStatusAccepted},
			{UserID: "a", FriendID: "b", Status: persist.FriendshipStatusAccepted},
			{UserID: "b", FriendID: "a", Status: persist.FriendshipStatusAccepted},
		})

		assert.Equal(t, 1, g.Metadata.TotalEdges)
		assert.Equal(t, 1, g.FriendCount("a"))
		assert.Equal(t, 1, g.FriendCount("b"))
	})

	t.Run("nil input yields an empty graph", func(t *testing.T) {
		g := BuildGraph(nil)

		assert.Empty(t, g.Neighbors)
		assert.Zero(t, g.Metadata.TotalEdges)
	})

	t.Run("unknown users get an empty neighbor set", func(t *testing.T) {
		g := BuildGraph([]persist.Friendship{
			{UserID: "a", FriendID: "b", Status: persist.FriendshipStatusAccepted},
		})

		assert.Empty(t, g.NeighborsOf("nobody"))
		assert.Zero(t, g.FriendCount("nobody"))
	})
}
