package recommend

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseclub/go-pulse/service/persist"
	"github.com/pulseclub/go-pulse/service/socialgraph"
)

func accepted(a, b persist.DBID) persist.Friendship {
	return persist.Friendship{UserID: a, FriendID: b, Status: persist.FriendshipStatusAccepted}
}

func TestSuggestFriends(t *testing.T) {
	t.Run("suggests friend of friend with low-friend-count bonus", func(t *testing.T) {
		g := socialgraph.BuildGraph([]persist.Friendship{
			accepted("a", "b"),
			accepted("b", "c"),
			{UserID: "a", FriendID: "c", Status: persist.FriendshipStatusPending},
		})

		suggestions := SuggestFriends(g, "a", 0)

		require.Len(t, suggestions, 1)
		assert.Equal(t, persist.DBID("c"), suggestions[0].UserID)
		assert.Equal(t, 1, suggestions[0].MutualFriends)
		assert.Equal(t, float64(30), suggestions[0].Score)
	})

	t.Run("never suggests the target or existing friends", func(t *testing.T) {
		g := socialgraph.BuildGraph([]persist.Friendship{
			accepted("a", "b"),
			accepted("a", "c"),
			accepted("b", "c"),
			accepted("b", "d"),
		})

		suggestions := SuggestFriends(g, "a", 0)

		require.Len(t, suggestions, 1)
		assert.Equal(t, persist.DBID("d"), suggestions[0].UserID)
	})

	t.Run("orders by descending mutual count", func(t *testing.T) {
		// e shares two mutuals with a (b and c); f shares one (d)
		g := socialgraph.BuildGraph([]persist.Friendship{
			accepted("a", "b"),
			accepted("a", "c"),
			accepted("a", "d"),
			accepted("b", "e"),
			accepted("c", "e"),
			accepted("d", "f"),
		})

		suggestions := SuggestFriends(g, "a", 0)

		require.Len(t, suggestions, 2)
		assert.Equal(t, persist.DBID("e"), suggestions[0].UserID)
		assert.Equal(t, 2, suggestions[0].MutualFriends)
		assert.Equal(t, persist.DBID("f"), suggestions[1].UserID)
		assert.Equal(t, 1, suggestions[1].MutualFriends)
	})

	t.Run("applies quadratic bonus at three mutuals", func(t *testing.T) {
		edges := []persist.Friendship{}
		for _, mutual := range []persist.DBID{"m1", "m2", "m3"} {
			edges = append(edges, accepted("a", mutual), accepted(mutual, "e"))
		}
		g := socialgraph.BuildGraph(edges)

		suggestions := SuggestFriends(g, "a", 0)

		require.Len(t, suggestions, 1)
		// 3*10 base + 9*5 quadratic + 20 low-friend-count
		assert.Equal(t, float64(95), suggestions[0].Score)
	})

	t.Run("truncates to max suggestions", func(t *testing.T) {
		edges := []persist.Friendship{accepted("a", "hub")}
		for i := 0; i < 20; i++ {
			edges = append(edges, accepted("hub", persist.DBID(fmt.Sprintf("u%d", i))))
		}
		g := socialgraph.BuildGraph(edges)

		assert.Len(t, SuggestFriends(g, "a", 5), 5)
		assert.Len(t, SuggestFriends(g, "a", 0), DefaultMaxSuggestions)
	})

	t.Run("empty graph degrades to empty list", func(t *testing.T) {
		g := socialgraph.BuildGraph(nil)
		assert.Empty(t, SuggestFriends(g, "a", 0))
	})
}

func TestSuggestFriendsMultiHop(t *testing.T) {
	t.Run("records minimal hop distance", func(t *testing.T) {
		// a-b-c-d is a chain; c is also reachable through e at the same depth
		g := socialgraph.BuildGraph([]persist.Friendship{
			accepted("a", "b"),
			accepted("b", "c"),
			accepted("c", "d"),
			accepted("a", "e"),
			accepted("e", "c"),
		})

		suggestions := SuggestFriendsMultiHop(g, "a", 3, 0)

		byID := map[persist.DBID]MultiHopSuggestion{}
		for _, s := range suggestions {
			byID[s.UserID] = s
		}

		require.Contains(t, byID, persist.DBID("c"))
		assert.Equal(t, 2, byID["c"].HopDistance)
		assert.Equal(t, 2, byID["c"].MutualFriends)
		require.Contains(t, byID, persist.DBID("d"))
		assert.Equal(t, 3, byID["d"].HopDistance)
	})

	t.Run("excludes users beyond max hops", func(t *testing.T) {
		g := socialgraph.BuildGraph([]persist.Friendship{
			accepted("a", "b"),
			accepted("b", "c"),
			accepted("c", "d"),
		})

		suggestions := SuggestFriendsMultiHop(g, "a", 2, 0)

		for _, s := range suggestions {
			assert.LessOrEqual(t, s.HopDistance, 2)
			assert.NotEqual(t, persist.DBID("a"), s.UserID)
		}
	})

	t.Run("terminates on cyclic graphs", func(t *testing.T) {
		g := socialgraph.BuildGraph([]persist.Friendship{
			accepted("a", "b"),
			accepted("b", "c"),
			accepted("c", "a"),
		})

		suggestions := SuggestFriendsMultiHop(g, "a", 2, 0)
		assert.NotEmpty(t, suggestions)
	})

	t.Run("scores closer and better-connected candidates higher", func(t *testing.T) {
		g := socialgraph.BuildGraph([]persist.Friendship{
			accepted("a", "b"),
			accepted("a", "c"),
			accepted("b", "near"),
			accepted("c", "near"),
			accepted("near", "far"),
		})

		suggestions := SuggestFriendsMultiHop(g, "a", 3, 0)

		require.NotEmpty(t, suggestions)
		for i := 1; i < len(suggestions); i++ {
			assert.GreaterOrEqual(t, suggestions[i-1].Score, suggestions[i].Score)
		}
	})

	t.Run("no friends yields empty list", func(t *testing.T) {
		g := socialgraph.BuildGraph(nil)
		assert.Empty(t, SuggestFriendsMultiHop(g, "a", 0, 0))
	})
}

func TestSuggestByInterest(t *testing.T) {
	t.Run("computes jaccard similarity", func(t *testing.T) {
		interests := map[persist.DBID][]string{
			"a": {"workout", "run", "mental"},
			"b": {"run", "mental", "sleep"},
		}

		suggestions := SuggestByInterest("a", interests)

		require.Len(t, suggestions, 1)
		assert.Equal(t, persist.DBID("b"), suggestions[0].UserID)
		assert.InDelta(t, 0.5, suggestions[0].Similarity, 1e-9)
		assert.InDelta(t, 50, suggestions[0].Score, 1e-9)
		assert.Equal(t, []string{"mental", "run"}, suggestions[0].CommonInterests)
	})

	t.Run("identical non-empty sets score 1", func(t *testing.T) {
		interests := map[persist.DBID][]string{
			"a": {"workout", "run"},
			"b": {"run", "workout"},
		}

		suggestions := SuggestByInterest("a", interests)

		require.Len(t, suggestions, 1)
		assert.Equal(t, float64(1), suggestions[0].Similarity)
	})

	t.Run("disjoint and low-overlap candidates are excluded", func(t *testing.T) {
		interests := map[persist.DBID][]string{
			"a": {"workout"},
			"b": {"sleep"},
			"c": {"workout", "c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8", "c9"},
		}

		// c's overlap is 1/10 = 0.1, at the threshold and therefore excluded
		assert.Empty(t, SuggestByInterest("a", interests))
	})

	t.Run("empty interest sets do not divide by zero", func(t *testing.T) {
		interests := map[persist.DBID][]string{
			"a": {},
			"b": {},
		}

		assert.Empty(t, SuggestByInterest("a", interests))
	})

	t.Run("caps results at ten", func(t *testing.T) {
		interests := map[persist.DBID][]string{"a": {"workout"}}
		for i := 0; i < 25; i++ {
			interests[persist.DBID(fmt.Sprintf("u%d", i))] = []string{"workout"}
		}

		assert.Len(t, SuggestByInterest("a", interests), DefaultMaxInterestSuggestions)
	})
}

func TestSuggestHybrid(t *testing.T) {
	t.Run("combines mutual and interest components", func(t *testing.T) {
		g := socialgraph.BuildGraph([]persist.Friendship{
			accepted("a", "b"),
			accepted("b", "c"),
		})
		interests := map[persist.DBID][]string{
			"a": {"workout", "run"},
			"c": {"workout", "run"},
		}

		suggestions := SuggestHybrid(g, "a", interests, DefaultHybridWeights)

		require.Len(t, suggestions, 1)
		s := suggestions[0]
		assert.Equal(t, persist.DBID("c"), s.UserID)
		assert.Equal(t, 1, s.MutualFriends)
		assert.Equal(t, float64(1), s.Similarity)
		// 30 mutual score * 0.6 + 100 interest score * 0.4
		assert.InDelta(t, 58, s.TotalScore, 1e-9)
	})

	t.Run("missing component contributes zero", func(t *testing.T) {
		g := socialgraph.BuildGraph([]persist.Friendship{
			accepted("a", "b"),
			accepted("b", "c"),
		})
		interests := map[persist.DBID][]string{
			"a": {"workout"},
			"d": {"workout"},
		}

		suggestions := SuggestHybrid(g, "a", interests, DefaultHybridWeights)

		byID := map[persist.DBID]HybridSuggestion{}
		for _, s := range suggestions {
			byID[s.UserID] = s
		}

		require.Contains(t, byID, persist.DBID("c"))
		require.Contains(t, byID, persist.DBID("d"))
		assert.Zero(t, byID["c"].Similarity)
		assert.Zero(t, byID["d"].MutualFriends)
	})

	t.Run("never suggests the target", func(t *testing.T) {
		g := socialgraph.BuildGraph([]persist.Friendship{
			accepted("a", "b"),
			accepted("b", "c"),
		})
		interests := map[persist.DBID][]string{
			"a": {"workout"},
			"b": {"workout"},
		}

		for _, s := range SuggestHybrid(g, "a", interests, HybridWeights{}) {
			assert.NotEqual(t, persist.DBID("a"), s.UserID)
		}
	})
}
