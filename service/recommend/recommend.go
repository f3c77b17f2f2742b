package recommend

import (
	"sort"

	"github.com/pulseclub/go-pulse/service/persist"
	"github.com/pulseclub/go-pulse/service/socialgraph"
)

// The thresholds below alter how single-hop suggestion scores are shaped. Candidates
// with at least wellConnectedMin mutuals get a quadratic bonus; candidates with very
// few friends get a reachability boost, and likely-unresponsive hubs get docked.
const (
	wellConnectedMin  = 3
	lowFriendCountMax = 10
	hubFriendCountMin = 100
)

// DefaultMaxSuggestions caps single-hop suggestion results when no limit is given
const DefaultMaxSuggestions = 10

// Suggestion is a ranked "people you may know" candidate
type Suggestion struct {
	UserID        persist.DBID `json:"user_id"`
	MutualFriends int          `json:"mutual_friends"`
	Score         float64      `json:"score"`
}

// SuggestFriends produces friend-of-friend suggestions for the target user, ordered
// by descending mutual-friend count and capped at maxSuggestions. A user with no
// friends gets an empty list; so does a user absent from the graph.
func SuggestFriends(g *socialgraph.Graph, targetID persist.DBID, maxSuggestions int) []Suggestion {
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}

	targetFriends := g.NeighborsOf(targetID)
	if len(targetFriends) == 0 {
		return []Suggestion{}
	}

	mutualCounts := make(map[persist.DBID]int)
	for friend := range targetFriends {
		for candidate := range g.NeighborsOf(friend) {
			if candidate == targetID || targetFriends[candidate] {
				continue
			}
			mutualCounts[candidate]++
		}
	}

	suggestions := make([]Suggestion, 0, len(mutualCounts))
	for userID, count := range mutualCounts {
		suggestions = append(suggestions, Suggestion{UserID: userID, MutualFriends: count})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].MutualFriends > suggestions[j].MutualFriends
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	for i := range suggestions {
		suggestions[i].Score = scoreSuggestion(g, suggestions[i])
	}

	return suggestions
}

func scoreSuggestion(g *socialgraph.Graph, s Suggestion) float64 {
	score := float64(s.MutualFriends * 10)

	// Quadratic bonus for well-connected suggestions
	if s.MutualFriends >= wellConnectedMin {
		score += float64(s.MutualFriends*s.MutualFriends) * 5
	}

	// Favor users with few friends, who are more likely to accept; penalize hubs
	friendCount := g.FriendCount(s.UserID)
	if friendCount < lowFriendCountMax {
		score += 20
	} else if friendCount > hubFriendCountMin {
		score -= 10
	}

	return score
}
