package recommend

import (
	"sort"

	"github.com/pulseclub/go-pulse/service/persist"
	"github.com/pulseclub/go-pulse/service/socialgraph"
)

const (
	// DefaultMaxHops bounds how far the breadth-first exploration reaches
	DefaultMaxHops = 2
	// DefaultMaxMultiHopSuggestions caps multi-hop results when no limit is given
	DefaultMaxMultiHopSuggestions = 15
)

// MultiHopSuggestion is a suggestion discovered by breadth-first exploration. The
// MutualFriends field counts the BFS edges that reached the candidate, which can
// overcount distinct mutual connections; treat it as a connectivity heuristic rather
// than a strict cardinality.
type MultiHopSuggestion struct {
	UserID        persist.DBID `json:"user_id"`
	MutualFriends int          `json:"mutual_friends"`
	HopDistance   int          `json:"hop_distance"`
	Score         float64      `json:"score"`
}

// SuggestFriendsMultiHop explores the graph breadth-first from the target user,
// recording the minimum hop distance at which each user is first reached. Users
// reached within maxHops rank by mutual connectivity minus a distance penalty.
func SuggestFriendsMultiHop(g *socialgraph.Graph, targetID persist.DBID, maxHops, maxSuggestions int) []MultiHopSuggestion {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxMultiHopSuggestions
	}

	if len(g.NeighborsOf(targetID)) == 0 {
		return []MultiHopSuggestion{}
	}

	// FIFO traversal guarantees the recorded distance is minimal when first set
	distances := map[persist.DBID]int{targetID: 0}
	edgeCounts := make(map[persist.DBID]int)
	queue := []persist.DBID{targetID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		depth := distances[current]
		if depth >= maxHops {
			continue
		}

		for neighbor := range g.NeighborsOf(current) {
			if neighbor == targetID {
				continue
			}
			if _, seen := distances[neighbor]; !seen {
				distances[neighbor] = depth + 1
				queue = append(queue, neighbor)
			}
			// Every edge into the node accumulates, including revisits through
			// different parents at the same depth
			edgeCounts[neighbor]++
		}
	}

	suggestions := make([]MultiHopSuggestion, 0, len(edgeCounts))
	for userID, count := range edgeCounts {
		distance := distances[userID]
		if distance == 0 || distance > maxHops {
			continue
		}
		suggestions = append(suggestions, MultiHopSuggestion{
			UserID:        userID,
			MutualFriends: count,
			HopDistance:   distance,
			Score:         float64(count*10 - distance*5),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	return suggestions
}
