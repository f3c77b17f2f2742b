package recommend

import (
	"sort"

	"github.com/pulseclub/go-pulse/service/persist"
	"github.com/pulseclub/go-pulse/service/socialgraph"
)

const (
	// hybridMutualPool is how many single-hop candidates feed the hybrid blend
	hybridMutualPool = 20
	// DefaultMaxHybridSuggestions caps hybrid results
	DefaultMaxHybridSuggestions = 15
)

// HybridWeights blends the mutual-friend and interest-similarity components
type HybridWeights struct {
	Mutual   float64
	Interest float64
}

// DefaultHybridWeights favors graph proximity over interest overlap
var DefaultHybridWeights = HybridWeights{Mutual: 0.6, Interest: 0.4}

// HybridSuggestion combines graph-based and interest-based signals for one candidate
type HybridSuggestion struct {
	UserID        persist.DBID `json:"user_id"`
	MutualFriends int          `json:"mutual_friends"`
	Similarity    float64      `json:"similarity"`
	TotalScore    float64      `json:"total_score"`
}

// SuggestHybrid unions the top single-hop candidates with all interest-based
// candidates and ranks them by the weighted sum of both component scores. A candidate
// missing from one component contributes 0 for it.
func SuggestHybrid(g *socialgraph.Graph, targetID persist.DBID, interestsByUser map[persist.DBID][]string, weights HybridWeights) []HybridSuggestion {
	if weights.Mutual == 0 && weights.Interest == 0 {
		weights = DefaultHybridWeights
	}

	combined := make(map[persist.DBID]*HybridSuggestion)

	for _, s := range SuggestFriends(g, targetID, hybridMutualPool) {
		combined[s.UserID] = &HybridSuggestion{
			UserID:        s.UserID,
			MutualFriends: s.MutualFriends,
			TotalScore:    s.Score * weights.Mutual,
		}
	}

	for _, s := range SuggestByInterest(targetID, interestsByUser) {
		if existing, ok := combined[s.UserID]; ok {
			existing.Similarity = s.Similarity
			existing.TotalScore += s.Score * weights.Interest
			continue
		}
		combined[s.UserID] = &HybridSuggestion{
			UserID:     s.UserID,
			Similarity: s.Similarity,
			TotalScore: s.Score * weights.Interest,
		}
	}

	suggestions := make([]HybridSuggestion, 0, len(combined))
	for _, s := range combined {
		suggestions = append(suggestions, *s)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].TotalScore > suggestions[j].TotalScore
	})

	if len(suggestions) > DefaultMaxHybridSuggestions {
		suggestions = suggestions[:DefaultMaxHybridSuggestions]
	}

	return suggestions
}
