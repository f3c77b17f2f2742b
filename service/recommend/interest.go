package recommend

import (
	"sort"

	"github.com/pulseclub/go-pulse/service/persist"
)

const (
	// similarityThreshold excludes candidates whose interests barely overlap
	similarityThreshold = 0.1
	// DefaultMaxInterestSuggestions caps interest-based results
	DefaultMaxInterestSuggestions = 10
)

// InterestSuggestion is a candidate ranked by Jaccard similarity of interest sets
type InterestSuggestion struct {
	UserID          persist.DBID `json:"user_id"`
	Similarity      float64      `json:"similarity"`
	CommonInterests []string     `json:"common_interests"`
	Score           float64      `json:"score"`
}

// SuggestByInterest ranks every other user by the Jaccard similarity between their
// interest set and the target's. Candidates at or below the similarity threshold are
// dropped; results are ordered by descending similarity and capped.
func SuggestByInterest(targetID persist.DBID, interestsByUser map[persist.DBID][]string) []InterestSuggestion {
	targetInterests := toSet(interestsByUser[targetID])

	suggestions := []InterestSuggestion{}
	for userID, interests := range interestsByUser {
		if userID == targetID {
			continue
		}

		candidateInterests := toSet(interests)
		similarity, common := jaccard(targetInterests, candidateInterests)
		if similarity <= similarityThreshold {
			continue
		}

		suggestions = append(suggestions, InterestSuggestion{
			UserID:          userID,
			Similarity:      similarity,
			CommonInterests: common,
			Score:           similarity * 100,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Similarity > suggestions[j].Similarity
	})

	if len(suggestions) > DefaultMaxInterestSuggestions {
		suggestions = suggestions[:DefaultMaxInterestSuggestions]
	}

	return suggestions
}

// jaccard returns |a ∩ b| / |a ∪ b| and the sorted intersection. An empty union
// yields similarity 0, never NaN.
func jaccard(a, b map[string]bool) (float64, []string) {
	common := []string{}
	for x := range a {
		if b[x] {
			common = append(common, x)
		}
	}
	sort.Strings(common)

	unionSize := len(a) + len(b) - len(common)
	if unionSize == 0 {
		return 0, common
	}

	return float64(len(common)) / float64(unionSize), common
}

func toSet(labels []string) map[string]bool {
	set := make(map[string]bool, len(labels))
	for _, label := range labels {
		set[label] = true
	}
	return set
}
