package challenge

import (
	"sort"
	"time"

	"github.com/pulseclub/go-pulse/service/persist"
)

// DefaultRecommendLimit caps recommendation results when no limit is given
const DefaultRecommendLimit = 10

// Factor weights of the composite score. They sum to 1 so the composite stays in
// the same range as the unweighted factors.
const (
	interestWeight   = 0.40
	difficultyWeight = 0.20
	timeWeight       = 0.15
	socialWeight     = 0.15
	rewardWeight     = 0.10
)

// difficultyLevels maps declared difficulty to a numeric skill level comparable
// against a user's average interest
var difficultyLevels = map[persist.ChallengeDifficulty]float64{
	persist.ChallengeDifficultyEasy:   30,
	persist.ChallengeDifficultyMedium: 50,
	persist.ChallengeDifficultyHard:   70,
	persist.ChallengeDifficultyExpert: 90,
}

// Breakdown holds the unweighted per-factor contributions, retained for
// explainability
type Breakdown struct {
	Interest   float64 `json:"interest"`
	Difficulty float64 `json:"difficulty"`
	Time       float64 `json:"time"`
	Social     float64 `json:"social"`
	Reward     float64 `json:"reward"`
}

// Recommendation is a challenge with its composite relevance score
type Recommendation struct {
	Challenge persist.Challenge `json:"challenge"`
	Score     float64           `json:"score"`
	Breakdown Breakdown         `json:"breakdown"`
}

// Recommend ranks challenges for a user by a weighted blend of interest affinity,
// difficulty fit, time urgency, social proof, and reward size, evaluated at the
// given instant. Results are ordered by descending score and truncated to limit.
func Recommend(interests InterestVector, challenges []persist.Challenge, now time.Time, limit int) []Recommendation {
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}

	avgInterest := interests.Average()

	recommendations := make([]Recommendation, 0, len(challenges))
	for _, c := range challenges {
		breakdown := Breakdown{
			Interest:   interests[c.Type],
			Difficulty: difficultyFit(avgInterest, c.Difficulty),
			Time:       timeUrgency(now, c.EndDate),
			Social:     socialProof(c.Participants),
			Reward:     rewardSize(c.RewardPoints),
		}

		score := breakdown.Interest*interestWeight +
			breakdown.Difficulty*difficultyWeight +
			breakdown.Time*timeWeight +
			breakdown.Social*socialWeight +
			breakdown.Reward*rewardWeight

		recommendations = append(recommendations, Recommendation{
			Challenge: c,
			Score:     score,
			Breakdown: breakdown,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	if len(recommendations) > limit {
		recommendations = recommendations[:limit]
	}

	return recommendations
}

// difficultyFit rewards challenges near the user's skill level. A gap within 10
// points is the optimal challenge zone; beyond 20 the challenge is too easy or too
// far above skill.
func difficultyFit(avgInterest float64, difficulty persist.ChallengeDifficulty) float64 {
	level, ok := difficultyLevels[difficulty]
	if !ok {
		level = difficultyLevels[persist.ChallengeDifficultyMedium]
	}

	gap := avgInterest - level
	if gap < 0 {
		gap = -gap
	}

	switch {
	case gap <= 10:
		return 20
	case gap <= 20:
		return 10
	default:
		return -10
	}
}

// timeUrgency is a step function of the days remaining until the challenge ends.
// Ended challenges are strongly deprioritized rather than filtered, so they still
// surface in debug output with a telling score.
func timeUrgency(now, endDate time.Time) float64 {
	daysLeft := endDate.Sub(now).Hours() / 24

	switch {
	case daysLeft <= 0:
		return -50
	case daysLeft <= 1:
		return 30
	case daysLeft <= 3:
		return 20
	case daysLeft <= 7:
		return 10
	case daysLeft <= 14:
		return 5
	default:
		return 0
	}
}

func socialProof(participants int) float64 {
	proof := float64(participants) * 5
	if proof > 25 {
		proof = 25
	}
	return proof
}

func rewardSize(points int) float64 {
	return float64(points) / 100 * 10
}
