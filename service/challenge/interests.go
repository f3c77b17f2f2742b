package challenge

import (
	"strings"

	"github.com/pulseclub/go-pulse/service/persist"
)

// Interest categories. Only the first three are derivable from activity history;
// the rest keep their default affinities until other signals exist.
const (
	CategoryWorkout    = "workout"
	CategoryMental     = "mental"
	CategoryRun        = "run"
	CategoryNutrition  = "nutrition"
	CategorySleep      = "sleep"
	CategorySocial     = "social"
	CategoryLearning   = "learning"
	CategoryCreativity = "creativity"
)

// InterestVector maps an activity category to an affinity score in [0,100]
type InterestVector map[string]float64

// Per-category weights applied to activity counts when deriving base scores
const (
	workoutCountWeight = 10
	mentalCountWeight  = 12
	runCountWeight     = 15
	prCountWeight      = 8
)

// Categorical bonuses layered on top of the count-derived base scores
const (
	strengthBonus       = 20
	strengthShareMin    = 0.6
	meditationBonus     = 25
	meditationShareMin  = 0.5
	longRunBonus        = 15
	longRunAvgDistanceM = 5000.0
)

// HistoryLimit is the most recent activities considered per category
const HistoryLimit = 50

var strengthKeywords = []string{"strength", "lift", "squat", "deadlift", "bench", "press"}

// DefaultInterests is the fixed vector assigned to users with no activity history
func DefaultInterests() InterestVector {
	return InterestVector{
		CategoryWorkout:    50,
		CategoryMental:     30,
		CategoryRun:        40,
		CategoryNutrition:  25,
		CategorySleep:      20,
		CategorySocial:     35,
		CategoryLearning:   30,
		CategoryCreativity: 25,
	}
}

// DeriveInterests builds a user's interest vector from their recent workouts, mental
// sessions, runs, and personal records. Base scores scale with activity counts; the
// categorical bonuses can push intermediate values above 100, so the vector is
// clamped to [0,100] once, at finalization.
func DeriveInterests(workouts, mentalSessions, runs, personalRecords []persist.Activity) InterestVector {
	if len(workouts) == 0 && len(mentalSessions) == 0 && len(runs) == 0 && len(personalRecords) == 0 {
		return DefaultInterests()
	}

	interests := DefaultInterests()

	if len(workouts) > 0 || len(personalRecords) > 0 {
		score := float64(minInt(len(workouts), HistoryLimit) * workoutCountWeight)
		score += float64(minInt(len(personalRecords), HistoryLimit) * prCountWeight)
		if score > 100 {
			score = 100
		}
		if strengthShare(workouts) > strengthShareMin {
			score += strengthBonus
		}
		interests[CategoryWorkout] = score
	}

	if len(mentalSessions) > 0 {
		score := float64(minInt(len(mentalSessions), HistoryLimit) * mentalCountWeight)
		if score > 100 {
			score = 100
		}
		if meditationShare(mentalSessions) > meditationShareMin {
			score += meditationBonus
		}
		interests[CategoryMental] = score
	}

	if len(runs) > 0 {
		score := float64(minInt(len(runs), HistoryLimit) * runCountWeight)
		if score > 100 {
			score = 100
		}
		if averageDistance(runs) > longRunAvgDistanceM {
			score += longRunBonus
		}
		interests[CategoryRun] = score
	}

	return interests.clamped()
}

// Average returns the mean affinity across all categories
func (v InterestVector) Average() float64 {
	if len(v) == 0 {
		return 0
	}
	var total float64
	for _, score := range v {
		total += score
	}
	return total / float64(len(v))
}

func (v InterestVector) clamped() InterestVector {
	for category, score := range v {
		if score > 100 {
			v[category] = 100
		} else if score < 0 {
			v[category] = 0
		}
	}
	return v
}

func strengthShare(workouts []persist.Activity) float64 {
	if len(workouts) == 0 {
		return 0
	}
	matches := 0
	for _, w := range workouts {
		title := strings.ToLower(w.Title)
		for _, keyword := range strengthKeywords {
			if strings.Contains(title, keyword) {
				matches++
				break
			}
		}
	}
	return float64(matches) / float64(len(workouts))
}

func meditationShare(sessions []persist.Activity) float64 {
	if len(sessions) == 0 {
		return 0
	}
	matches := 0
	for _, s := range sessions {
		if strings.EqualFold(s.SessionKind, "meditation") {
			matches++
		}
	}
	return float64(matches) / float64(len(sessions))
}

func averageDistance(runs []persist.Activity) float64 {
	if len(runs) == 0 {
		return 0
	}
	var total float64
	for _, r := range runs {
		total += r.DistanceM
	}
	return total / float64(len(runs))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
