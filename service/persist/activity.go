package persist

import "time"

// ActivityType discriminates the variants of an activity item
type ActivityType string

const (
	ActivityTypeWorkout        ActivityType = "workout"
	ActivityTypeMentalSession  ActivityType = "mental"
	ActivityTypeRun            ActivityType = "run"
	ActivityTypePersonalRecord ActivityType = "pr"
)

// Kudos is a lightweight positive reaction attached to an activity
type Kudos struct {
	ID        DBID      `json:"id"`
	UserID    DBID      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a text reply attached to an activity
type Comment struct {
	ID        DBID      `json:"id"`
	UserID    DBID      `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Activity is the unified shape shared by workouts, mental sessions, runs, and
// personal records. Variant-specific fields pass through untouched for presentation.
type Activity struct {
	ID       DBID         `json:"id"`
	Type     ActivityType `json:"type"`
	UserID   DBID         `json:"user_id"`
	Date     time.Time    `json:"date"`
	Kudos    []Kudos      `json:"kudos"`
	Comments []Comment    `json:"comments"`

	// Variant-specific fields; zero values when not applicable.
	Title         string  `json:"title,omitempty"`
	DurationSecs  int     `json:"duration_secs,omitempty"`
	DistanceM     float64 `json:"distance_m,omitempty"`
	CalmnessLevel int     `json:"calmness_level,omitempty"`
	SessionKind   string  `json:"session_kind,omitempty"`
	WeightKg      float64 `json:"weight_kg,omitempty"`
}
