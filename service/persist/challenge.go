package persist

import "time"

// ChallengeDifficulty is the declared difficulty of a challenge
type ChallengeDifficulty string

const (
	ChallengeDifficultyEasy   ChallengeDifficulty = "easy"
	ChallengeDifficultyMedium ChallengeDifficulty = "medium"
	ChallengeDifficultyHard   ChallengeDifficulty = "hard"
	ChallengeDifficultyExpert ChallengeDifficulty = "expert"
)

// Challenge is a time-boxed goal users can join
type Challenge struct {
	ID           DBID                `json:"id"`
	Type         string              `json:"type"`
	Title        string              `json:"title"`
	Difficulty   ChallengeDifficulty `json:"difficulty"`
	Target       float64             `json:"target"`
	Unit         string              `json:"unit"`
	RewardPoints int                 `json:"reward_points"`
	Participants int                 `json:"participants"`
	EndDate      time.Time           `json:"end_date"`
	CreatedAt    time.Time           `json:"created_at"`
}
