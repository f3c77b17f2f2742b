package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pulseclub/go-pulse/service/persist"
)

// ChallengeRepository reads time-boxed challenges from postgres
type ChallengeRepository struct {
	db *sql.DB
}

// NewChallengeRepository creates a new postgres repository for interacting with challenges
func NewChallengeRepository(db *sql.DB) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

// GetActive returns challenges that have not yet ended as of the given time, with
// participant counts attached
func (r *ChallengeRepository) GetActive(pCtx context.Context, pNow time.Time) ([]persist.Challenge, error) {
	sqlStr := `SELECT c.ID,c.TYPE,c.TITLE,c.DIFFICULTY,c.TARGET,c.UNIT,c.REWARD_POINTS,c.END_DATE,c.CREATED_AT,
		(SELECT COUNT(*) FROM challenge_participants p WHERE p.CHALLENGE_ID = c.ID)
		FROM challenges c WHERE c.END_DATE > $1 ORDER BY c.END_DATE ASC`
	rows, err := r.db.QueryContext(pCtx, sqlStr, pNow)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []persist.Challenge{}
	for rows.Next() {
		c := persist.Challenge{}
		if err := rows.Scan(&c.ID, &c.Type, &c.Title, &c.Difficulty, &c.Target, &c.Unit, &c.RewardPoints, &c.EndDate, &c.CreatedAt, &c.Participants); err != nil {
			return nil, err
		}
		result = append(result, c)
	}

	return result, rows.Err()
}

// GetByID returns the challenge with the given ID
func (r *ChallengeRepository) GetByID(pCtx context.Context, pID persist.DBID) (persist.Challenge, error) {
	sqlStr := `SELECT c.ID,c.TYPE,c.TITLE,c.DIFFICULTY,c.TARGET,c.UNIT,c.REWARD_POINTS,c.END_DATE,c.CREATED_AT,
		(SELECT COUNT(*) FROM challenge_participants p WHERE p.CHALLENGE_ID = c.ID)
		FROM challenges c WHERE c.ID = $1`
	c := persist.Challenge{}
	err := r.db.QueryRowContext(pCtx, sqlStr, pID).Scan(&c.ID, &c.Type, &c.Title, &c.Difficulty, &c.Target, &c.Unit, &c.RewardPoints, &c.EndDate, &c.CreatedAt, &c.Participants)
	if err != nil {
		if err == sql.ErrNoRows {
			return persist.Challenge{}, persist.ErrChallengeNotFound{ChallengeID: pID}
		}
		return persist.Challenge{}, err
	}

	return c, nil
}
