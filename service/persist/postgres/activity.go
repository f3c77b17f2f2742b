package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/pulseclub/go-pulse/service/persist"
)

// ActivityRepository reads activity items and their engagement from postgres
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new postgres repository for interacting with activities
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// GetRecentByUserIDs returns activities posted by the given users since the given time,
// newest first, with kudos and comments attached
func (r *ActivityRepository) GetRecentByUserIDs(pCtx context.Context, pUserIDs []persist.DBID, pSince time.Time, pLimit int) ([]persist.Activity, error) {
	asStr := make([]string, len(pUserIDs))
	for i, id := range pUserIDs {
		asStr[i] = id.String()
	}

	sqlStr := `SELECT ID,TYPE,USER_ID,DATE,TITLE,DURATION_SECS,DISTANCE_M,CALMNESS_LEVEL,SESSION_KIND,WEIGHT_KG
		FROM activities WHERE USER_ID = ANY($1) AND DATE >= $2 ORDER BY DATE DESC LIMIT $3`
	rows, err := r.db.QueryContext(pCtx, sqlStr, pq.Array(asStr), pSince, pLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []persist.Activity{}
	for rows.Next() {
		a := persist.Activity{}
		if err := rows.Scan(&a.ID, &a.Type, &a.UserID, &a.Date, &a.Title, &a.DurationSecs, &a.DistanceM, &a.CalmnessLevel, &a.SessionKind, &a.WeightKg); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachEngagement(pCtx, activities); err != nil {
		return nil, err
	}

	return activities, nil
}

// GetRecent returns the most recent activities across all users since the given
// time, newest first, with kudos and comments attached
func (r *ActivityRepository) GetRecent(pCtx context.Context, pSince time.Time, pLimit int) ([]persist.Activity, error) {
	sqlStr := `SELECT ID,TYPE,USER_ID,DATE,TITLE,DURATION_SECS,DISTANCE_M,CALMNESS_LEVEL,SESSION_KIND,WEIGHT_KG
		FROM activities WHERE DATE >= $1 ORDER BY DATE DESC LIMIT $2`
	rows, err := r.db.QueryContext(pCtx, sqlStr, pSince, pLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []persist.Activity{}
	for rows.Next() {
		a := persist.Activity{}
		if err := rows.Scan(&a.ID, &a.Type, &a.UserID, &a.Date, &a.Title, &a.DurationSecs, &a.DistanceM, &a.CalmnessLevel, &a.SessionKind, &a.WeightKg); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachEngagement(pCtx, activities); err != nil {
		return nil, err
	}

	return activities, nil
}

// GetRecentByUserID returns the user's own recent activities of the given type,
// newest first, without engagement attached. Used for interest derivation.
func (r *ActivityRepository) GetRecentByUserID(pCtx context.Context, pUserID persist.DBID, pType persist.ActivityType, pLimit int) ([]persist.Activity, error) {
	sqlStr := `SELECT ID,TYPE,USER_ID,DATE,TITLE,DURATION_SECS,DISTANCE_M,CALMNESS_LEVEL,SESSION_KIND,WEIGHT_KG
		FROM activities WHERE USER_ID = $1 AND TYPE = $2 ORDER BY DATE DESC LIMIT $3`
	rows, err := r.db.QueryContext(pCtx, sqlStr, pUserID, pType, pLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []persist.Activity{}
	for rows.Next() {
		a := persist.Activity{}
		if err := rows.Scan(&a.ID, &a.Type, &a.UserID, &a.Date, &a.Title, &a.DurationSecs, &a.DistanceM, &a.CalmnessLevel, &a.SessionKind, &a.WeightKg); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}

	return activities, rows.Err()
}

// GetInterestLabelsByUser returns, for every user, the distinct set of activity-type
// labels they have posted. Feeds interest-similarity suggestions.
func (r *ActivityRepository) GetInterestLabelsByUser(pCtx context.Context) (map[persist.DBID][]string, error) {
	sqlStr := `SELECT USER_ID, ARRAY_AGG(DISTINCT TYPE) FROM activities GROUP BY USER_ID`
	rows, err := r.db.QueryContext(pCtx, sqlStr)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[persist.DBID][]string{}
	for rows.Next() {
		var userID persist.DBID
		var labels []string
		if err := rows.Scan(&userID, pq.Array(&labels)); err != nil {
			return nil, err
		}
		result[userID] = labels
	}

	return result, rows.Err()
}

// attachEngagement loads kudos and comments for the given activities in two bulk
// queries and merges them in memory
func (r *ActivityRepository) attachEngagement(pCtx context.Context, pActivities []persist.Activity) error {
	if len(pActivities) == 0 {
		return nil
	}

	index := make(map[persist.DBID]int, len(pActivities))
	activityIDs := make([]string, len(pActivities))
	for i, a := range pActivities {
		index[a.ID] = i
		activityIDs[i] = a.ID.String()
	}

	kudosStr := `SELECT ID,ACTIVITY_ID,USER_ID,CREATED_AT FROM kudos WHERE ACTIVITY_ID = ANY($1)`
	rows, err := r.db.QueryContext(pCtx, kudosStr, pq.Array(activityIDs))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var activityID persist.DBID
		k := persist.Kudos{}
		if err := rows.Scan(&k.ID, &activityID, &k.UserID, &k.CreatedAt); err != nil {
			return err
		}
		if i, ok := index[activityID]; ok {
			pActivities[i].Kudos = append(pActivities[i].Kudos, k)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	commentsStr := `SELECT ID,ACTIVITY_ID,USER_ID,TEXT,CREATED_AT FROM comments WHERE ACTIVITY_ID = ANY($1)`
	rows, err = r.db.QueryContext(pCtx, commentsStr, pq.Array(activityIDs))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var activityID persist.DBID
		c := persist.Comment{}
		if err := rows.Scan(&c.ID, &activityID, &c.UserID, &c.Text, &c.CreatedAt); err != nil {
			return err
		}
		if i, ok := index[activityID]; ok {
			pActivities[i].Comments = append(pActivities[i].Comments, c)
		}
	}

	return rows.Err()
}
