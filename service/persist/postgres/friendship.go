package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/pulseclub/go-pulse/service/persist"
)

// FriendshipRepository reads and writes friend-request edges in postgres
type FriendshipRepository struct {
	db *sql.DB
}

// NewFriendshipRepository creates a new postgres repository for interacting with friendships
func NewFriendshipRepository(db *sql.DB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

// GetAllByStatus returns every friendship edge with the given status
func (r *FriendshipRepository) GetAllByStatus(pCtx context.Context, pStatus persist.FriendshipStatus) ([]persist.Friendship, error) {
	sqlStr := `SELECT ID,USER_ID,FRIEND_ID,STATUS,CREATED_AT FROM friendships WHERE STATUS = $1`
	rows, err := r.db.QueryContext(pCtx, sqlStr, pStatus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []persist.Friendship{}
	for rows.Next() {
		f := persist.Friendship{}
		if err := rows.Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, f)
	}

	return result, rows.Err()
}

// GetByUserID returns every friendship edge that involves the given user, in any status
func (r *FriendshipRepository) GetByUserID(pCtx context.Context, pUserID persist.DBID) ([]persist.Friendship, error) {
	sqlStr := `SELECT ID,USER_ID,FRIEND_ID,STATUS,CREATED_AT FROM friendships WHERE USER_ID = $1 OR FRIEND_ID = $1`
	rows, err := r.db.QueryContext(pCtx, sqlStr, pUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []persist.Friendship{}
	for rows.Next() {
		f := persist.Friendship{}
		if err := rows.Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, f)
	}

	return result, rows.Err()
}

// UpsertSuggestions replaces the stored friend suggestions for a user with a fresh batch
func (r *FriendshipRepository) UpsertSuggestions(pCtx context.Context, pUserID persist.DBID, pSuggestedIDs []persist.DBID) error {
	tx, err := r.db.BeginTx(pCtx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(pCtx, `DELETE FROM friend_suggestions WHERE USER_ID = $1`, pUserID); err != nil {
		return err
	}

	insertStr := `INSERT INTO friend_suggestions (ID,USER_ID,SUGGESTED_USER_ID,POSITION) SELECT UNNEST($1::varchar[]), $2, UNNEST($3::varchar[]), GENERATE_SUBSCRIPTS($3::varchar[], 1)`
	rowIDs := make([]string, len(pSuggestedIDs))
	asStr := make([]string, len(pSuggestedIDs))
	for i, id := range pSuggestedIDs {
		rowIDs[i] = persist.GenerateID().String()
		asStr[i] = id.String()
	}
	if _, err := tx.ExecContext(pCtx, insertStr, pq.Array(rowIDs), pUserID, pq.Array(asStr)); err != nil {
		return err
	}

	return tx.Commit()
}

// GetTopSuggestedUserIDs returns the users most often suggested across all stored
// suggestion batches, used to bootstrap users with no friends yet
func (r *FriendshipRepository) GetTopSuggestedUserIDs(pCtx context.Context, pLimit int) ([]persist.DBID, error) {
	sqlStr := `SELECT SUGGESTED_USER_ID FROM friend_suggestions GROUP BY SUGGESTED_USER_ID ORDER BY COUNT(*) DESC LIMIT $1`
	rows, err := r.db.QueryContext(pCtx, sqlStr, pLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []persist.DBID{}
	for rows.Next() {
		var id persist.DBID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result = append(result, id)
	}

	return result, rows.Err()
}
