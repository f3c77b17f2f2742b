package feed

import (
	"time"

	"github.com/pulseclub/go-pulse/service/persist"
)

// DefaultFeedLimit caps ranked feeds when no limit is given
const DefaultFeedLimit = 50

// Scoring constants. The recency term decays linearly from 100 to 0 over 50 hours;
// engagement and the viewer's own kudos add flat boosts on top.
const (
	recencyBase      = 100.0
	recencyDecayRate = 2.0
	kudosBoost       = 10.0
	commentBoost     = 15.0
	selfKudosBonus   = 10.0
)

// typeBoosts are per-content-type multipliers; unknown types multiply by 1
var typeBoosts = map[persist.ActivityType]float64{
	persist.ActivityTypePersonalRecord: 1.5,
	persist.ActivityTypeWorkout:        1.2,
	persist.ActivityTypeMentalSession:  1.3,
	persist.ActivityTypeRun:            1.1,
}

// Scorer assigns relevance scores to activity posts for a viewer. Relationship
// weights are a personalization hook; authors without an entry weigh 1.
type Scorer struct {
	relationshipWeights map[persist.DBID]float64
}

// NewScorer creates a scorer with no per-author personalization
func NewScorer() *Scorer {
	return &Scorer{relationshipWeights: map[persist.DBID]float64{}}
}

// SetRelationshipWeight overrides the multiplier applied to posts from one author
func (s *Scorer) SetRelationshipWeight(authorID persist.DBID, weight float64) {
	s.relationshipWeights[authorID] = weight
}

// ScorePost computes the composite relevance of a post for the viewer at the given
// instant. Passing the same now yields the same score; RankFeed captures now once so
// an entire ranking pass is internally consistent.
func (s *Scorer) ScorePost(post persist.Activity, viewerID persist.DBID, now time.Time) float64 {
	hoursAgo := now.Sub(post.Date).Hours()
	score := recencyBase - hoursAgo*recencyDecayRate
	if score < 0 {
		score = 0
	}

	score += float64(len(post.Kudos)) * kudosBoost
	score += float64(len(post.Comments)) * commentBoost

	if weight, ok := s.relationshipWeights[post.UserID]; ok {
		score *= weight
	}

	if boost, ok := typeBoosts[post.Type]; ok {
		score *= boost
	}

	for _, k := range post.Kudos {
		if k.UserID == viewerID {
			score += selfKudosBonus
			break
		}
	}

	return score
}

// RankFeed orders the posts by descending score for the viewer, truncated to limit
func (s *Scorer) RankFeed(posts []persist.Activity, viewerID persist.DBID, limit int) []persist.Activity {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}

	now := time.Now()
	queue := NewPriorityQueue[persist.Activity](len(posts))
	for _, post := range posts {
		queue.Enqueue(post, s.ScorePost(post, viewerID, now))
	}

	ranked := make([]persist.Activity, 0, min(limit, queue.Size()))
	for !queue.IsEmpty() && len(ranked) < limit {
		post, _ := queue.Dequeue()
		ranked = append(ranked, post)
	}

	return ranked
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
