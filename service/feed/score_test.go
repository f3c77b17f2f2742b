package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseclub/go-pulse/service/persist"
)

func TestScorePost(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	scorer := NewScorer()

	t.Run("fresh run with engagement", func(t *testing.T) {
		post := persist.Activity{
			ID:     "p1",
			Type:   persist.ActivityTypeRun,
			UserID: "author",
			Date:   now,
			Kudos: []persist.Kudos{
				{UserID: "u1"},
				{UserID: "u2"},
			},
			Comments: []persist.Comment{{UserID: "u3"}},
		}

		// (100 + 20 + 15) * 1.1
		assert.InDelta(t, 148.5, scorer.ScorePost(post, "viewer", now), 1e-9)
	})

	t.Run("recency floors at zero for stale posts", func(t *testing.T) {
		exactly50 := persist.Activity{Type: persist.ActivityTypeWorkout, Date: now.Add(-50 * time.Hour)}
		older := persist.Activity{Type: persist.ActivityTypeWorkout, Date: now.Add(-60 * time.Hour)}

		assert.Zero(t, scorer.ScorePost(exactly50, "viewer", now))
		assert.Zero(t, scorer.ScorePost(older, "viewer", now))
	})

	t.Run("type multipliers apply with default one for unknown types", func(t *testing.T) {
		base := persist.Activity{Date: now}

		pr := base
		pr.Type = persist.ActivityTypePersonalRecord
		unknown := base
		unknown.Type = persist.ActivityType("swim")

		assert.InDelta(t, 150, scorer.ScorePost(pr, "viewer", now), 1e-9)
		assert.InDelta(t, 100, scorer.ScorePost(unknown, "viewer", now), 1e-9)
	})

	t.Run("viewer kudos adds a flat bonus after multipliers", func(t *testing.T) {
		post := persist.Activity{
			Type:  persist.ActivityTypeRun,
			Date:  now,
			Kudos: []persist.Kudos{{UserID: "viewer"}},
		}

		// (100 + 10) * 1.1 + 10
		assert.InDelta(t, 131, scorer.ScorePost(post, "viewer", now), 1e-9)
	})

	t.Run("relationship weight multiplies the score", func(t *testing.T) {
		weighted := NewScorer()
		weighted.SetRelationshipWeight("bestie", 2)

		post := persist.Activity{Type: persist.ActivityTypeRun, UserID: "bestie", Date: now}

		assert.InDelta(t, 220, weighted.ScorePost(post, "viewer", now), 1e-9)
	})

	t.Run("scoring is deterministic for a fixed now", func(t *testing.T) {
		post := persist.Activity{
			Type:     persist.ActivityTypeMentalSession,
			Date:     now.Add(-3 * time.Hour),
			Kudos:    []persist.Kudos{{UserID: "u1"}},
			Comments: []persist.Comment{{UserID: "u2"}},
		}

		first := scorer.ScorePost(post, "viewer", now)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, scorer.ScorePost(post, "viewer", now))
		}
	})
}

func TestRankFeed(t *testing.T) {
	scorer := NewScorer()

	t.Run("ranks fresh engaged posts above stale quiet ones", func(t *testing.T) {
		now := time.Now()
		fresh := persist.Activity{
			ID:   "fresh",
			Type: persist.ActivityTypeRun,
			Date: now,
			Kudos: []persist.Kudos{
				{UserID: "u1"},
				{UserID: "u2"},
			},
			Comments: []persist.Comment{{UserID: "u3"}},
		}
		stale := persist.Activity{ID: "stale", Type: persist.ActivityTypeWorkout, Date: now.Add(-60 * time.Hour)}

		ranked := scorer.RankFeed([]persist.Activity{stale, fresh}, "viewer", 0)

		require.Len(t, ranked, 2)
		assert.Equal(t, persist.DBID("fresh"), ranked[0].ID)
		assert.Equal(t, persist.DBID("stale"), ranked[1].ID)
	})

	t.Run("truncates to limit", func(t *testing.T) {
		now := time.Now()
		posts := make([]persist.Activity, 10)
		for i := range posts {
			posts[i] = persist.Activity{ID: persist.GenerateID(), Type: persist.ActivityTypeRun, Date: now.Add(-time.Duration(i) * time.Hour)}
		}

		assert.Len(t, scorer.RankFeed(posts, "viewer", 3), 3)
	})

	t.Run("empty input yields empty feed", func(t *testing.T) {
		assert.Empty(t, scorer.RankFeed(nil, "viewer", 0))
	})
}
