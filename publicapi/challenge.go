package publicapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pulseclub/go-pulse/service/challenge"
	"github.com/pulseclub/go-pulse/service/logger"
	"github.com/pulseclub/go-pulse/service/persist"
	"github.com/pulseclub/go-pulse/service/redis"
	"github.com/pulseclub/go-pulse/service/sentryutil"
	"github.com/pulseclub/go-pulse/validate"
)

const recommendationCacheTTL = time.Minute * 10

// ChallengeAPI serves personalized challenge recommendations
type ChallengeAPI struct {
	repos     *Repositories
	validator *validator.Validate
	cache     *redis.Cache
}

// RecommendChallenges ranks active challenges against an interest profile derived
// from the user's recent activity history
func (api ChallengeAPI) RecommendChallenges(ctx context.Context, userID persist.DBID, limit int) ([]challenge.Recommendation, error) {
	if err := validate.ValidateFields(api.validator, validate.ValidationMap{
		"userID": validate.WithTag(userID, "required"),
		"limit":  validate.WithTag(limit, "gte=0,lte=50"),
	}); err != nil {
		return nil, err
	}

	l := redis.LazyCache{
		Cache: api.cache,
		Key:   fmt.Sprintf("recommendations:%s:%d", userID, limit),
		TTL:   recommendationCacheTTL,
		CalcFunc: func(ctx context.Context) ([]byte, error) {
			now := time.Now()
			interests := api.deriveInterests(ctx, userID)
			challenges := api.activeChallenges(ctx, now)
			return json.Marshal(challenge.Recommend(interests, challenges, now, limit))
		},
	}

	b, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}

	var recs []challenge.Recommendation
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// deriveInterests builds the user's interest vector from their recent history. Any
// category that fails to load is treated as empty so the defaults take over.
func (api ChallengeAPI) deriveInterests(ctx context.Context, userID persist.DBID) challenge.InterestVector {
	workouts := api.history(ctx, userID, persist.ActivityTypeWorkout)
	sessions := api.history(ctx, userID, persist.ActivityTypeMentalSession)
	runs := api.history(ctx, userID, persist.ActivityTypeRun)
	prs := api.history(ctx, userID, persist.ActivityTypePersonalRecord)
	return challenge.DeriveInterests(workouts, sessions, runs, prs)
}

func (api ChallengeAPI) history(ctx context.Context, userID persist.DBID, activityType persist.ActivityType) []persist.Activity {
	activities, err := api.repos.Activities.GetRecentByUserID(ctx, userID, activityType, challenge.HistoryLimit)
	if err != nil {
		logger.For(ctx).Errorf("failed to fetch %s history for user %s, continuing without it: %s", activityType, userID, err)
		sentryutil.ReportError(ctx, err)
		return nil
	}
	return activities
}

// activeChallenges fetches the challenges still open for joining, degrading to none
// on fetch failure
func (api ChallengeAPI) activeChallenges(ctx context.Context, now time.Time) []persist.Challenge {
	challenges, err := api.repos.Challenges.GetActive(ctx, now)
	if err != nil {
		logger.For(ctx).Errorf("failed to fetch active challenges, continuing with none: %s", err)
		sentryutil.ReportError(ctx, err)
		return nil
	}
	return challenges
}
