package publicapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/go-playground/validator/v10"

	"github.com/pulseclub/go-pulse/service/feed"
	"github.com/pulseclub/go-pulse/service/logger"
	"github.com/pulseclub/go-pulse/service/persist"
	"github.com/pulseclub/go-pulse/service/redis"
	"github.com/pulseclub/go-pulse/service/sentryutil"
	"github.com/pulseclub/go-pulse/service/socialgraph"
	"github.com/pulseclub/go-pulse/validate"
)

const (
	// feedWindow bounds how far back the feed looks for activities
	feedWindow = 72 * time.Hour
	// feedFetchLimit bounds how many activities are pulled before ranking
	feedFetchLimit = 500

	trendingCacheTTL = time.Minute * 10
	trendingLockTTL  = time.Second * 30
)

// FeedAPI serves ranked activity feeds
type FeedAPI struct {
	repos     *Repositories
	validator *validator.Validate
	cache     *redis.Cache
	lock      *redislock.Client
}

// GetFeed returns the viewer's social feed: recent activities from the viewer and
// their accepted friends, ordered by relevance score
func (api FeedAPI) GetFeed(ctx context.Context, viewerID persist.DBID, limit int) ([]persist.Activity, error) {
	if err := validate.ValidateFields(api.validator, validate.ValidationMap{
		"viewerID": validate.WithTag(viewerID, "required"),
		"limit":    validate.WithTag(limit, "gte=0,lte=200"),
	}); err != nil {
		return nil, err
	}

	authorIDs := append(api.friendIDs(ctx, viewerID), viewerID)
	posts := api.recentActivities(ctx, authorIDs)

	return feed.NewScorer().RankFeed(posts, viewerID, limit), nil
}

// TrendingFeed returns a globally ranked feed of recent activity across all users.
// The ranked list is cached; recomputation is guarded by a distributed lock so
// concurrent cache misses don't all pay for the scoring pass.
func (api FeedAPI) TrendingFeed(ctx context.Context, limit int) ([]persist.Activity, error) {
	if err := validate.ValidateFields(api.validator, validate.ValidationMap{
		"limit": validate.WithTag(limit, "gte=0,lte=200"),
	}); err != nil {
		return nil, err
	}

	l := redis.LazyCache{
		Cache: api.cache,
		Key:   fmt.Sprintf("trending:%d", limit),
		TTL:   trendingCacheTTL,
		CalcFunc: func(ctx context.Context) ([]byte, error) {
			release := api.obtainRecomputeLock(ctx)
			defer release()

			posts := api.recentActivities(ctx, nil)
			ranked := feed.NewScorer().RankFeed(posts, "", limit)
			return json.Marshal(ranked)
		},
	}

	b, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}

	var ranked []persist.Activity
	if err := json.Unmarshal(b, &ranked); err != nil {
		return nil, err
	}
	return ranked, nil
}

// friendIDs returns the IDs of the viewer's accepted friends, degrading to none on
// fetch failure
func (api FeedAPI) friendIDs(ctx context.Context, viewerID persist.DBID) []persist.DBID {
	friendships, err := api.repos.Friendships.GetByUserID(ctx, viewerID)
	if err != nil {
		logger.For(ctx).Errorf("failed to fetch friendships for feed, continuing without friends: %s", err)
		sentryutil.ReportError(ctx, err)
		return nil
	}

	g := socialgraph.BuildGraph(friendships)
	ids := make([]persist.DBID, 0, g.FriendCount(viewerID))
	for id := range g.NeighborsOf(viewerID) {
		ids = append(ids, id)
	}
	return ids
}

// recentActivities fetches the ranking window of activities for the given authors,
// or for everyone when authorIDs is nil. Fetch failures degrade to an empty feed.
func (api FeedAPI) recentActivities(ctx context.Context, authorIDs []persist.DBID) []persist.Activity {
	since := time.Now().Add(-feedWindow)

	var posts []persist.Activity
	var err error
	if authorIDs == nil {
		posts, err = api.repos.Activities.GetRecent(ctx, since, feedFetchLimit)
	} else {
		posts, err = api.repos.Activities.GetRecentByUserIDs(ctx, authorIDs, since, feedFetchLimit)
	}
	if err != nil {
		logger.For(ctx).Errorf("failed to fetch activities, continuing with empty feed: %s", err)
		sentryutil.ReportError(ctx, err)
		return nil
	}
	return posts
}

// obtainRecomputeLock tries to take the trending recompute lock. Losing the race is
// not fatal; the recompute proceeds anyway and the last writer wins the cache slot.
func (api FeedAPI) obtainRecomputeLock(ctx context.Context) func() {
	lock, err := api.lock.Obtain(ctx, "trending:recompute", trendingLockTTL, nil)
	if err != nil {
		if err != redislock.ErrNotObtained {
			logger.For(ctx).Warnf("failed to obtain trending recompute lock: %s", err)
		}
		return func() {}
	}
	return func() {
		if err := lock.Release(ctx); err != nil {
			logger.For(ctx).Warnf("failed to release trending recompute lock: %s", err)
		}
	}
}
