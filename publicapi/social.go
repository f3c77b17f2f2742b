package publicapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pulseclub/go-pulse/service/logger"
	"github.com/pulseclub/go-pulse/service/persist"
	"github.com/pulseclub/go-pulse/service/recommend"
	"github.com/pulseclub/go-pulse/service/redis"
	"github.com/pulseclub/go-pulse/service/sentryutil"
	"github.com/pulseclub/go-pulse/service/socialgraph"
	"github.com/pulseclub/go-pulse/util"
	"github.com/pulseclub/go-pulse/validate"
)

const (
	suggestionCacheTTL = time.Minute * 10
	bootstrapLimit     = 10
)

// SocialAPI serves "people you may know" suggestions
type SocialAPI struct {
	repos     *Repositories
	validator *validator.Validate
	cache     *redis.Cache
}

// SuggestFriends returns single-hop mutual-friend suggestions for the user. A user
// with no accepted friendships gets bootstrap suggestions drawn from the most
// frequently suggested users overall. Fresh results are written back asynchronously
// so the bootstrap pool stays warm.
func (api SocialAPI) SuggestFriends(ctx context.Context, userID persist.DBID, limit int) ([]recommend.Suggestion, error) {
	if err := validate.ValidateFields(api.validator, validate.ValidationMap{
		"userID": validate.WithTag(userID, "required"),
		"limit":  validate.WithTag(limit, "gte=0,lte=100"),
	}); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("suggestions:mutual:%s:%d", userID, limit)
	l := redis.LazyCache{
		Cache: api.cache,
		Key:   cacheKey,
		TTL:   suggestionCacheTTL,
		CalcFunc: func(ctx context.Context) ([]byte, error) {
			suggestions := recommend.SuggestFriends(api.buildGraph(ctx), userID, limit)

			if len(suggestions) == 0 {
				bootstrapped, err := api.bootstrapSuggestions(ctx)
				if err != nil {
					return nil, err
				}
				suggestions = bootstrapped
			} else {
				go api.saveSuggestions(userID, suggestions)
			}

			return json.Marshal(suggestions)
		},
	}

	b, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}

	var suggestions []recommend.Suggestion
	if err := json.Unmarshal(b, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// SuggestFriendsMultiHop returns suggestions discovered by breadth-first exploration
func (api SocialAPI) SuggestFriendsMultiHop(ctx context.Context, userID persist.DBID, maxHops, limit int) ([]recommend.MultiHopSuggestion, error) {
	if err := validate.ValidateFields(api.validator, validate.ValidationMap{
		"userID":  validate.WithTag(userID, "required"),
		"maxHops": validate.WithTag(maxHops, "gte=0,lte=6"),
		"limit":   validate.WithTag(limit, "gte=0,lte=100"),
	}); err != nil {
		return nil, err
	}

	return recommend.SuggestFriendsMultiHop(api.buildGraph(ctx), userID, maxHops, limit), nil
}

// SuggestFriendsByInterest ranks other users by overlap of posted activity types
func (api SocialAPI) SuggestFriendsByInterest(ctx context.Context, userID persist.DBID) ([]recommend.InterestSuggestion, error) {
	if err := validate.ValidateFields(api.validator, validate.ValidationMap{
		"userID": validate.WithTag(userID, "required"),
	}); err != nil {
		return nil, err
	}

	return recommend.SuggestByInterest(userID, api.interestsByUser(ctx)), nil
}

// SuggestFriendsHybrid blends the mutual-friend and interest signals
func (api SocialAPI) SuggestFriendsHybrid(ctx context.Context, userID persist.DBID) ([]recommend.HybridSuggestion, error) {
	if err := validate.ValidateFields(api.validator, validate.ValidationMap{
		"userID": validate.WithTag(userID, "required"),
	}); err != nil {
		return nil, err
	}

	return recommend.SuggestHybrid(api.buildGraph(ctx), userID, api.interestsByUser(ctx), recommend.DefaultHybridWeights), nil
}

// buildGraph fetches the accepted edge list and rebuilds the graph. Fetch failures
// degrade to an empty graph rather than failing the request.
func (api SocialAPI) buildGraph(ctx context.Context) *socialgraph.Graph {
	friendships, err := api.repos.Friendships.GetAllByStatus(ctx, persist.FriendshipStatusAccepted)
	if err != nil {
		logger.For(ctx).Errorf("failed to fetch friendships, continuing with empty graph: %s", err)
		sentryutil.ReportError(ctx, err)
		friendships = nil
	}
	return socialgraph.BuildGraph(friendships)
}

// interestsByUser fetches per-user activity-type labels, degrading to empty on failure
func (api SocialAPI) interestsByUser(ctx context.Context) map[persist.DBID][]string {
	interests, err := api.repos.Activities.GetInterestLabelsByUser(ctx)
	if err != nil {
		logger.For(ctx).Errorf("failed to fetch interest labels, continuing with none: %s", err)
		sentryutil.ReportError(ctx, err)
		return map[persist.DBID][]string{}
	}
	return interests
}

func (api SocialAPI) bootstrapSuggestions(ctx context.Context) ([]recommend.Suggestion, error) {
	ids, err := api.repos.Friendships.GetTopSuggestedUserIDs(ctx, bootstrapLimit)
	if err != nil {
		return nil, err
	}
	suggestions, _ := util.Map(ids, func(id persist.DBID) (recommend.Suggestion, error) {
		return recommend.Suggestion{UserID: id}, nil
	})
	return suggestions, nil
}

func (api SocialAPI) saveSuggestions(userID persist.DBID, suggestions []recommend.Suggestion) {
	ids, _ := util.Map(suggestions, func(s recommend.Suggestion) (persist.DBID, error) {
		return s.UserID, nil
	})
	if err := api.repos.Friendships.UpsertSuggestions(context.Background(), userID, ids); err != nil {
		logger.For(nil).Errorf("failed to save friend suggestions for user %s: %s", userID, err)
	}
}
