package publicapi

import (
	"context"
	"database/sql"

	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/pulseclub/go-pulse/service/persist/postgres"
	"github.com/pulseclub/go-pulse/service/redis"
	"github.com/pulseclub/go-pulse/util"
	"github.com/pulseclub/go-pulse/validate"
)

const apiContextKey = "publicapi.api"

// Repositories bundles the postgres repositories the APIs read from
type Repositories struct {
	Friendships *postgres.FriendshipRepository
	Activities  *postgres.ActivityRepository
	Challenges  *postgres.ChallengeRepository
}

// NewRepositories creates the repositories on a shared database handle
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Friendships: postgres.NewFriendshipRepository(db),
		Activities:  postgres.NewActivityRepository(db),
		Challenges:  postgres.NewChallengeRepository(db),
	}
}

// PublicAPI is the closest thing to a front door this service has: every handler
// resolves one of its sub-APIs from the request context.
type PublicAPI struct {
	repos     *Repositories
	validator *validator.Validate
	Feed      *FeedAPI
	Social    *SocialAPI
	Challenge *ChallengeAPI
}

// New composes the sub-APIs over shared repositories and caches
func New(repos *Repositories, feedCache, socialCache, challengeCache *redis.Cache, lock *redislock.Client) *PublicAPI {
	v := newValidator()

	return &PublicAPI{
		repos:     repos,
		validator: v,
		Feed:      &FeedAPI{repos: repos, validator: v, cache: feedCache, lock: lock},
		Social:    &SocialAPI{repos: repos, validator: v, cache: socialCache},
		Challenge: &ChallengeAPI{repos: repos, validator: v, cache: challengeCache},
	}
}

// AddTo stores the API on the gin context for later retrieval with For
func AddTo(c *gin.Context, api *PublicAPI) {
	c.Set(apiContextKey, api)
}

// For retrieves the API stored on the request's gin context
func For(ctx context.Context) *PublicAPI {
	gc := util.GinContextFromContext(ctx)
	return gc.Value(apiContextKey).(*PublicAPI)
}

func newValidator() *validator.Validate {
	v := validator.New()
	validate.RegisterCustomValidators(v)
	return v
}
