package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	"github.com/pulseclub/go-pulse/publicapi"
	"github.com/pulseclub/go-pulse/service/persist"
	"github.com/pulseclub/go-pulse/util"
	"github.com/pulseclub/go-pulse/validate"
)

func handlersInit(router *gin.Engine) *gin.Engine {

	apiGroupV1 := router.Group("/v1")

	// FEED

	feedGroup := apiGroupV1.Group("/feed")

	feedGroup.GET("/trending", getTrendingFeed())
	feedGroup.GET("/:userID", getFeed())

	// SUGGESTIONS

	apiGroupV1.GET("/suggestions/:userID", getSuggestions())

	// CHALLENGES

	apiGroupV1.GET("/challenges/recommended/:userID", getRecommendedChallenges())

	// HEALTH

	apiGroupV1.GET("/health", healthcheck())

	return router
}

func getFeed() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := persist.DBID(c.Param("userID"))
		limit, err := queryInt(c, "limit", 0)
		if err != nil {
			util.ErrResponse(c, http.StatusBadRequest, err)
			return
		}

		feed, err := publicapi.For(c).Feed.GetFeed(c, userID, limit)
		if err != nil {
			util.ErrResponse(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, feed)
	}
}

func getTrendingFeed() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := queryInt(c, "limit", 0)
		if err != nil {
			util.ErrResponse(c, http.StatusBadRequest, err)
			return
		}

		feed, err := publicapi.For(c).Feed.TrendingFeed(c, limit)
		if err != nil {
			util.ErrResponse(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, feed)
	}
}

func getSuggestions() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := persist.DBID(c.Param("userID"))
		limit, err := queryInt(c, "limit", 0)
		if err != nil {
			util.ErrResponse(c, http.StatusBadRequest, err)
			return
		}
		maxHops, err := queryInt(c, "maxHops", 0)
		if err != nil {
			util.ErrResponse(c, http.StatusBadRequest, err)
			return
		}

		api := publicapi.For(c).Social

		var result any
		switch strategy := c.DefaultQuery("strategy", "mutual"); strategy {
		case "mutual":
			result, err = api.SuggestFriends(c, userID, limit)
		case "multihop":
			result, err = api.SuggestFriendsMultiHop(c, userID, maxHops, limit)
		case "interest":
			result, err = api.SuggestFriendsByInterest(c, userID)
		case "hybrid":
			result, err = api.SuggestFriendsHybrid(c, userID)
		default:
			util.ErrResponse(c, http.StatusBadRequest, util.ErrInvalidInput{Reason: "unknown strategy: " + strategy})
			return
		}
		if err != nil {
			util.ErrResponse(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func getRecommendedChallenges() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := persist.DBID(c.Param("userID"))
		limit, err := queryInt(c, "limit", 0)
		if err != nil {
			util.ErrResponse(c, http.StatusBadRequest, err)
			return
		}

		recs, err := publicapi.For(c).Challenge.RecommendChallenges(c, userID, limit)
		if err != nil {
			util.ErrResponse(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, recs)
	}
}

type healthcheckResponse struct {
	Message string `json:"msg"`
	Env     string `json:"env"`
}

func healthcheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, healthcheckResponse{
			Message: "pulse operational",
			Env:     viper.GetString("ENV"),
		})
	}
}

func errStatus(err error) int {
	if util.ErrorAs[validate.ErrInvalidInput](err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, util.ErrInvalidInput{Reason: name + " must be an integer"}
	}
	return n, nil
}
