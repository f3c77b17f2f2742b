package server

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/pulseclub/go-pulse/middleware"
	"github.com/pulseclub/go-pulse/publicapi"
	"github.com/pulseclub/go-pulse/service/logger"
	"github.com/pulseclub/go-pulse/service/persist/postgres"
	"github.com/pulseclub/go-pulse/service/redis"
	"github.com/pulseclub/go-pulse/service/sentryutil"
)

// Init initializes the server
func Init() {
	setDefaults()

	initLogger()
	sentryutil.Init()

	router := CoreInit(postgres.MustCreateClient())

	http.Handle("/", router)
}

// CoreInit initializes core server functionality. This is abstracted
// so the test server can also utilize it
func CoreInit(db *sql.DB) *gin.Engine {
	logger.For(nil).Info("initializing server...")

	if viper.GetString("ENV") != "production" {
		gin.SetMode(gin.DebugMode)
		logrus.SetLevel(logrus.DebugLevel)
	}

	router := gin.Default()
	router.Use(middleware.Sentry(true), middleware.HandleCORS(), middleware.GinContextToContext(), middleware.ErrLogger())

	repos := publicapi.NewRepositories(db)
	lock := redis.NewLockClient(redis.NewCache(redis.RecommendLockCache))

	api := publicapi.New(
		repos,
		redis.NewCache(redis.FeedCache),
		redis.NewCache(redis.SocialCache),
		redis.NewCache(redis.ChallengeCache),
		lock,
	)

	router.Use(func(c *gin.Context) {
		publicapi.AddTo(c, api)
		c.Next()
	})

	return handlersInit(router)
}

func initLogger() {
	logger.SetLoggerOptions(func(l *logrus.Logger) {
		l.SetReportCaller(true)

		if viper.GetString("ENV") != "production" {
			l.SetLevel(logrus.DebugLevel)
		}

		if viper.GetString("ENV") == "local" {
			l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		} else {
			l.SetFormatter(&logrus.JSONFormatter{})
		}
	})
}

func setDefaults() {
	viper.SetDefault("ENV", "local")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("PORT", 4000)
	viper.SetDefault("POSTGRES_HOST", "0.0.0.0")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "")
	viper.SetDefault("POSTGRES_DB", "postgres")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("REDIS_PASS", "")
	viper.SetDefault("SENTRY_DSN", "")
	viper.SetDefault("VERSION", "")

	viper.AutomaticEnv()
}
