// Package http is the operator API: account management, platform lookups,
// single claims and batch job submission.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/open-builders/questbot/internal/answers"
	"github.com/open-builders/questbot/internal/common/config"
	"github.com/open-builders/questbot/internal/common/middleware"
	"github.com/open-builders/questbot/internal/domain/account"
	"github.com/open-builders/questbot/internal/domain/quest"
	cache "github.com/open-builders/questbot/internal/http/middleware"
	"github.com/open-builders/questbot/internal/pacing"
	rplatform "github.com/open-builders/questbot/internal/platform/redis"
	"github.com/open-builders/questbot/internal/report"
	"github.com/open-builders/questbot/internal/service/batch"
	"github.com/open-builders/questbot/internal/session"
	"github.com/open-builders/questbot/internal/workers"

	_ "github.com/open-builders/questbot/docs"
)

const directoryCacheTTL = 5 * time.Minute

// Roster is the account store behind the API.
type Roster interface {
	batch.Roster
	List(ctx context.Context) ([]account.Account, error)
	IDs(ctx context.Context) ([]string, error)
	Save(ctx context.Context, a account.Account, cred session.Credential) error
	UpdateProfile(ctx context.Context, a account.Account) error
	Delete(ctx context.Context, id string) error
	FindByWallet(ctx context.Context, address string) (*account.Account, error)
	Discords(ctx context.Context) ([]string, error)
	Twitters(ctx context.Context) ([]string, error)
}

// Profile is an account's platform connection as the API uses it.
type Profile interface {
	batch.Profile
	CommunityStats(ctx context.Context, subdomain, userID string) quest.MemberStats
	SiteURL(subdomain string) string
}

type Connector func(cred session.Credential) Profile

// AnswerStore reads the answer bank.
type AnswerStore interface {
	Read(ctx context.Context) (answers.Bank, error)
	Records(ctx context.Context, community string) ([]answers.Record, error)
}

type Referrals interface {
	ReferralLinks(ctx context.Context, id string) ([]report.Line, error)
}

type JobQueue interface {
	Enqueue(ctx context.Context, job batch.Job) (string, error)
	Status(ctx context.Context, id string) (*workers.Status, error)
}

type ReportLog interface {
	Lines(ctx context.Context, jobID string) ([]report.Line, error)
}

// Deps are the collaborators of the API handlers.
type Deps struct {
	Config    *config.Config
	Roster    Roster
	Connect   Connector
	Answers   AnswerStore
	Referrals Referrals
	Jobs      JobQueue
	Reports   ReportLog
	// Cache backs the directory response cache; nil disables it.
	Cache  *rplatform.Client
	Pacer  pacing.Pacer
	Logger zerolog.Logger
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(d Deps) *gin.Engine {
	if !d.Config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(d.Logger), middleware.Recovery(d.Logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{d.Config.Server.Origin}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "init_data", "X-Request-ID"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if d.Cache != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := d.Cache.HealthCheck(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unready", "error": "redis unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.Use(
		middleware.TelegramInitData(d.Config.Telegram.BotToken, d.Config.Telegram.InitDataTTL, d.Logger),
		middleware.RequireAdmin(d.Config.IsAdmin),
	)

	h := &Handlers{deps: d}
	h.registerAccounts(v1)
	h.registerCommunities(v1, cache.RedisCache(d.Cache, directoryCacheTTL))
	h.registerAnswers(v1)
	h.registerJobs(v1)
	return r
}

// Handlers serves every API route.
type Handlers struct {
	deps Deps
}

func ok(c *gin.Context, v any) {
	c.JSON(http.StatusOK, v)
}
