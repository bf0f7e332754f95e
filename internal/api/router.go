package api

import (
	"context"
	"net/http"
	"time"

	"OlympicsHub/internal/config"
	"OlympicsHub/internal/service"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const healthTimeout = 2 * time.Second

// NewRouter 注册全部路由：读接口公开，写接口需要 Bearer 口令
func NewRouter(db *gorm.DB, svc *service.Services, cfg *config.Config, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	// 注册 pprof 方便调试和监测性能问题
	if cfg.Server.Pprof {
		pprof.Register(r)
	}

	reference := NewReferenceHandler(svc, logger)
	olympics := NewOlympicsHandler(svc, logger)
	events := NewMedalEventHandler(svc, logger)
	rounds := NewRoundHandler(svc, logger)
	matches := NewMatchHandler(svc, logger)
	medals := NewMedalHandler(svc, logger)
	schedule := NewScheduleHandler(svc, logger)

	api := r.Group("/api")
	admin := api.Group("", BearerAuth(cfg.Auth.AdminPassword))

	api.GET("/healthz", healthz(db))
	api.POST("/auth/check", AuthCheck(cfg.Auth.AdminPassword))

	// 国家 / 大项
	api.GET("/countries", reference.ListCountries)
	api.GET("/countries/:id", reference.GetCountry)
	api.GET("/countries/code/:code/profile", reference.CountryProfile)
	admin.POST("/countries", reference.CreateCountry)
	admin.PUT("/countries/:id", reference.UpdateCountry)
	admin.DELETE("/countries/:id", reference.DeleteCountry)

	api.GET("/sports", reference.ListSports)
	api.GET("/sports/:id", reference.GetSport)
	admin.POST("/sports", reference.CreateSport)
	admin.PUT("/sports/:id", reference.UpdateSport)
	admin.DELETE("/sports/:id", reference.DeleteSport)

	// 届次
	api.GET("/olympics", olympics.ListOlympics)
	api.GET("/olympics/active", olympics.GetActive)
	api.GET("/olympics/:id", olympics.GetOlympics)
	admin.POST("/olympics", olympics.CreateOlympics)
	admin.PUT("/olympics/:id", olympics.UpdateOlympics)
	admin.DELETE("/olympics/:id", olympics.DeleteOlympics)
	admin.POST("/olympics/:id/activate", olympics.Activate)

	// 小项与报名
	api.GET("/medal-events", events.ListMedalEvents)
	api.GET("/medal-events/:id", events.GetMedalEvent)
	api.GET("/medal-events/:id/participants", events.ListEventParticipants)
	admin.POST("/medal-events", events.CreateMedalEvent)
	admin.PUT("/medal-events/:id", events.UpdateMedalEvent)
	admin.DELETE("/medal-events/:id", events.DeleteMedalEvent)
	admin.POST("/medal-events/:id/participants", events.SetEventParticipants)

	api.GET("/event-participants", events.ListParticipants)
	admin.POST("/event-participants", events.AddParticipant)
	admin.DELETE("/event-participants/:id", events.RemoveParticipant)

	// 轮次与成绩
	api.GET("/rounds", rounds.ListRounds)
	api.GET("/rounds/live", rounds.LiveRounds)
	api.GET("/rounds/:id", rounds.GetRound)
	admin.POST("/rounds", rounds.CreateRound)
	admin.PUT("/rounds/:id", rounds.UpdateRound)
	admin.PUT("/rounds/:id/status", rounds.SetRoundStatus)
	admin.DELETE("/rounds/:id", rounds.DeleteRound)

	api.GET("/round-results", rounds.ListResults)
	admin.POST("/round-results", rounds.CreateResult)
	admin.PUT("/round-results/:id", rounds.UpdateResult)
	admin.DELETE("/round-results/:id", rounds.DeleteResult)

	// 对阵
	api.GET("/matches", matches.ListMatches)
	api.GET("/matches/:id", matches.GetMatch)
	admin.POST("/matches", matches.CreateMatch)
	admin.PUT("/matches/:id", matches.UpdateMatch)
	admin.PUT("/matches/:id/status", matches.SetMatchStatus)
	admin.DELETE("/matches/:id", matches.DeleteMatch)

	// 奖牌与奖牌榜
	api.GET("/medals", medals.Standings)
	api.GET("/medals/all", medals.ListMedals)
	admin.POST("/medals", medals.AwardMedal)
	admin.DELETE("/medals/:id", medals.DeleteMedal)

	// 赛程 / 看板 / 设置
	api.GET("/schedule", schedule.Schedule)
	api.GET("/stats", schedule.Stats)
	api.GET("/settings", schedule.GetSettings)
	admin.PUT("/settings", schedule.UpdateSettings)

	return r
}

// healthz 探测数据库连通性
func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
