package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	AllowedOrigins []string
	// MediaDir is served under /static when set.
	MediaDir string
}

func NewRouter(builder BriefingBuilder, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
	}))

	h := NewBriefingHandler(builder)
	r.GET("/", h.GetRoot)
	r.GET("/briefing", h.GetBriefing)
	r.GET("/health", h.GetHealth)

	if cfg.MediaDir != "" {
		r.Static("/static", cfg.MediaDir)
	}

	return r
}
