package http

import (
	"net/http"
	"time"

	"github.com/astro-web3/volunteer-management/internal/config"
	"github.com/astro-web3/volunteer-management/internal/transport/http/handler"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	bannerText = "Volunteer join in club is running"
	corsMaxAge = 12 * time.Hour
	ownerParam = "email"
)

// Routes groups the handlers mounted by NewRouter. Metrics may be nil.
type Routes struct {
	Guard     *Guard
	Session   *SessionHandler
	Volunteer *handler.VolunteerHandler
	Metrics   *Metrics
}

func NewRouter(cfg *config.Config, routes Routes) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode:
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	if cfg.Observability.TraceEnabled {
		router.Use(otelgin.Middleware(serviceName))
	}
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware())
	if routes.Metrics != nil {
		router.Use(routes.Metrics.middleware())
	}
	if len(cfg.CORS.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", requestIDHeader},
			ExposeHeaders:    []string{requestIDHeader},
			AllowCredentials: true,
			MaxAge:           corsMaxAge,
		}))
	}

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, bannerText)
	})
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	if routes.Metrics != nil {
		router.GET("/metrics", routes.Metrics.handler())
	}

	router.POST("/jwt", routes.Session.Login)
	router.GET("/logout", routes.Session.Logout)

	guard := routes.Guard
	v := routes.Volunteer

	router.GET("/volunteers", v.ListPosts)
	router.GET("/volunteer/:id", v.GetPost)
	router.POST("/volunteer", v.CreatePost)
	router.PUT("/volunteer/:id", v.UpdatePost)
	router.DELETE("/volunteer/:id", v.DeletePost)
	router.GET("/needVolunteer/:email", guard.Owned(ownerParam, v.ListPostsByOrganizer)...)
	router.GET("/allVolunteers", v.SearchPosts)
	router.GET("/volunteersCount", v.CountPosts)

	router.GET("/beVolunteer", v.ListRegistrations)
	router.POST("/beVolunteer", v.Register)
	router.GET("/beVolunteer/:email", guard.Owned(ownerParam, v.ListRegistrationsByOrganizer)...)
	router.DELETE("/beVolunteer/:id", v.DeleteRegistration)
	router.GET("/myRequest/:email", guard.Owned(ownerParam, v.ListRegistrationsByVolunteer)...)

	return router
}
