package httpapi

import (
	"math/rand"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/placedir/backend/internal/config"
	"github.com/placedir/backend/internal/db"
	"github.com/placedir/backend/internal/http/handlers"
	"github.com/placedir/backend/internal/http/middleware"
	"github.com/placedir/backend/internal/service"

	_ "github.com/placedir/backend/docs"
)

func Router(cfg config.Config, store *db.Store, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	places := service.NewPlaceService(store, rng, logger)
	sections := &service.SectionService{Store: store}
	users := &service.UserService{Store: store, BcryptCost: cfg.BcryptCost}
	auth := &service.AuthService{Store: store, JWTSecret: cfg.JWTSecret, BcryptCost: cfg.BcryptCost}

	h := &handlers.Handler{
		Store:     store,
		Places:    places,
		Sections:  sections,
		Users:     users,
		Auth:      auth,
		Validator: validator.New(),
		Logger:    logger,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.POST("/auth/signup", h.SignUp)
		api.POST("/auth/login", h.LogIn)

		api.GET("/places", h.PlacesList)
		api.GET("/places/:id", h.PlaceDetails)
		api.GET("/places/:id/sections", h.PlaceSections)
		api.POST("/places/search", h.PlacesSearch)
		api.POST("/places/locate", h.PlacesLocate)
	}

	authed := api.Group("")
	authed.Use(middleware.Auth(cfg.JWTSecret))
	{
		authed.POST("/places", h.PlaceCreate)
		authed.PUT("/places/:id", h.PlaceUpdate)
		authed.DELETE("/places/:id", h.PlaceDelete)
		authed.POST("/sections", h.SectionCreate)
		authed.POST("/reservations", h.ReservationCreate)

		authed.GET("/users", h.UsersList)
		authed.GET("/users/:id", h.UserDetails)
		authed.POST("/users", h.UserCreate)
		authed.PUT("/users/:id", h.UserUpdate)
		authed.DELETE("/users/:id", h.UserDelete)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
