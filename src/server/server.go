package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"carscout/src/app"
	cfg "carscout/src/configuration"
	"carscout/src/repository"
)

func RunServer(config *cfg.Properties, store repository.DocumentStore, blobs repository.BlobStore) {
	router := NewRouter(config, store, blobs)
	log.Printf("%s listening on :%s", config.Server.Name, config.Server.Port)
	if err := router.Run(fmt.Sprintf(":%s", config.Server.Port)); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// NewRouter wires the repositories, workflows, and routes onto a gin engine.
func NewRouter(config *cfg.Properties, store repository.DocumentStore, blobs repository.BlobStore) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "Cache-Control"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	pprof.Register(router)

	identity := repository.ContextIdentity{}
	users := repository.NewUserRepository(store)
	cars := repository.NewCarRepository(store, blobs, identity)
	dealerships := repository.NewDealershipRepository(store, blobs, identity, users)
	tokens := app.NewTokenManager(config.Auth.Secret, config.Auth.Issuer, config.Auth.TokenTTL)

	authHandler := NewAuthHandler(users, tokens)
	carHandler := NewCarHandler(cars, identity)
	dealershipHandler := NewDealershipHandler(dealerships, identity)

	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "success"}) })

	api := router.Group("/api")

	// Open routes: browsing needs no identity.
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Read routes take an identity when one is presented, so the ownership
	// flags in the responses work for signed-in browsers too.
	browse := api.Group("/")
	browse.Use(OptionalAuth(tokens))
	{
		browse.GET("/cars", carHandler.ListCars)
		browse.GET("/cars/:id", carHandler.GetCar)
		browse.GET("/dealerships", dealershipHandler.ListDealerships)
		browse.GET("/dealerships/:id", dealershipHandler.GetDealership)
	}

	// Everything that writes requires a bearer token.
	protected := api.Group("/")
	protected.Use(RequireAuth(tokens))
	{
		protected.GET("/profile", authHandler.GetProfile)
		protected.PUT("/profile", authHandler.PutProfile)
		protected.POST("/cars", carHandler.CreateCar)
		protected.PUT("/cars/:id", carHandler.UpdateCar)
		protected.DELETE("/cars/:id", carHandler.DeleteCar)
		protected.POST("/dealerships", dealershipHandler.CreateDealership)
		protected.PUT("/dealerships/:id", dealershipHandler.UpdateDealership)
	}

	router.NoRoute(func(ctx *gin.Context) { ctx.JSON(http.StatusNotFound, gin.H{}) })
	return router
}
