package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/studyclub-io/study-club-be/config"
	"github.com/studyclub-io/study-club-be/controllers"
	"github.com/studyclub-io/study-club-be/db/mysql"
	"github.com/studyclub-io/study-club-be/routes"
	"github.com/studyclub-io/study-club-be/services"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal().Err(err).Msg("could not load configuration")
	}
	configureLogging(&cfg.Logging)

	database, err := mysql.GetDatabase(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to the database")
	}
	defer database.Close()

	sessions := services.NewSessions(&cfg.Session)
	oauth := services.NewOAuthClient(&cfg.OAuth)

	var bucket *services.StorageBucket
	if cfg.Storage.Bucket != "" {
		bucket, err = services.NewStorageBucket(context.Background(), cfg.Storage.Bucket)
		if err != nil {
			log.Fatal().Err(err).Msg("could not connect to the uploads bucket")
		}
	}

	communityController, err := controllers.NewCommunityController(context.Background(), database, database)
	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize the community controller")
	}
	authController := controllers.NewAuthController(database, oauth, sessions)
	membershipController := controllers.NewMembershipController(database)
	attendanceController := controllers.NewAttendanceController(database)
	notificationController := controllers.NewNotificationController(database)

	gin.SetMode(cfg.Server.Mode)
	if err := routes.RegisterValidations(); err != nil {
		log.Fatal().Err(err).Msg("could not register request validations")
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.Origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	api := r.Group("/api")
	routes.AddHealthRoutes(api, database)
	routes.AddAuthRoutes(api, authController)
	routes.AddUserRoutes(api, database, sessions, authController)
	routes.AddCommunityRoutes(api, database, sessions, communityController)
	routes.AddSearchRoutes(api, communityController)
	routes.AddMemberRoutes(api, database, sessions, membershipController)
	routes.AddRoundRoutes(api, database, sessions)
	routes.AddAttendanceRoutes(api, database, sessions, attendanceController)
	routes.AddGoalRoutes(api, database, sessions)
	routes.AddNotificationRoutes(api, database, sessions, notificationController)
	routes.AddReactionRoutes(api, database, sessions)
	if bucket != nil {
		routes.AddUploadRoutes(api, database, sessions, bucket)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown did not complete cleanly")
	}
}

func configureLogging(cfg *config.Logging) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
