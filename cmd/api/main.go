package main

import (
	"os"
	"time"

	"learnai_go_backend/cmd/api/config"
	"learnai_go_backend/internal/api"
	"learnai_go_backend/internal/auth"
	"learnai_go_backend/internal/database"
	"learnai_go_backend/internal/services"
	"learnai_go_backend/internal/utils/tasks"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found")
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg := config.NewConfig()

	database.InitDB()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("futuredate", func(fl validator.FieldLevel) bool {
			date, ok := fl.Field().Interface().(time.Time)
			return ok && date.After(time.Now())
		})
	}

	aiClient := services.NewAIClient(cfg.CompletionAPIKey, cfg.CompletionBaseURL, cfg.CompletionModel, cfg.CompletionRetries)
	promptBuilder := services.NewPromptBuilder(cfg.SummaryMinChars)
	taskRunner := tasks.NewRunner(cfg.RequestTimeout, log.Logger)

	chatRepository := services.NewChatRepository(database.DB)
	sessionStore := services.NewSessionStore(chatRepository, cfg.HistoryWindow, cfg.HistoryLimit)
	studyRepository := services.NewStudyRepository(database.DB)
	examRepository := services.NewExamRepository(database.DB)
	summaryRepository := services.NewSummaryRepository(database.DB)

	userService := services.NewUserService(database.DB)
	chatService := services.NewChatService(aiClient, sessionStore, promptBuilder, log.Logger)
	summarizerService := services.NewSummarizerService(aiClient, promptBuilder, summaryRepository, services.NewPDFService(), cfg.SummaryMinChars, log.Logger)
	studyPlanService := services.NewStudyPlanService(aiClient, promptBuilder, studyRepository, taskRunner, log.Logger)
	examPrepService := services.NewExamPrepService(aiClient, promptBuilder, examRepository, log.Logger)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r, chatService, summarizerService, studyPlanService, examPrepService, userService, cfg.MaxUploadBytes)
	auth.SetupRoutes(r, userService)

	log.Info().Str("port", cfg.Port).Msg("Server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
