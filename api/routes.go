package api

import (
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/api/handlers"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/api/middleware"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/repository"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/tracing"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/services"
)

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(r *gin.Engine, s *services.Services, repos *repository.Repositories, apiKey string) {
	if s == nil {
		panic("Services cannot be nil")
	}
	if repos == nil {
		panic("Repositories cannot be nil")
	}

	r.Use(gin.Recovery())
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer()))

	r.GET("/health", handlers.HealthCheck)

	apiKeyMiddleware := middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  "X-TRANSITIQ-API-KEY",
		ValidAPIKey: apiKey,
	})

	v1 := r.Group("/v1")
	v1.Use(apiKeyMiddleware)
	{
		emails := v1.Group("/emails")
		{
			emails.POST("/process", handlers.ProcessEmails(s.ProcessorService))
			emails.GET("", handlers.ListEmails(repos.EmailLogRepository))
			emails.PUT("/:id/read", handlers.MarkEmailRead(s.MailboxService))
			emails.POST("/classify", handlers.ClassifyEmail())
		}

		messages := v1.Group("/messages")
		{
			messages.POST("/generate", handlers.GenerateMessage(s.ProcessorService))
		}
	}
}
