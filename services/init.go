package services

import (
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/config"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/interfaces"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/logger"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/repository"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/services/ai"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/services/anonymizer"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/services/graph"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/services/processor"
)

type Services struct {
	MailboxService    interfaces.MailboxService
	AIService         interfaces.AIService
	AnonymizerService interfaces.AnonymizerService
	ProcessorService  interfaces.ProcessorService
}

func InitServices(cfg *config.Config, log logger.Logger, repos *repository.Repositories) *Services {
	mailboxService := graph.NewMailboxService(cfg.GraphConfig, log)
	aiService := ai.NewAIService(cfg.OpenAIConfig, log)
	anonymizerService := anonymizer.NewAnonymizerService(cfg.AnonymizerConfig, log)

	return &Services{
		MailboxService:    mailboxService,
		AIService:         aiService,
		AnonymizerService: anonymizerService,
		ProcessorService: processor.NewProcessorService(
			cfg,
			log,
			mailboxService,
			aiService,
			anonymizerService,
			repos.EmailLogRepository,
		),
	}
}
