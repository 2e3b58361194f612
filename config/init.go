package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/logger"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/tracing"
)

type Config struct {
	AppConfig        *AppConfig
	Logger           *logger.Config
	Tracing          *tracing.JaegerConfig
	DatabaseConfig   *DatabaseConfig
	GraphConfig      *GraphConfig
	OpenAIConfig     *OpenAIConfig
	AnonymizerConfig *AnonymizerConfig
	ProcessingConfig *ProcessingConfig
}

func InitConfig() (*Config, error) {
	config := &Config{
		AppConfig:        &AppConfig{},
		Logger:           &logger.Config{},
		Tracing:          &tracing.JaegerConfig{},
		DatabaseConfig:   &DatabaseConfig{},
		GraphConfig:      &GraphConfig{},
		OpenAIConfig:     &OpenAIConfig{},
		AnonymizerConfig: &AnonymizerConfig{},
		ProcessingConfig: &ProcessingConfig{},
	}

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		log.Fatalf("Error loading email-answer config: %v", err)
	}

	return config, nil
}
