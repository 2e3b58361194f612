package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"

	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/interfaces"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/models"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/tracing"
)

type emailLogRepository struct {
	db *gorm.DB
}

func NewEmailLogRepository(db *gorm.DB) interfaces.EmailLogRepository {
	return &emailLogRepository{
		db: db,
	}
}

func (r *emailLogRepository) Create(ctx context.Context, emailLog *models.EmailLog) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "emailLogRepository.Create")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	// Check if the message was already recorded before creating
	existing := &models.EmailLog{}
	err := r.db.WithContext(ctx).
		Where("message_id = ?", emailLog.MessageID).
		First(existing).Error

	if err == nil {
		span.SetTag("duplicate", true)
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		tracing.TraceErr(span, err)
		return err
	}

	if emailLog.ID == "" {
		emailLog.ID = uuid.New().String()
	}

	result := r.db.WithContext(ctx).Create(emailLog)
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return result.Error
	}

	return nil
}

func (r *emailLogRepository) GetByMessageID(ctx context.Context, messageID string) (*models.EmailLog, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "emailLogRepository.GetByMessageID")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var emailLog models.EmailLog
	if err := r.db.WithContext(ctx).Where("message_id = ?", messageID).First(&emailLog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, err
	}

	return &emailLog, nil
}

func (r *emailLogRepository) List(ctx context.Context, limit int) ([]models.EmailLog, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "emailLogRepository.List")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	span.LogKV("limit", limit)

	if limit <= 0 {
		limit = 100
	}

	var emailLogs []models.EmailLog
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&emailLogs).Error; err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	return emailLogs, nil
}
