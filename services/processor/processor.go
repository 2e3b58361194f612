// Package processor drives the complaint pipeline: crawl unread mail,
// extract the complaint, classify it, anonymize it, generate and restore a
// reply and dispatch the result. Per-email failures are recorded and never
// abort a batch; the email is left unread so the next polling pass retries it.
package processor

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/config"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/dto"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/interfaces"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/analysis"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/anonymization"
	coreerrors "github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/errors"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/extraction"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/logger"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/models"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/tracing"
)

// Reply categories as they appear in dispatched subjects and the audit log.
const (
	CategoryLeftBehind = "Beschwerde stehen gelassen"
	CategoryOther      = "Andere Kategorie"
)

// Pipeline stages recorded on failed emails.
const (
	StageExtraction     = "extraction"
	StageCategorization = "categorization"
	StageGeneration     = "generation"
	StageDispatch       = "dispatch"
)

type processorService struct {
	cfg        *config.Config
	log        logger.Logger
	mailbox    interfaces.MailboxService
	ai         interfaces.AIService
	anonymizer interfaces.AnonymizerService
	repository interfaces.EmailLogRepository
}

func NewProcessorService(
	cfg *config.Config,
	log logger.Logger,
	mailbox interfaces.MailboxService,
	ai interfaces.AIService,
	anonymizer interfaces.AnonymizerService,
	repository interfaces.EmailLogRepository,
) interfaces.ProcessorService {
	return &processorService{
		cfg:        cfg,
		log:        log,
		mailbox:    mailbox,
		ai:         ai,
		anonymizer: anonymizer,
		repository: repository,
	}
}

func (s *processorService) ProcessUnread(ctx context.Context) (*dto.ProcessReport, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "processorService.ProcessUnread")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagInbox(span, s.cfg.GraphConfig.InboxToProcess)

	emails, err := s.mailbox.GetUnreadEmails(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to crawl unread emails")
	}

	report := &dto.ProcessReport{TotalEmails: len(emails)}
	if len(emails) == 0 {
		s.log.Info("No unread emails to process")
		return report, nil
	}

	session, err := analysis.Open(s.cfg.ProcessingConfig.AnalysisDir, analysis.Metadata{
		Inbox: s.cfg.GraphConfig.InboxToProcess,
		Total: len(emails),
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	for _, email := range emails {
		record := s.processEmail(ctx, email)

		switch record.Outcome {
		case models.OutcomeAnswered:
			report.Answered++
		case models.OutcomeForwarded:
			report.Forwarded++
		default:
			report.Failed++
		}

		if err := session.Append(record); err != nil {
			s.log.Errorf("Failed to append analysis record: %v", err)
		}
	}

	path, err := session.Finalize()
	if err != nil {
		s.log.Errorf("Failed to finalize analysis session: %v", err)
	} else {
		report.AnalysisFile = path
	}

	s.log.Infof("Processed %d emails: %d answered, %d forwarded, %d failed",
		report.TotalEmails, report.Answered, report.Forwarded, report.Failed)
	return report, nil
}

// processEmail runs the pipeline for one email and returns its analysis
// record. Failed emails are logged with their stage and stay unread.
func (s *processorService) processEmail(ctx context.Context, email dto.CrawledEmail) analysis.Record {
	span, ctx := opentracing.StartSpanFromContext(ctx, "processorService.processEmail")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEmail(span, email.ID)

	record := analysis.Record{EmailID: email.ID, Subject: email.Subject}

	fields, err := extraction.Extract(email.Body.Content)
	if err != nil {
		return s.recordFailure(ctx, span, email, record, StageExtraction, err)
	}
	record.Template = fields.Template
	tracing.TagTemplate(span, record.Template)

	isLeftBehind, err := s.ai.ClassifyLeftBehind(ctx, fields.Message)
	if err != nil {
		err = errors.Wrapf(coreerrors.ErrCategorization, "email %s: %v", email.ID, err)
		return s.recordFailure(ctx, span, email, record, StageCategorization, err)
	}

	if !isLeftBehind {
		record.Category = CategoryOther
		subject := "❌ Kategorie: " + CategoryOther + " -> " + email.Subject
		if err := s.mailbox.SendEmail(ctx, subject, email.Body.Content, s.cfg.ProcessingConfig.NonCategoryRecipients, nil); err != nil {
			err = errors.Wrapf(coreerrors.ErrSendEmail, "email %s: %v", email.ID, err)
			return s.recordFailure(ctx, span, email, record, StageDispatch, err)
		}
		s.markRead(ctx, email.ID)
		record.Outcome = models.OutcomeForwarded
		s.storeEmailLog(ctx, email, record, "", s.cfg.ProcessingConfig.NonCategoryRecipients, nil)
		return record
	}

	record.Category = CategoryLeftBehind

	anonymized := s.anonymizer.Anonymize(ctx, fields.Message)

	reply, err := s.ai.GenerateReply(ctx, dto.GenerateReplyRequest{
		Text:         anonymized.AnonymizedText,
		Placeholders: anonymization.PlaceholderKeys(anonymized.Replacements),
		Anrede:       fields.Anrede,
		Vorname:      fields.Vorname,
		Nachname:     fields.Nachname,
	})
	if err != nil {
		err = errors.Wrapf(coreerrors.ErrAnswerGeneration, "email %s: %v", email.ID, err)
		return s.recordFailure(ctx, span, email, record, StageGeneration, err)
	}

	finalReply := anonymization.Deanonymize(reply, anonymized.Replacements, fields.Nachname)
	content := composeReply(fields.Message, finalReply)
	subject := "✅ Kategorie: " + CategoryLeftBehind + " -> " + email.Subject

	if err := s.mailbox.SendEmail(ctx, subject, content, s.cfg.ProcessingConfig.ToRecipients, s.cfg.ProcessingConfig.CcRecipients); err != nil {
		err = errors.Wrapf(coreerrors.ErrSendEmail, "email %s: %v", email.ID, err)
		return s.recordFailure(ctx, span, email, record, StageDispatch, err)
	}
	s.markRead(ctx, email.ID)

	record.Outcome = models.OutcomeAnswered
	s.storeEmailLog(ctx, email, record, finalReply, s.cfg.ProcessingConfig.ToRecipients, s.cfg.ProcessingConfig.CcRecipients)
	return record
}

func (s *processorService) GenerateMessage(ctx context.Context, request dto.GenerateMessageRequest) (*dto.GeneratedMessage, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "processorService.GenerateMessage")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	isLeftBehind, err := s.ai.ClassifyLeftBehind(ctx, request.Text)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrapf(coreerrors.ErrCategorization, "%v", err)
	}

	result := &dto.GeneratedMessage{IsLeftBehind: isLeftBehind}
	if !isLeftBehind {
		return result, nil
	}

	anonymized := s.anonymizer.Anonymize(ctx, request.Text)
	result.AnonymizedText = anonymized.AnonymizedText
	result.Replacements = anonymized.Replacements

	reply, err := s.ai.GenerateReply(ctx, dto.GenerateReplyRequest{
		Text:         anonymized.AnonymizedText,
		Placeholders: anonymization.PlaceholderKeys(anonymized.Replacements),
		Anrede:       request.Anrede,
		Vorname:      request.Vorname,
		Nachname:     request.Nachname,
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrapf(coreerrors.ErrAnswerGeneration, "%v", err)
	}

	result.FinalResponse = anonymization.Deanonymize(reply, anonymized.Replacements, request.Nachname)
	return result, nil
}

func (s *processorService) recordFailure(
	ctx context.Context,
	span opentracing.Span,
	email dto.CrawledEmail,
	record analysis.Record,
	stage string,
	err error,
) analysis.Record {
	tracing.TraceErr(span, err)
	s.log.Errorf("Failed to process email %s at stage %s: %v", email.ID, stage, err)

	record.Outcome = models.OutcomeFailed
	record.Error = err.Error()

	emailLog := s.newEmailLog(email, record)
	emailLog.FailureStage = stage
	if err := s.repository.Create(ctx, emailLog); err != nil {
		s.log.Errorf("Failed to store email log for %s: %v", email.ID, err)
	}
	return record
}

func (s *processorService) storeEmailLog(
	ctx context.Context,
	email dto.CrawledEmail,
	record analysis.Record,
	reply string,
	toRecipients, ccRecipients []string,
) {
	emailLog := s.newEmailLog(email, record)
	emailLog.Reply = reply
	emailLog.ToRecipients = toRecipients
	emailLog.CcRecipients = ccRecipients
	if err := s.repository.Create(ctx, emailLog); err != nil {
		s.log.Errorf("Failed to store email log for %s: %v", email.ID, err)
	}
}

func (s *processorService) newEmailLog(email dto.CrawledEmail, record analysis.Record) *models.EmailLog {
	emailLog := &models.EmailLog{
		MessageID:   email.ID,
		Subject:     email.Subject,
		FromAddress: email.From.EmailAddress.Address,
		Template:    record.Template,
		Category:    record.Category,
		Outcome:     record.Outcome,
	}
	if receivedAt, err := time.Parse(time.RFC3339, email.ReceivedDateTime); err == nil {
		emailLog.ReceivedAt = &receivedAt
	}
	return emailLog
}

// markRead runs after a successful dispatch. A failure here is only logged:
// the reply already went out and must not be sent again on retry.
func (s *processorService) markRead(ctx context.Context, emailID string) {
	if err := s.mailbox.MarkAsRead(ctx, emailID); err != nil {
		s.log.Errorf("Failed to mark email %s as read: %v", emailID, err)
	}
}
