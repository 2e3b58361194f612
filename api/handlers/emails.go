package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/interfaces"
	coreerrors "github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/errors"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/extraction"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/tracing"
)

// ProcessEmails triggers one inbox polling pass and returns the batch report.
func ProcessEmails(processor interfaces.ProcessorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "ProcessEmails", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		report, err := processor.ProcessUnread(ctx)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, report)
	}
}

// ListEmails returns the most recent processing records, newest first.
func ListEmails(repository interfaces.EmailLogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "ListEmails", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}

		emailLogs, err := repository.List(ctx, limit)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"emails": emailLogs, "count": len(emailLogs)})
	}
}

// MarkEmailRead flags one mailbox message as read without processing it.
func MarkEmailRead(mailbox interfaces.MailboxService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "MarkEmailRead", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		emailID := c.Param("id")
		tracing.TagEmail(span, emailID)

		if err := mailbox.MarkAsRead(ctx, emailID); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": emailID, "isRead": true})
	}
}

type classifyEmailRequest struct {
	HTML string `json:"html" binding:"required"`
}

// ClassifyEmail extracts the structured fields from one raw complaint email.
// Mail that matches no known layout still returns the cleaned text as
// message, with an empty template.
func ClassifyEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "ClassifyEmail", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		var request classifyEmailRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		fields, err := extraction.Extract(request.HTML)
		if err != nil && !errors.Is(err, coreerrors.ErrUnknownTemplate) {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		tracing.TagTemplate(span, fields.Template)

		c.JSON(http.StatusOK, fields)
	}
}
