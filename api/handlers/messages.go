package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/dto"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/interfaces"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/tracing"
)

// GenerateMessage runs the reply pipeline on a single complaint text, for
// agents drafting an answer without going through the mailbox.
func GenerateMessage(processor interfaces.ProcessorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "GenerateMessage", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		var request dto.GenerateMessageRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if request.Text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
			return
		}

		message, err := processor.GenerateMessage(ctx, request)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, message)
	}
}
