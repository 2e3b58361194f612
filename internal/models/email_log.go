package models

import (
	"time"

	"github.com/lib/pq"
)

// Processing outcomes stored per email.
const (
	OutcomeAnswered  = "answered"
	OutcomeForwarded = "forwarded"
	OutcomeFailed    = "failed"
)

// EmailLog records the terminal state of one processed complaint email.
type EmailLog struct {
	ID          string     `gorm:"column:id;type:varchar(50);primaryKey"`
	MessageID   string     `gorm:"column:message_id;uniqueIndex;type:varchar(255);not null"`
	Subject     string     `gorm:"column:subject;type:varchar(1000)"`
	FromAddress string     `gorm:"column:from_address;type:varchar(255);index"`
	ReceivedAt  *time.Time `gorm:"column:received_at;type:timestamp;index"`

	// Pipeline results
	Template     string `gorm:"column:template;type:varchar(100);index"`
	Category     string `gorm:"column:category;type:varchar(100);index"`
	Outcome      string `gorm:"column:outcome;type:varchar(50);index"`
	FailureStage string `gorm:"column:failure_stage;type:varchar(100)"`
	Reply        string `gorm:"column:reply;type:text"`

	// Dispatch targets
	ToRecipients pq.StringArray `gorm:"column:to_recipients;type:text[]"`
	CcRecipients pq.StringArray `gorm:"column:cc_recipients;type:text[]"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:current_timestamp"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:current_timestamp"`
}

func (EmailLog) TableName() string {
	return "email_logs"
}
