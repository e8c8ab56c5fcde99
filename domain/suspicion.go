package domain

import (
	"time"

	"gorm.io/datatypes"
)

type SuspicionRequest struct {
	ReturnRate    string   `json:"return_rate"`
	AverageRating string   `json:"average_rating"`
	RecentReviews []string `json:"recent_reviews"`
}

type SuspicionReport struct {
	Classification string `json:"classification"`
	Justification  string `json:"justification"`
	Confidence     string `json:"confidence"`
	// ConfidenceScore is Confidence parsed as an integer percentage when possible.
	ConfidenceScore *int   `json:"confidence_score,omitempty"`
	Raw             string `json:"raw"`
	Cached          bool   `json:"cached"`
}

// SuspicionAudit persists every verdict obtained from the generative API.
type SuspicionAudit struct {
	ID             uint64         `gorm:"primaryKey;autoIncrement"`
	PromptDigest   string         `gorm:"column:prompt_digest;index;not null"`
	Model          string         `gorm:"column:model"`
	Classification string         `gorm:"column:classification"`
	Confidence     string         `gorm:"column:confidence"`
	Justification  string         `gorm:"column:justification;type:text"`
	Raw            datatypes.JSON `gorm:"column:raw;type:jsonb"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (SuspicionAudit) TableName() string {
	return "suspicion_reports"
}
