package postgres

import (
	"context"
	"fmt"
	"fraudGuard/domain"

	"gorm.io/gorm"
)

type SuspicionRepository struct {
	DB *gorm.DB
}

func NewSuspicionRepository(db *gorm.DB) *SuspicionRepository {
	return &SuspicionRepository{
		DB: db,
	}
}

func (r *SuspicionRepository) Save(ctx context.Context, audit *domain.SuspicionAudit) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(audit).Error; err != nil {
		return fmt.Errorf("failed to save suspicion report: %w", err)
	}

	return nil
}

// FindByDigest returns the audits for one prompt, newest first.
func (r *SuspicionRepository) FindByDigest(ctx context.Context, digest string, limit int) ([]domain.SuspicionAudit, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var audits []domain.SuspicionAudit
	err := r.DB.WithContext(ctx).
		Where("prompt_digest = ?", digest).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&audits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find suspicion reports: %w", err)
	}

	return audits, nil
}
