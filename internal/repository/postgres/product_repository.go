package postgres

import (
	"context"
	"errors"
	"fmt"
	"fraudGuard/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product

	err := r.DB.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, fmt.Errorf("%w: %d", domain.ErrProductNotFound, id)
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

// SaveVerification stores the listing's new trust state and appends a status
// history entry in one transaction.
func (r *ProductRepository) SaveVerification(ctx context.Context, v domain.ProductVerification) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	flags := datatypes.NewJSONSlice(v.Flags)
	if flags == nil {
		flags = datatypes.JSONSlice[string]{}
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Product{}).
			Where("id = ?", v.ProductID).
			Updates(map[string]any{
				"trust_score": v.TrustScore,
				"desc_match":  v.Score,
				"flags":       flags,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update product: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %d", domain.ErrProductNotFound, v.ProductID)
		}

		entry := domain.ProductStatusHistory{
			ProductID:  v.ProductID,
			TrustScore: v.TrustScore,
			DescMatch:  v.Score,
			Flags:      flags,
			Reason:     v.Reason,
			ChangedAt:  v.CheckedAt,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to append status history: %w", err)
		}

		return nil
	})
}
