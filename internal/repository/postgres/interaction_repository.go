package postgres

import (
	"context"
	"fmt"

	"scentMatch/domain"

	"gorm.io/gorm"
)

type InteractionRepository struct {
	DB *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{
		DB: db,
	}
}

// SaveInteraction appends one behavior row. These rows feed the experience
// classifier's interaction count.
func (r *InteractionRepository) SaveInteraction(ctx context.Context, event domain.UserInteraction) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("failed to save interaction: %w", err)
	}

	return nil
}
