package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scentMatch/domain"

	"gorm.io/gorm"
)

// UserSignalRepository is the read-only profile/behavior store used by the
// experience classifier.
type UserSignalRepository struct {
	DB *gorm.DB
}

func NewUserSignalRepository(db *gorm.DB) *UserSignalRepository {
	return &UserSignalRepository{
		DB: db,
	}
}

type signalRow struct {
	CreatedAt        time.Time
	QuizCompleted    bool
	CollectionSize   int
	InteractionCount int
}

// GetSignals performs the batched read: account age, quiz flag, collection
// and interaction counts in a single round trip, then one extra query for
// the free-text signals.
func (r *UserSignalRepository) GetSignals(ctx context.Context, userID uint) (domain.UserSignals, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserSignals{}, fmt.Errorf("context error: %w", err)
	}

	var row signalRow
	err := r.DB.WithContext(ctx).Raw(`
		SELECT u.created_at,
		       u.quiz_completed,
		       (SELECT COUNT(*) FROM user_collections c WHERE c.user_id = u.id)  AS collection_size,
		       (SELECT COUNT(*) FROM user_interactions i WHERE i.user_id = u.id) AS interaction_count
		FROM users u
		WHERE u.id = ? AND u.deleted_at IS NULL`, userID).
		Scan(&row).Error
	if err != nil {
		return domain.UserSignals{}, fmt.Errorf("failed to query user signals: %w", err)
	}
	if row.CreatedAt.IsZero() {
		return domain.UserSignals{}, errors.New("user not found")
	}

	texts, err := r.signalTexts(ctx, userID)
	if err != nil {
		return domain.UserSignals{}, err
	}

	return domain.UserSignals{
		AccountCreatedAt: row.CreatedAt,
		CollectionSize:   row.CollectionSize,
		QuizCompleted:    row.QuizCompleted,
		InteractionCount: row.InteractionCount,
		SignalTexts:      texts,
	}, nil
}

// GetLevelSignals is the narrow read for the level-only fast path: account
// age and collection size, nothing else.
func (r *UserSignalRepository) GetLevelSignals(ctx context.Context, userID uint) (domain.UserSignals, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserSignals{}, fmt.Errorf("context error: %w", err)
	}

	var user domain.User
	if err := r.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserSignals{}, errors.New("user not found")
		}
		return domain.UserSignals{}, err
	}

	var count int64
	if err := r.DB.WithContext(ctx).
		Model(&domain.UserCollectionItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return domain.UserSignals{}, fmt.Errorf("failed to count collection: %w", err)
	}

	return domain.UserSignals{
		AccountCreatedAt: user.CreatedAt,
		CollectionSize:   int(count),
		QuizCompleted:    user.QuizCompleted,
	}, nil
}

// signalTexts gathers quiz answers and collection notes for keyword mining.
func (r *UserSignalRepository) signalTexts(ctx context.Context, userID uint) ([]string, error) {
	var user domain.User
	if err := r.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}

	texts := make([]string, 0, len(user.QuizAnswers)+4)
	for _, v := range user.QuizAnswers {
		if s, ok := v.(string); ok && s != "" {
			texts = append(texts, s)
		}
	}

	var notes []string
	if err := r.DB.WithContext(ctx).
		Model(&domain.UserCollectionItem{}).
		Where("user_id = ? AND notes <> ''", userID).
		Limit(50).
		Pluck("notes", &notes).Error; err != nil {
		return nil, fmt.Errorf("failed to load collection notes: %w", err)
	}

	return append(texts, notes...), nil
}
