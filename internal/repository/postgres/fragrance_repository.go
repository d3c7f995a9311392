package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"scentMatch/domain"

	"gorm.io/gorm"
)

type FragranceRepository struct {
	DB *gorm.DB
}

func NewFragranceRepository(db *gorm.DB) *FragranceRepository {
	return &FragranceRepository{
		DB: db,
	}
}

// GetRanked returns the top-N candidates ordered by popularity score,
// optionally narrowed by preference signals (gender, accord family).
// Scores are normalized into [0,1] against the best row in the set.
func (r *FragranceRepository) GetRanked(
	ctx context.Context,
	signals map[string]string,
	limit int,
) ([]domain.FragranceRecommendation, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 10
	}

	q := r.DB.WithContext(ctx).Model(&domain.Fragrance{})

	if g, ok := signals["gender"]; ok && g != "" {
		q = q.Where("gender = ? OR gender = 'unisex'", g)
	}
	if a, ok := signals["accord"]; ok && a != "" {
		q = q.Where("accords @> ?", fmt.Sprintf(`["%s"]`, a))
	}

	var rows []domain.Fragrance
	if err := q.Order("popularity_score DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query fragrances: %w", err)
	}

	return toRecommendations(rows), nil
}

// GetPopular returns a broad pool ordered by community rating volume,
// independent of the preference-signal ranking.
func (r *FragranceRepository) GetPopular(
	ctx context.Context,
	limit int,
) ([]domain.FragranceRecommendation, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 10
	}

	var rows []domain.Fragrance
	if err := r.DB.WithContext(ctx).
		Order("rating_count DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query popular fragrances: %w", err)
	}

	return toRecommendations(rows), nil
}

func toRecommendations(rows []domain.Fragrance) []domain.FragranceRecommendation {
	maxScore := 0.0
	for _, f := range rows {
		if f.PopularityScore > maxScore {
			maxScore = f.PopularityScore
		}
	}
	if maxScore == 0 {
		maxScore = 1
	}

	recs := make([]domain.FragranceRecommendation, 0, len(rows))
	for _, f := range rows {
		recs = append(recs, domain.FragranceRecommendation{
			FragranceID:     f.ID,
			Name:            f.Name,
			Brand:           f.Brand,
			Category:        dominantAccord(f.Accords),
			Score:           f.PopularityScore / maxScore,
			Rationale:       rationaleFor(f),
			SamplePrice:     f.SamplePrice,
			SampleAvailable: f.SampleAvailable,
		})
	}

	return recs
}

// dominantAccord picks the first entry of the accords JSON array.
func dominantAccord(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}

	var accords []string
	if err := json.Unmarshal(raw, &accords); err != nil || len(accords) == 0 {
		return ""
	}

	return accords[0]
}

func rationaleFor(f domain.Fragrance) string {
	accord := dominantAccord(f.Accords)
	if accord == "" {
		return fmt.Sprintf("Highly rated pick from %s", f.Brand)
	}

	return fmt.Sprintf("Popular %s fragrance from %s", accord, f.Brand)
}
