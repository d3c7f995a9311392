package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.fragrances (
//     id               BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name             TEXT NOT NULL,
//     brand            TEXT NOT NULL,
//     gender           TEXT,
//     concentration    TEXT,
//     accords          JSONB,
//     top_notes        TEXT,
//     middle_notes     TEXT,
//     base_notes       TEXT,
//     rating           NUMERIC,
//     rating_count     BIGINT,
//     popularity_score NUMERIC,
//     sample_price     NUMERIC,
//     full_price       NUMERIC,
//     sample_available BOOLEAN,
//     created_at       TIMESTAMPTZ DEFAULT NOW()
// );

type Fragrance struct {
	ID              uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string         `gorm:"column:name;type:text;not null" json:"name"`
	Brand           string         `gorm:"column:brand;type:text;not null" json:"brand"`
	Gender          string         `gorm:"column:gender;type:text" json:"gender"`
	Concentration   string         `gorm:"column:concentration;type:text" json:"concentration"`
	Accords         datatypes.JSON `gorm:"column:accords;type:jsonb" json:"accords"`
	TopNotes        string         `gorm:"column:top_notes;type:text" json:"top_notes"`
	MiddleNotes     string         `gorm:"column:middle_notes;type:text" json:"middle_notes"`
	BaseNotes       string         `gorm:"column:base_notes;type:text" json:"base_notes"`
	Rating          float64        `gorm:"column:rating;type:numeric" json:"rating"`
	RatingCount     uint64         `gorm:"column:rating_count" json:"rating_count"`
	PopularityScore float64        `gorm:"column:popularity_score;type:numeric" json:"popularity_score"`
	SamplePrice     float64        `gorm:"column:sample_price;type:numeric" json:"sample_price"`
	FullPrice       float64        `gorm:"column:full_price;type:numeric" json:"full_price"`
	SampleAvailable bool           `gorm:"column:sample_available;default:false" json:"sample_available"`
	CreatedAt       time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (Fragrance) TableName() string {
	return "fragrances"
}
