package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.user_interactions (
//     id             BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id        BIGINT NOT NULL,
//     fragrance_id   BIGINT,
//     interaction_type TEXT NOT NULL,
//     context        JSONB,
//     created_at     TIMESTAMPTZ DEFAULT NOW()
// );

type UserInteraction struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	UserID          uint              `gorm:"column:user_id;not null" json:"user_id"`
	FragranceID     uint64            `gorm:"column:fragrance_id" json:"fragrance_id"`
	InteractionType string            `gorm:"column:interaction_type;not null" json:"interaction_type"`
	Context         datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (UserInteraction) TableName() string {
	return "user_interactions"
}

// CREATE TABLE public.user_collections (
//     id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id      BIGINT NOT NULL,
//     fragrance_id BIGINT NOT NULL,
//     notes        TEXT,
//     created_at   TIMESTAMPTZ DEFAULT NOW()
// );

type UserCollectionItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"column:user_id;not null" json:"user_id"`
	FragranceID uint64    `gorm:"column:fragrance_id;not null" json:"fragrance_id"`
	Notes       string    `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (UserCollectionItem) TableName() string {
	return "user_collections"
}
