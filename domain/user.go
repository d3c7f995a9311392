package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID            uint              `gorm:"primaryKey"`
	FullName      string            `gorm:"column:full_name;not null"`
	Email         string            `gorm:"column:email;unique;not null"`
	Role          string            `gorm:"column:role;default:customer"`
	QuizCompleted bool              `gorm:"column:quiz_completed;default:false"`
	QuizAnswers   datatypes.JSONMap `gorm:"column:quiz_answers;type:jsonb"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
