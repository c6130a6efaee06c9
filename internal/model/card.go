// internal/model/card.go
package model

import (
	"time"

	"gorm.io/gorm"
)

// DateLayout はカードの日付カラムの形式 (ISO-8601、時刻なし)
// 日付は文字列として永続化され、比較時は必ずパースしてから行うこと
const DateLayout = time.DateOnly

// Card はフラッシュカード1枚を表します
// LeitnerBox / LeitnerTarget がLeitner法の復習状態を保持する
type Card struct {
	CardID uint   `gorm:"primaryKey" json:"card_id"`
	DeckID uint   `gorm:"not null;index" json:"-"`
	Front  string `gorm:"not null" json:"front"`
	Back   string `gorm:"not null" json:"back"`
	// 以下の日付はすべて YYYY-MM-DD 文字列
	CreationDate    string         `gorm:"not null" json:"creation_date"`
	ReviewedDate    string         `json:"reviewed_date"`
	DueDate         string         `gorm:"not null;index" json:"due_date"`
	LeitnerBox      int            `gorm:"not null;default:0" json:"leitner_box"`
	LeitnerTarget   int            `gorm:"not null;default:0" json:"leitner_target"`
	NumberOfReviews int            `gorm:"not null;default:0" json:"number_of_reviews"`
	NumberOfPasses  int            `gorm:"not null;default:0" json:"number_of_passes"`
	CreatedAt       time.Time      `json:"-"`
	UpdatedAt       time.Time      `json:"-"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Card) TableName() string {
	return "cards"
}

// カード作成リクエストDTO
type PostCardRequest struct {
	Front string `json:"front" validate:"required,min=1"`
	Back  string `json:"back" validate:"required,min=1"`
}

// カード更新リクエストDTO (表・裏の文面のみ変更可能、復習状態は触らない)
type PutCardRequest struct {
	Front string `json:"front" validate:"required,min=1"`
	Back  string `json:"back" validate:"required,min=1"`
}
