// internal/model/deck.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deck はユーザーが所有するカードの束を表します
// デッキ名はユーザー内で一意 (大文字小文字を区別しない)
type Deck struct {
	DeckID    uint           `gorm:"primaryKey" json:"deck_id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	Name      string         `gorm:"not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 関連 (Preload用、削除時のカスケード用)
	Cards []Card `gorm:"foreignKey:DeckID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Deck) TableName() string {
	return "decks"
}

// デッキ作成リクエストDTO
type PostDeckRequest struct {
	Name string `json:"name" validate:"required,min=1,max=40"`
}

// デッキ名変更リクエストDTO
type PutDeckRequest struct {
	Name string `json:"name" validate:"required,min=1,max=40"`
}

// DeckResponse はクライアントに返すデッキ情報の構造体
type DeckResponse struct {
	DeckID    uint      `json:"deck_id"`
	Name      string    `json:"name"`
	CardCount int       `json:"card_count"`
	CreatedAt time.Time `json:"created_at"`
}
