// internal/model/user.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User はアカウントの基本情報を表します
type User struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Name         string    `gorm:"unique;not null" json:"name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	// パスワード復旧用の秘密の質問への回答 (bcryptハッシュ)
	SecurityAnswerHash string         `gorm:"not null" json:"-"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	// 関連 (削除時のカスケード用)
	Decks []Deck `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
)

// 新規登録リクエストDTO
type RegisterRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=100"`
	Password       string `json:"password" validate:"required,min=8,max=72"`
	SecurityAnswer string `json:"security_answer" validate:"required,min=1,max=100"`
}

// UserResponse はクライアントに返すユーザー情報の構造体
type UserResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
