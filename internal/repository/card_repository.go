//go:generate mockery --name CardRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trireme_flashcards/internal/middleware"
	"trireme_flashcards/internal/model"

	"gorm.io/gorm"
)

type CardRepository interface {
	Create(ctx context.Context, tx *gorm.DB, card *model.Card) error
	FindByID(ctx context.Context, db *gorm.DB, deckID, cardID uint) (*model.Card, error)
	FindByDeck(ctx context.Context, db *gorm.DB, deckID uint) ([]*model.Card, error)
	Update(ctx context.Context, tx *gorm.DB, deckID, cardID uint, updates map[string]interface{}) error
	// Save は採点で変化したレコード全体をカードIDで冪等に書き戻す
	Save(ctx context.Context, db *gorm.DB, card *model.Card) error
	Delete(ctx context.Context, tx *gorm.DB, deckID, cardID uint) error
	CountDueByDeck(ctx context.Context, db *gorm.DB, deckID uint, today time.Time) (int64, error)
}

type gormCardRepository struct{}

func NewGormCardRepository() CardRepository {
	return &gormCardRepository{}
}

func (r *gormCardRepository) Create(ctx context.Context, tx *gorm.DB, card *model.Card) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(card)
	if result.Error != nil {
		logger.Error("Error creating card in DB",
			"error", result.Error,
			"deck_id", card.DeckID,
		)
		return fmt.Errorf("gormCardRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCardRepository) FindByID(ctx context.Context, db *gorm.DB, deckID, cardID uint) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var card model.Card
	result := db.WithContext(ctx).Where("deck_id = ? AND card_id = ?", deckID, cardID).First(&card)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding card by ID in DB",
			"error", result.Error,
			"deck_id", deckID,
			"card_id", cardID,
		)
		return nil, fmt.Errorf("gormCardRepository.FindByID: %w", result.Error)
	}
	return &card, nil
}

func (r *gormCardRepository) FindByDeck(ctx context.Context, db *gorm.DB, deckID uint) ([]*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var cards []*model.Card
	result := db.WithContext(ctx).Where("deck_id = ?", deckID).Order("card_id ASC").Find(&cards)
	if result.Error != nil {
		logger.Error("Error finding cards by deck in DB",
			"error", result.Error,
			"deck_id", deckID,
		)
		return nil, fmt.Errorf("gormCardRepository.FindByDeck: %w", result.Error)
	}
	return cards, nil
}

func (r *gormCardRepository) Update(ctx context.Context, tx *gorm.DB, deckID, cardID uint, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Card{}).Where("deck_id = ? AND card_id = ?", deckID, cardID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating card in DB",
			"error", result.Error,
			"deck_id", deckID,
			"card_id", cardID,
		)
		return fmt.Errorf("gormCardRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCardRepository) Save(ctx context.Context, db *gorm.DB, card *model.Card) error {
	logger := middleware.GetLogger(ctx)
	// Saveは主キーに基づく全カラムのUPDATE。同じレコードを二度書いても結果は同じ。
	result := db.WithContext(ctx).Save(card)
	if result.Error != nil {
		logger.Error("Error saving card mutation in DB",
			"error", result.Error,
			"deck_id", card.DeckID,
			"card_id", card.CardID,
		)
		return fmt.Errorf("gormCardRepository.Save: %w", result.Error)
	}
	return nil
}

func (r *gormCardRepository) Delete(ctx context.Context, tx *gorm.DB, deckID, cardID uint) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("deck_id = ?", deckID).Delete(&model.Card{}, cardID)
	if result.Error != nil {
		logger.Error("Error deleting card in DB",
			"error", result.Error,
			"deck_id", deckID,
			"card_id", cardID,
		)
		return fmt.Errorf("gormCardRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// CountDueByDeck は本日出題対象の枚数を返します。
// 日付カラムはISO-8601文字列だが、暦日として比較するためDATEにキャストする。
func (r *gormCardRepository) CountDueByDeck(ctx context.Context, db *gorm.DB, deckID uint, today time.Time) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	todayStr := today.Format(model.DateLayout)
	result := db.WithContext(ctx).Model(&model.Card{}).
		Where("deck_id = ? AND CAST(due_date AS DATE) <= CAST(? AS DATE)", deckID, todayStr).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error counting due cards in DB",
			"error", result.Error,
			"deck_id", deckID,
		)
		return 0, fmt.Errorf("gormCardRepository.CountDueByDeck: %w", result.Error)
	}
	return count, nil
}
