//go:generate mockery --name DeckRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"trireme_flashcards/internal/middleware"
	"trireme_flashcards/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeckRepository interface {
	Create(ctx context.Context, tx *gorm.DB, deck *model.Deck) error
	FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID, deckID uint) (*model.Deck, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Deck, error)
	Rename(ctx context.Context, tx *gorm.DB, userID uuid.UUID, deckID uint, newName string) error
	Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID, deckID uint) error
	CheckNameExists(ctx context.Context, db *gorm.DB, userID uuid.UUID, name string, excludeDeckID *uint) (bool, error)
	CountCards(ctx context.Context, db *gorm.DB, deckID uint) (int64, error)
}

type gormDeckRepository struct{}

func NewGormDeckRepository() DeckRepository {
	return &gormDeckRepository{}
}

func (r *gormDeckRepository) Create(ctx context.Context, tx *gorm.DB, deck *model.Deck) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(deck)
	if result.Error != nil {
		logger.Error("Error creating deck in DB",
			"error", result.Error,
			"user_id", deck.UserID.String(),
			"name", deck.Name,
		)
		return fmt.Errorf("gormDeckRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormDeckRepository) FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID, deckID uint) (*model.Deck, error) {
	logger := middleware.GetLogger(ctx)
	var deck model.Deck
	result := db.WithContext(ctx).Where("user_id = ? AND deck_id = ?", userID, deckID).First(&deck)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding deck by ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"deck_id", deckID,
		)
		return nil, fmt.Errorf("gormDeckRepository.FindByID: %w", result.Error)
	}
	return &deck, nil
}

func (r *gormDeckRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Deck, error) {
	logger := middleware.GetLogger(ctx)
	var decks []*model.Deck
	result := db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&decks)
	if result.Error != nil {
		logger.Error("Error finding decks by user in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormDeckRepository.FindByUser: %w", result.Error)
	}
	return decks, nil
}

func (r *gormDeckRepository) Rename(ctx context.Context, tx *gorm.DB, userID uuid.UUID, deckID uint, newName string) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Deck{}).Where("user_id = ? AND deck_id = ?", userID, deckID).Update("name", newName)
	if result.Error != nil {
		logger.Error("Error renaming deck in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"deck_id", deckID,
		)
		return fmt.Errorf("gormDeckRepository.Rename: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormDeckRepository) Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID, deckID uint) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Deck{}, deckID)
	if result.Error != nil {
		logger.Error("Error deleting deck in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"deck_id", deckID,
		)
		return fmt.Errorf("gormDeckRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// CheckNameExists はデッキ名の重複を大文字小文字を区別せずに確認します
func (r *gormDeckRepository) CheckNameExists(ctx context.Context, db *gorm.DB, userID uuid.UUID, name string, excludeDeckID *uint) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	query := db.WithContext(ctx).Model(&model.Deck{}).Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name)
	if excludeDeckID != nil {
		query = query.Where("deck_id != ?", *excludeDeckID)
	}
	result := query.Count(&count)
	if result.Error != nil {
		logger.Error("Error checking deck name existence in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"name", name,
		)
		return false, fmt.Errorf("gormDeckRepository.CheckNameExists: %w", result.Error)
	}
	return count > 0, nil
}

func (r *gormDeckRepository) CountCards(ctx context.Context, db *gorm.DB, deckID uint) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.Card{}).Where("deck_id = ?", deckID).Count(&count)
	if result.Error != nil {
		logger.Error("Error counting cards in DB",
			"error", result.Error,
			"deck_id", deckID,
		)
		return 0, fmt.Errorf("gormDeckRepository.CountCards: %w", result.Error)
	}
	return count, nil
}
