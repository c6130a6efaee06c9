// internal/service/card_service.go
package service

import (
	"context"
	"errors"
	"time"

	"trireme_flashcards/internal/middleware"
	"trireme_flashcards/internal/model"
	"trireme_flashcards/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardService interface {
	CreateCard(ctx context.Context, userID uuid.UUID, deckID uint, req *model.PostCardRequest) (*model.Card, error)
	GetCard(ctx context.Context, userID uuid.UUID, deckID, cardID uint) (*model.Card, error)
	ListCards(ctx context.Context, userID uuid.UUID, deckID uint) ([]*model.Card, error)
	UpdateCard(ctx context.Context, userID uuid.UUID, deckID, cardID uint, req *model.PutCardRequest) (*model.Card, error)
	DeleteCard(ctx context.Context, userID uuid.UUID, deckID, cardID uint) error
	CountDueCards(ctx context.Context, userID uuid.UUID, deckID uint) (int64, error)
}

type cardService struct {
	db       *gorm.DB // トランザクション用にDB接続を持つ
	deckRepo repository.DeckRepository
	cardRepo repository.CardRepository
	// テストで日付を固定するための時刻取得関数
	now func() time.Time
}

func NewCardService(db *gorm.DB, deckRepo repository.DeckRepository, cardRepo repository.CardRepository) CardService {
	return &cardService{
		db:       db,
		deckRepo: deckRepo,
		cardRepo: cardRepo,
		now:      time.Now,
	}
}

// checkDeckOwnership はデッキが存在し、かつそのユーザーの所有物であることを確認します
func (s *cardService) checkDeckOwnership(ctx context.Context, db *gorm.DB, userID uuid.UUID, deckID uint) error {
	_, err := s.deckRepo.FindByID(ctx, db, userID, deckID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("DECK_NOT_FOUND", "デッキが見つかりません。", "", model.ErrNotFound)
		}
		return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	return nil
}

// CreateCard は新しいカードをデッキに追加します。
// 復習状態は初期値 (箱0・目標0・作成日=出題日=今日) で作られ、その日のうちに出題対象になります。
func (s *cardService) CreateCard(ctx context.Context, userID uuid.UUID, deckID uint, req *model.PostCardRequest) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var createdCard *model.Card

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkDeckOwnership(ctx, tx, userID, deckID); err != nil {
			return err
		}

		today := s.now().Format(model.DateLayout)
		card := &model.Card{
			DeckID:        deckID,
			Front:         req.Front,
			Back:          req.Back,
			CreationDate:  today,
			DueDate:       today,
			LeitnerBox:    0,
			LeitnerTarget: 0,
		}
		if err := s.cardRepo.Create(ctx, tx, card); err != nil {
			logger.Error("Error creating card", "deck_id", deckID, "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの作成に失敗しました。", "", err)
		}

		createdCard = card
		return nil // コミット
	})

	if err != nil {
		return nil, err
	}

	logger.Info("Card created", "deck_id", deckID, "card_id", createdCard.CardID)
	return createdCard, nil
}

func (s *cardService) GetCard(ctx context.Context, userID uuid.UUID, deckID, cardID uint) (*model.Card, error) {
	if err := s.checkDeckOwnership(ctx, s.db, userID, deckID); err != nil {
		return nil, err
	}

	card, err := s.cardRepo.FindByID(ctx, s.db, deckID, cardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("CARD_NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	return card, nil
}

func (s *cardService) ListCards(ctx context.Context, userID uuid.UUID, deckID uint) ([]*model.Card, error) {
	logger := middleware.GetLogger(ctx)

	if err := s.checkDeckOwnership(ctx, s.db, userID, deckID); err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.FindByDeck(ctx, s.db, deckID)
	if err != nil {
		logger.Error("Error listing cards", "deck_id", deckID, "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カード一覧の取得に失敗しました。", "", err)
	}
	return cards, nil
}

// UpdateCard はカードの表・裏の文面を変更します。復習状態には触りません。
func (s *cardService) UpdateCard(ctx context.Context, userID uuid.UUID, deckID, cardID uint, req *model.PutCardRequest) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var updatedCard *model.Card

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkDeckOwnership(ctx, tx, userID, deckID); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"front": req.Front,
			"back":  req.Back,
		}
		if err := s.cardRepo.Update(ctx, tx, deckID, cardID, updates); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("CARD_NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
			}
			logger.Error("Error updating card", "deck_id", deckID, "card_id", cardID, "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの更新に失敗しました。", "", err)
		}

		// 更新後のデータをトランザクション内で取得
		card, err := s.cardRepo.FindByID(ctx, tx, deckID, cardID)
		if err != nil {
			logger.Error("Error fetching updated card", "deck_id", deckID, "card_id", cardID, "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}
		updatedCard = card
		return nil // コミット
	})

	if err != nil {
		return nil, err
	}

	return updatedCard, nil
}

func (s *cardService) DeleteCard(ctx context.Context, userID uuid.UUID, deckID, cardID uint) error {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkDeckOwnership(ctx, tx, userID, deckID); err != nil {
			return err
		}

		if err := s.cardRepo.Delete(ctx, tx, deckID, cardID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("CARD_NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
			}
			logger.Error("Error deleting card", "deck_id", deckID, "card_id", cardID, "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの削除に失敗しました。", "", err)
		}
		return nil // コミット
	})

	if err != nil {
		return err
	}

	logger.Info("Card deleted", "deck_id", deckID, "card_id", cardID)
	return nil
}

// CountDueCards は本日出題対象のカード枚数を返します
func (s *cardService) CountDueCards(ctx context.Context, userID uuid.UUID, deckID uint) (int64, error) {
	if err := s.checkDeckOwnership(ctx, s.db, userID, deckID); err != nil {
		return 0, err
	}

	count, err := s.cardRepo.CountDueByDeck(ctx, s.db, deckID, s.now())
	if err != nil {
		return 0, model.NewAppError("INTERNAL_SERVER_ERROR", "出題対象の集計に失敗しました。", "", err)
	}
	return count, nil
}
