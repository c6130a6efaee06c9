// internal/service/deck_service.go
package service

import (
	"context"
	"errors"

	"trireme_flashcards/internal/middleware"
	"trireme_flashcards/internal/model"
	"trireme_flashcards/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeckService interface {
	CreateDeck(ctx context.Context, userID uuid.UUID, req *model.PostDeckRequest) (*model.Deck, error)
	GetDeck(ctx context.Context, userID uuid.UUID, deckID uint) (*model.Deck, error)
	ListDecks(ctx context.Context, userID uuid.UUID) ([]*model.DeckResponse, error)
	RenameDeck(ctx context.Context, userID uuid.UUID, deckID uint, req *model.PutDeckRequest) (*model.Deck, error)
	DeleteDeck(ctx context.Context, userID uuid.UUID, deckID uint) error
}

type deckService struct {
	db       *gorm.DB // トランザクション用にDB接続を持つ
	deckRepo repository.DeckRepository
}

func NewDeckService(db *gorm.DB, deckRepo repository.DeckRepository) DeckService {
	return &deckService{
		db:       db,
		deckRepo: deckRepo,
	}
}

func (s *deckService) CreateDeck(ctx context.Context, userID uuid.UUID, req *model.PostDeckRequest) (*model.Deck, error) {
	logger := middleware.GetLogger(ctx)
	var createdDeck *model.Deck

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 名前の重複チェック (大文字小文字を区別しない)
		exists, err := s.deckRepo.CheckNameExists(ctx, tx, userID, req.Name, nil)
		if err != nil {
			logger.Error("Error checking deck name existence", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
		}
		if exists {
			return model.NewAppError("DUPLICATE_DECK_NAME", "その名前のデッキは既に存在します。", "name", model.ErrConflict)
		}

		// 2. デッキを作成
		deck := &model.Deck{
			UserID: userID,
			Name:   req.Name,
		}
		if err := s.deckRepo.Create(ctx, tx, deck); err != nil {
			logger.Error("Error creating deck", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの作成に失敗しました。", "", err)
		}

		createdDeck = deck
		return nil // コミット
	})

	if err != nil {
		return nil, err
	}

	logger.Info("Deck created", "deck_id", createdDeck.DeckID, "name", createdDeck.Name)
	return createdDeck, nil
}

func (s *deckService) GetDeck(ctx context.Context, userID uuid.UUID, deckID uint) (*model.Deck, error) {
	deck, err := s.deckRepo.FindByID(ctx, s.db, userID, deckID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("DECK_NOT_FOUND", "デッキが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	return deck, nil
}

func (s *deckService) ListDecks(ctx context.Context, userID uuid.UUID) ([]*model.DeckResponse, error) {
	logger := middleware.GetLogger(ctx)

	decks, err := s.deckRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		logger.Error("Error listing decks", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキ一覧の取得に失敗しました。", "", err)
	}

	responses := make([]*model.DeckResponse, 0, len(decks))
	for _, deck := range decks {
		count, err := s.deckRepo.CountCards(ctx, s.db, deck.DeckID)
		if err != nil {
			logger.Error("Error counting cards in deck", "deck_id", deck.DeckID, "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキ一覧の取得に失敗しました。", "", err)
		}
		responses = append(responses, &model.DeckResponse{
			DeckID:    deck.DeckID,
			Name:      deck.Name,
			CardCount: int(count),
			CreatedAt: deck.CreatedAt,
		})
	}
	return responses, nil
}

func (s *deckService) RenameDeck(ctx context.Context, userID uuid.UUID, deckID uint, req *model.PutDeckRequest) (*model.Deck, error) {
	logger := middleware.GetLogger(ctx)
	var renamedDeck *model.Deck

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 存在確認
		deck, err := s.deckRepo.FindByID(ctx, tx, userID, deckID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("DECK_NOT_FOUND", "デッキが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}

		// 2. 自分自身を除いて重複チェック
		if req.Name != deck.Name {
			exists, err := s.deckRepo.CheckNameExists(ctx, tx, userID, req.Name, &deckID)
			if err != nil {
				logger.Error("Error checking deck name existence during rename", "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
			}
			if exists {
				return model.NewAppError("DUPLICATE_DECK_NAME", "その名前のデッキは既に存在します。", "name", model.ErrConflict)
			}
		}

		// 3. 更新実行
		if err := s.deckRepo.Rename(ctx, tx, userID, deckID, req.Name); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("DECK_NOT_FOUND", "デッキが見つかりません。", "", model.ErrNotFound)
			}
			logger.Error("Error renaming deck", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "デッキ名の変更に失敗しました。", "", err)
		}

		deck.Name = req.Name
		renamedDeck = deck
		return nil // コミット
	})

	if err != nil {
		return nil, err
	}

	logger.Info("Deck renamed", "deck_id", deckID, "name", renamedDeck.Name)
	return renamedDeck, nil
}

func (s *deckService) DeleteDeck(ctx context.Context, userID uuid.UUID, deckID uint) error {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 存在確認してから削除 (カードはDBの CASCADE で一緒に消える)
		if _, err := s.deckRepo.FindByID(ctx, tx, userID, deckID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("DECK_NOT_FOUND", "デッキが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}

		if err := s.deckRepo.Delete(ctx, tx, userID, deckID); err != nil {
			logger.Error("Error deleting deck", "deck_id", deckID, "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの削除に失敗しました。", "", err)
		}
		return nil // コミット
	})

	if err != nil {
		return err
	}

	logger.Info("Deck deleted", "deck_id", deckID)
	return nil
}
