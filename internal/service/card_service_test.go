// internal/service/card_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"trireme_flashcards/internal/model"
	"trireme_flashcards/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var cardTestToday = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

func setupTestDBCard(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to connect database for card service testing")
	require.NoError(t, db.AutoMigrate(&model.Deck{}, &model.Card{}))
	return db
}

func newTestCardService(db *gorm.DB, deckRepo *mocks.DeckRepository, cardRepo *mocks.CardRepository) *cardService {
	svc := NewCardService(db, deckRepo, cardRepo).(*cardService)
	svc.now = func() time.Time { return cardTestToday }
	return svc
}

func Test_cardService_CreateCard(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	deckID := uint(1)
	deck := &model.Deck{DeckID: deckID, UserID: userID, Name: "test"}

	tests := []struct {
		name      string
		req       *model.PostCardRequest
		setupMock func(d *mocks.DeckRepository, c *mocks.CardRepository)
		wantErr   error
	}{
		{
			name: "正常系: カード作成成功、復習状態は初期値",
			req:  &model.PostCardRequest{Front: "apple", Back: "りんご"},
			setupMock: func(d *mocks.DeckRepository, c *mocks.CardRepository) {
				d.On("FindByID", ctx, mock.Anything, userID, deckID).Return(deck, nil).Once()
				c.On("Create", ctx, mock.Anything, mock.AnythingOfType("*model.Card")).
					Run(func(args mock.Arguments) {
						card := args.Get(2).(*model.Card)
						assert.Equal(t, deckID, card.DeckID)
						assert.Equal(t, "apple", card.Front)
						assert.Equal(t, "りんご", card.Back)
						// 作成日＝出題日＝今日。つまり作ったその日から出題される。
						assert.Equal(t, "2025-03-10", card.CreationDate)
						assert.Equal(t, "2025-03-10", card.DueDate)
						assert.Empty(t, card.ReviewedDate)
						assert.Equal(t, 0, card.LeitnerBox)
						assert.Equal(t, 0, card.LeitnerTarget)
						assert.Equal(t, 0, card.NumberOfReviews)
						assert.Equal(t, 0, card.NumberOfPasses)
					}).Return(nil).Once()
			},
		},
		{
			name: "異常系: デッキが存在しない",
			req:  &model.PostCardRequest{Front: "apple", Back: "りんご"},
			setupMock: func(d *mocks.DeckRepository, c *mocks.CardRepository) {
				d.On("FindByID", ctx, mock.Anything, userID, deckID).
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDBCard(t)
			mockDeckRepo := new(mocks.DeckRepository)
			mockCardRepo := new(mocks.CardRepository)
			tt.setupMock(mockDeckRepo, mockCardRepo)
			svc := newTestCardService(db, mockDeckRepo, mockCardRepo)

			card, err := svc.CreateCard(ctx, userID, deckID, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, card)
			} else {
				require.NoError(t, err)
				require.NotNil(t, card)
			}
			mockDeckRepo.AssertExpectations(t)
			mockCardRepo.AssertExpectations(t)
		})
	}
}

func Test_cardService_UpdateCard(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	deckID := uint(1)
	cardID := uint(10)
	deck := &model.Deck{DeckID: deckID, UserID: userID, Name: "test"}

	tests := []struct {
		name      string
		setupMock func(d *mocks.DeckRepository, c *mocks.CardRepository)
		wantErr   error
	}{
		{
			name: "正常系: 表裏の文面のみ更新され、復習状態は変わらない",
			setupMock: func(d *mocks.DeckRepository, c *mocks.CardRepository) {
				d.On("FindByID", ctx, mock.Anything, userID, deckID).Return(deck, nil).Once()
				c.On("Update", ctx, mock.Anything, deckID, cardID,
					map[string]interface{}{"front": "banana", "back": "バナナ"}).Return(nil).Once()
				c.On("FindByID", ctx, mock.Anything, deckID, cardID).
					Return(&model.Card{
						CardID: cardID, DeckID: deckID, Front: "banana", Back: "バナナ",
						CreationDate: "2025-03-01", DueDate: "2025-03-12",
						LeitnerBox: 2, LeitnerTarget: 3, NumberOfReviews: 4, NumberOfPasses: 3,
					}, nil).Once()
			},
		},
		{
			name: "異常系: カードが存在しない",
			setupMock: func(d *mocks.DeckRepository, c *mocks.CardRepository) {
				d.On("FindByID", ctx, mock.Anything, userID, deckID).Return(deck, nil).Once()
				c.On("Update", ctx, mock.Anything, deckID, cardID,
					map[string]interface{}{"front": "banana", "back": "バナナ"}).
					Return(model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDBCard(t)
			mockDeckRepo := new(mocks.DeckRepository)
			mockCardRepo := new(mocks.CardRepository)
			tt.setupMock(mockDeckRepo, mockCardRepo)
			svc := newTestCardService(db, mockDeckRepo, mockCardRepo)

			card, err := svc.UpdateCard(ctx, userID, deckID, cardID, &model.PutCardRequest{Front: "banana", Back: "バナナ"})

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, card)
			} else {
				require.NoError(t, err)
				require.NotNil(t, card)
				assert.Equal(t, "banana", card.Front)
				// 復習状態はそのまま
				assert.Equal(t, 2, card.LeitnerBox)
				assert.Equal(t, 3, card.LeitnerTarget)
				assert.Equal(t, "2025-03-12", card.DueDate)
			}
			mockDeckRepo.AssertExpectations(t)
			mockCardRepo.AssertExpectations(t)
		})
	}
}

func Test_cardService_DeleteCard(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	deckID := uint(1)
	cardID := uint(10)
	deck := &model.Deck{DeckID: deckID, UserID: userID, Name: "test"}

	db := setupTestDBCard(t)
	mockDeckRepo := new(mocks.DeckRepository)
	mockCardRepo := new(mocks.CardRepository)
	mockDeckRepo.On("FindByID", ctx, mock.Anything, userID, deckID).Return(deck, nil).Once()
	mockCardRepo.On("Delete", ctx, mock.Anything, deckID, cardID).Return(nil).Once()
	svc := newTestCardService(db, mockDeckRepo, mockCardRepo)

	err := svc.DeleteCard(ctx, userID, deckID, cardID)

	require.NoError(t, err)
	mockDeckRepo.AssertExpectations(t)
	mockCardRepo.AssertExpectations(t)
}

func Test_cardService_CountDueCards(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	deckID := uint(1)
	deck := &model.Deck{DeckID: deckID, UserID: userID, Name: "test"}

	tests := []struct {
		name      string
		setupMock func(d *mocks.DeckRepository, c *mocks.CardRepository)
		wantCount int64
		wantErr   error
	}{
		{
			name: "正常系: 出題対象の枚数が返る",
			setupMock: func(d *mocks.DeckRepository, c *mocks.CardRepository) {
				d.On("FindByID", ctx, mock.Anything, userID, deckID).Return(deck, nil).Once()
				c.On("CountDueByDeck", ctx, mock.Anything, deckID, cardTestToday).
					Return(int64(7), nil).Once()
			},
			wantCount: 7,
		},
		{
			name: "異常系: 他人のデッキは見えない",
			setupMock: func(d *mocks.DeckRepository, c *mocks.CardRepository) {
				d.On("FindByID", ctx, mock.Anything, userID, deckID).
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDeckRepo := new(mocks.DeckRepository)
			mockCardRepo := new(mocks.CardRepository)
			tt.setupMock(mockDeckRepo, mockCardRepo)
			svc := newTestCardService(nil, mockDeckRepo, mockCardRepo)

			count, err := svc.CountDueCards(ctx, userID, deckID)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantCount, count)
			}
			mockDeckRepo.AssertExpectations(t)
			mockCardRepo.AssertExpectations(t)
		})
	}
}
