// internal/service/drill_service_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"trireme_flashcards/internal/model"
	"trireme_flashcards/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var drillTestToday = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestDrillService(deckRepo *mocks.DeckRepository, cardRepo *mocks.CardRepository) *drillService {
	svc := NewDrillService(nil, deckRepo, cardRepo).(*drillService)
	svc.now = func() time.Time { return drillTestToday }
	return svc
}

func dueCard(cardID uint, deckID uint, box, target int) *model.Card {
	return &model.Card{
		CardID:        cardID,
		DeckID:        deckID,
		Front:         "front",
		Back:          "back",
		CreationDate:  "2025-03-01",
		DueDate:       "2025-03-10",
		LeitnerBox:    box,
		LeitnerTarget: target,
	}
}

func Test_drillService_StartDrill(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	deckID := uint(1)
	deck := &model.Deck{DeckID: deckID, UserID: userID, Name: "test"}

	tests := []struct {
		name           string
		setupMock      func(d *mocks.DeckRepository, c *mocks.CardRepository)
		wantErr        error
		wantNothingDue bool
		wantDueCount   int
	}{
		{
			name: "正常系: 出題対象ありでドリル開始",
			setupMock: func(d *mocks.DeckRepository, c *mocks.CardRepository) {
				d.On("FindByID", ctx, mock.Anything, userID, deckID).Return(deck, nil).Once()
				c.On("FindByDeck", ctx, mock.Anything, deckID).
					Return([]*model.Card{
						dueCard(1, deckID, 0, 0),
						dueCard(2, deckID, 1, 2),
						// 未来日付のカードは出題されない
						{CardID: 3, DeckID: deckID, Front: "f", Back: "b", DueDate: "2025-04-01", CreationDate: "2025-03-01"},
					}, nil).Once()
			},
			wantDueCount: 2,
		},
		{
			name: "正常系: 出題対象0件ならNothingDue",
			setupMock: func(d *mocks.DeckRepository, c *mocks.CardRepository) {
				d.On("FindByID", ctx, mock.Anything, userID, deckID).Return(deck, nil).Once()
				c.On("FindByDeck", ctx, mock.Anything, deckID).
					Return([]*model.Card{
						{CardID: 3, DeckID: deckID, Front: "f", Back: "b", DueDate: "2025-04-01", CreationDate: "2025-03-01"},
					}, nil).Once()
			},
			wantNothingDue: true,
		},
		{
			name: "異常系: デッキが存在しない",
			setupMock: func(d *mocks.DeckRepository, c *mocks.CardRepository) {
				d.On("FindByID", ctx, mock.Anything, userID, deckID).Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDeckRepo := new(mocks.DeckRepository)
			mockCardRepo := new(mocks.CardRepository)
			tt.setupMock(mockDeckRepo, mockCardRepo)
			svc := newTestDrillService(mockDeckRepo, mockCardRepo)

			resp, err := svc.StartDrill(ctx, userID, deckID)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.Equal(t, tt.wantNothingDue, resp.NothingDue)
				if tt.wantNothingDue {
					assert.Nil(t, resp.DrillID)
				} else {
					assert.NotNil(t, resp.DrillID)
					assert.Equal(t, tt.wantDueCount, resp.DueCount)
				}
			}
			mockDeckRepo.AssertExpectations(t)
			mockCardRepo.AssertExpectations(t)
		})
	}
}

func Test_drillService_StartDrill_AlreadyRunning(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	deckID := uint(7)
	deck := &model.Deck{DeckID: deckID, UserID: userID, Name: "dup"}

	mockDeckRepo := new(mocks.DeckRepository)
	mockCardRepo := new(mocks.CardRepository)
	mockDeckRepo.On("FindByID", ctx, mock.Anything, userID, deckID).Return(deck, nil).Twice()
	mockCardRepo.On("FindByDeck", ctx, mock.Anything, deckID).
		Return([]*model.Card{dueCard(1, deckID, 0, 0)}, nil).Twice()
	svc := newTestDrillService(mockDeckRepo, mockCardRepo)

	first, err := svc.StartDrill(ctx, userID, deckID)
	require.NoError(t, err)
	require.NotNil(t, first.DrillID)

	// 同じデッキに対する二重起動は弾かれる
	second, err := svc.StartDrill(ctx, userID, deckID)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConflict)
	assert.Nil(t, second)
}

func Test_drillService_PassFlow(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	deckID := uint(2)
	deck := &model.Deck{DeckID: deckID, UserID: userID, Name: "flow"}
	card := dueCard(10, deckID, 2, 3)

	var saved []model.Card
	mockDeckRepo := new(mocks.DeckRepository)
	mockCardRepo := new(mocks.CardRepository)
	mockDeckRepo.On("FindByID", ctx, mock.Anything, userID, deckID).Return(deck, nil).Once()
	mockCardRepo.On("FindByDeck", ctx, mock.Anything, deckID).Return([]*model.Card{card}, nil).Once()
	mockCardRepo.On("Save", ctx, mock.Anything, mock.AnythingOfType("*model.Card")).
		Run(func(args mock.Arguments) {
			saved = append(saved, *args.Get(2).(*model.Card))
		}).Return(nil).Once()
	svc := newTestDrillService(mockDeckRepo, mockCardRepo)

	started, err := svc.StartDrill(ctx, userID, deckID)
	require.NoError(t, err)
	drillID := *started.DrillID

	// 表面を提示
	adv, err := svc.Advance(ctx, userID, drillID)
	require.NoError(t, err)
	require.NotNil(t, adv.Card)
	assert.False(t, adv.Completed)
	assert.Equal(t, uint(10), adv.Card.CardID)
	assert.Equal(t, "front", adv.Card.Face)
	assert.Equal(t, "front", adv.Card.Text)

	// 裏面に切り替え
	flipped, err := svc.Flip(ctx, userID, drillID)
	require.NoError(t, err)
	assert.Equal(t, "back", flipped.Face)
	assert.Equal(t, "back", flipped.Text)

	// 合格として採点。最後の1枚なので完了する。
	progress, err := svc.Pass(ctx, userID, drillID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Remaining)
	assert.True(t, progress.Completed)

	// 採点結果が永続化されている (箱2→3、出題日は2^3=8日後)
	require.Len(t, saved, 1)
	assert.Equal(t, 3, saved[0].LeitnerBox)
	assert.Equal(t, 3, saved[0].LeitnerTarget)
	assert.Equal(t, "2025-03-18", saved[0].DueDate)
	assert.Equal(t, "2025-03-10", saved[0].ReviewedDate)
	assert.Equal(t, 1, saved[0].NumberOfReviews)
	assert.Equal(t, 1, saved[0].NumberOfPasses)

	// 完了したセッションはレジストリから消えている
	_, err = svc.Advance(ctx, userID, drillID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	mockCardRepo.AssertExpectations(t)
}

func Test_drillService_FailRequeues(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	deckID := uint(3)
	deck := &model.Deck{DeckID: deckID, UserID: userID, Name: "fail"}

	mockDeckRepo := new(mocks.DeckRepository)
	mockCardRepo := new(mocks.CardRepository)
	mockDeckRepo.On("FindByID", ctx, mock.Anything, userID, deckID).Return(deck, nil).Once()
	mockCardRepo.On("FindByDeck", ctx, mock.Anything, deckID).
		Return([]*model.Card{dueCard(1, deckID, 2, 2), dueCard(2, deckID, 1, 1)}, nil).Once()
	mockCardRepo.On("Save", ctx, mock.Anything, mock.AnythingOfType("*model.Card")).Return(nil)
	svc := newTestDrillService(mockDeckRepo, mockCardRepo)

	started, err := svc.StartDrill(ctx, userID, deckID)
	require.NoError(t, err)
	drillID := *started.DrillID

	adv, err := svc.Advance(ctx, userID, drillID)
	require.NoError(t, err)
	require.NotNil(t, adv.Card)

	// 不合格にしたカードはキューの末尾に戻るので残数は減らない
	progress, err := svc.Fail(ctx, userID, drillID)
	require.NoError(t, err)
	assert.Equal(t, 2, progress.Remaining)
	assert.False(t, progress.Completed)
}

func Test_drillService_InvalidTransition(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	deckID := uint(4)
	deck := &model.Deck{DeckID: deckID, UserID: userID, Name: "bad"}

	mockDeckRepo := new(mocks.DeckRepository)
	mockCardRepo := new(mocks.CardRepository)
	mockDeckRepo.On("FindByID", ctx, mock.Anything, userID, deckID).Return(deck, nil).Once()
	mockCardRepo.On("FindByDeck", ctx, mock.Anything, deckID).
		Return([]*model.Card{dueCard(1, deckID, 0, 0)}, nil).Once()
	svc := newTestDrillService(mockDeckRepo, mockCardRepo)

	started, err := svc.StartDrill(ctx, userID, deckID)
	require.NoError(t, err)
	drillID := *started.DrillID

	// Advance前の採点は遷移違反
	_, err = svc.Pass(ctx, userID, drillID)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidState)

	// カードを表示していない状態でのFlipも遷移違反
	_, err = svc.Flip(ctx, userID, drillID)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidState)
}

func Test_drillService_OwnershipAndStop(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	otherUserID := uuid.New()
	deckID := uint(5)
	deck := &model.Deck{DeckID: deckID, UserID: userID, Name: "own"}

	mockDeckRepo := new(mocks.DeckRepository)
	mockCardRepo := new(mocks.CardRepository)
	mockDeckRepo.On("FindByID", ctx, mock.Anything, userID, deckID).Return(deck, nil)
	mockCardRepo.On("FindByDeck", ctx, mock.Anything, deckID).
		Return([]*model.Card{dueCard(1, deckID, 0, 0)}, nil)
	svc := newTestDrillService(mockDeckRepo, mockCardRepo)

	started, err := svc.StartDrill(ctx, userID, deckID)
	require.NoError(t, err)
	drillID := *started.DrillID

	// 他人のセッションには触れない
	_, err = svc.Advance(ctx, otherUserID, drillID)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrForbidden)

	// 中断するとセッションは消え、同じデッキで再開できる
	require.NoError(t, svc.Stop(ctx, userID, drillID))
	err = svc.Stop(ctx, userID, drillID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	restarted, err := svc.StartDrill(ctx, userID, deckID)
	require.NoError(t, err)
	assert.NotNil(t, restarted.DrillID)
}

func Test_drillService_SaveFailureReported(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	deckID := uint(6)
	deck := &model.Deck{DeckID: deckID, UserID: userID, Name: "savefail"}

	mockDeckRepo := new(mocks.DeckRepository)
	mockCardRepo := new(mocks.CardRepository)
	mockDeckRepo.On("FindByID", ctx, mock.Anything, userID, deckID).Return(deck, nil).Once()
	mockCardRepo.On("FindByDeck", ctx, mock.Anything, deckID).
		Return([]*model.Card{dueCard(1, deckID, 0, 0), dueCard(2, deckID, 0, 0)}, nil).Once()
	mockCardRepo.On("Save", ctx, mock.Anything, mock.AnythingOfType("*model.Card")).
		Return(errors.New("db write failed")).Once()
	svc := newTestDrillService(mockDeckRepo, mockCardRepo)

	started, err := svc.StartDrill(ctx, userID, deckID)
	require.NoError(t, err)
	drillID := *started.DrillID

	_, err = svc.Advance(ctx, userID, drillID)
	require.NoError(t, err)

	// 永続化失敗はエラーとして返るが、セッション自体は続行できる
	_, err = svc.Pass(ctx, userID, drillID)
	require.Error(t, err)
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", appErr.Detail.Code)

	adv, err := svc.Advance(ctx, userID, drillID)
	require.NoError(t, err)
	assert.NotNil(t, adv.Card)
}

func Test_drillService_SaveFailureOnLastCardReleasesDeck(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	deckID := uint(8)
	deck := &model.Deck{DeckID: deckID, UserID: userID, Name: "lastfail"}

	mockDeckRepo := new(mocks.DeckRepository)
	mockCardRepo := new(mocks.CardRepository)
	mockDeckRepo.On("FindByID", ctx, mock.Anything, userID, deckID).Return(deck, nil)
	mockCardRepo.On("FindByDeck", ctx, mock.Anything, deckID).
		Return([]*model.Card{dueCard(1, deckID, 0, 0)}, nil)
	mockCardRepo.On("Save", ctx, mock.Anything, mock.AnythingOfType("*model.Card")).
		Return(errors.New("db write failed")).Once()
	svc := newTestDrillService(mockDeckRepo, mockCardRepo)

	started, err := svc.StartDrill(ctx, userID, deckID)
	require.NoError(t, err)
	drillID := *started.DrillID

	_, err = svc.Advance(ctx, userID, drillID)
	require.NoError(t, err)

	// 最後の1枚の保存に失敗してもセッションは完了しており、登録から外れる
	_, err = svc.Pass(ctx, userID, drillID)
	require.Error(t, err)
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", appErr.Detail.Code)

	_, err = svc.Advance(ctx, userID, drillID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	// デッキが塞がれていないので再開できる
	restarted, err := svc.StartDrill(ctx, userID, deckID)
	require.NoError(t, err)
	assert.NotNil(t, restarted.DrillID)
}
