// internal/service/drill_service.go
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"trireme_flashcards/internal/drill"
	"trireme_flashcards/internal/middleware"
	"trireme_flashcards/internal/model"
	"trireme_flashcards/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DrillService interface {
	StartDrill(ctx context.Context, userID uuid.UUID, deckID uint) (*model.StartDrillResponse, error)
	Advance(ctx context.Context, userID uuid.UUID, drillID uuid.UUID) (*model.DrillAdvanceResponse, error)
	Flip(ctx context.Context, userID uuid.UUID, drillID uuid.UUID) (*model.DrillCardView, error)
	Pass(ctx context.Context, userID uuid.UUID, drillID uuid.UUID) (*model.DrillProgressResponse, error)
	Fail(ctx context.Context, userID uuid.UUID, drillID uuid.UUID) (*model.DrillProgressResponse, error)
	Stop(ctx context.Context, userID uuid.UUID, drillID uuid.UUID) error
}

// drillEntry はレジストリに載っている実行中セッション
type drillEntry struct {
	session *drill.Session
	userID  uuid.UUID
	deckID  uint
}

// drillService はドリルセッションをインメモリのレジストリで管理します。
// セッションはプロセス内限りで、再起動すると消える。採点結果自体は
// 1枚ごとに永続化されるので、消えるのはキューの途中経過だけ。
type drillService struct {
	db       *gorm.DB
	deckRepo repository.DeckRepository
	cardRepo repository.CardRepository
	now      func() time.Time

	mu      sync.Mutex
	entries map[uuid.UUID]*drillEntry
	byDeck  map[uint]uuid.UUID // デッキごとに同時に1セッションのみ
}

func NewDrillService(db *gorm.DB, deckRepo repository.DeckRepository, cardRepo repository.CardRepository) DrillService {
	return &drillService{
		db:       db,
		deckRepo: deckRepo,
		cardRepo: cardRepo,
		now:      time.Now,
		entries:  make(map[uuid.UUID]*drillEntry),
		byDeck:   make(map[uint]uuid.UUID),
	}
}

// StartDrill はデッキの出題対象カードを集めてセッションを開始します。
// 出題対象が空の場合はエラーではなく NothingDue=true を返す。
func (s *drillService) StartDrill(ctx context.Context, userID uuid.UUID, deckID uint) (*model.StartDrillResponse, error) {
	logger := middleware.GetLogger(ctx)

	// 1. デッキの所有確認
	if _, err := s.deckRepo.FindByID(ctx, s.db, userID, deckID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("DECK_NOT_FOUND", "デッキが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}

	// 2. カードを全件取得 (出題対象の絞り込みはセッション側で日付をパースして行う)
	cards, err := s.cardRepo.FindByDeck(ctx, s.db, deckID)
	if err != nil {
		logger.Error("Error loading cards for drill", "deck_id", deckID, "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カードの読み込みに失敗しました。", "", err)
	}

	// 3. レジストリに登録 (同一デッキの二重起動はここで弾く)
	s.mu.Lock()
	defer s.mu.Unlock()

	if existingID, ok := s.byDeck[deckID]; ok {
		logger.Warn("Drill already running for deck", "deck_id", deckID, "drill_id", existingID)
		return nil, model.NewAppError("DRILL_ALREADY_RUNNING", "このデッキのドリルは既に実行中です。", "", model.ErrConflict)
	}

	session, err := drill.Start(cards, s.now(), s.saveCard)
	if err != nil {
		if errors.Is(err, drill.ErrNothingDue) {
			return &model.StartDrillResponse{NothingDue: true}, nil
		}
		logger.Error("Error starting drill session", "deck_id", deckID, "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ドリルの開始に失敗しました。", "", err)
	}

	drillID := uuid.New()
	s.entries[drillID] = &drillEntry{session: session, userID: userID, deckID: deckID}
	s.byDeck[deckID] = drillID

	logger.Info("Drill started", "drill_id", drillID, "deck_id", deckID, "due_count", session.Remaining())
	return &model.StartDrillResponse{
		DrillID:  &drillID,
		DueCount: session.Remaining(),
	}, nil
}

func (s *drillService) Advance(ctx context.Context, userID, drillID uuid.UUID) (*model.DrillAdvanceResponse, error) {
	entry, err := s.lookup(userID, drillID)
	if err != nil {
		return nil, err
	}

	view, completed, err := entry.session.Advance()
	if err != nil {
		return nil, s.mapDrillError(err)
	}
	if completed {
		s.remove(drillID)
		middleware.GetLogger(ctx).Info("Drill completed", "drill_id", drillID, "deck_id", entry.deckID)
		return &model.DrillAdvanceResponse{Completed: true}, nil
	}
	return &model.DrillAdvanceResponse{Card: toCardView(view)}, nil
}

func (s *drillService) Flip(ctx context.Context, userID, drillID uuid.UUID) (*model.DrillCardView, error) {
	entry, err := s.lookup(userID, drillID)
	if err != nil {
		return nil, err
	}

	view, err := entry.session.Flip()
	if err != nil {
		return nil, s.mapDrillError(err)
	}
	return toCardView(view), nil
}

func (s *drillService) Pass(ctx context.Context, userID, drillID uuid.UUID) (*model.DrillProgressResponse, error) {
	entry, err := s.lookup(userID, drillID)
	if err != nil {
		return nil, err
	}

	remaining, completed, err := entry.session.Pass(ctx)
	if completed {
		// 保存に失敗していてもセッションは完了済み。残したままだと
		// デッキが塞がれたままになるので先に登録を解除する。
		s.remove(drillID)
	}
	if err != nil {
		if errors.Is(err, drill.ErrInvalidTransition) {
			return nil, s.mapDrillError(err)
		}
		middleware.GetLogger(ctx).Error("Failed to persist pass grade", "drill_id", drillID, "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "採点結果の保存に失敗しました。", "", err)
	}
	return &model.DrillProgressResponse{Remaining: remaining, Completed: completed}, nil
}

func (s *drillService) Fail(ctx context.Context, userID, drillID uuid.UUID) (*model.DrillProgressResponse, error) {
	entry, err := s.lookup(userID, drillID)
	if err != nil {
		return nil, err
	}

	remaining, err := entry.session.Fail(ctx)
	if err != nil {
		if errors.Is(err, drill.ErrInvalidTransition) {
			return nil, s.mapDrillError(err)
		}
		middleware.GetLogger(ctx).Error("Failed to persist fail grade", "drill_id", drillID, "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "採点結果の保存に失敗しました。", "", err)
	}
	// Failではカードが末尾に戻るのでセッションが完了することはない
	return &model.DrillProgressResponse{Remaining: remaining}, nil
}

func (s *drillService) Stop(ctx context.Context, userID, drillID uuid.UUID) error {
	entry, err := s.lookup(userID, drillID)
	if err != nil {
		return err
	}

	entry.session.Stop()
	s.remove(drillID)
	middleware.GetLogger(ctx).Info("Drill stopped", "drill_id", drillID, "deck_id", entry.deckID)
	return nil
}

// saveCard は採点で変化したカードをレジストリの外で永続化するSaveFunc
func (s *drillService) saveCard(ctx context.Context, card *model.Card) error {
	return s.cardRepo.Save(ctx, s.db, card)
}

// lookup はセッションを検索し、所有者を確認します
func (s *drillService) lookup(userID, drillID uuid.UUID) (*drillEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[drillID]
	if !ok {
		return nil, model.NewAppError("DRILL_NOT_FOUND", "ドリルセッションが見つかりません。", "", model.ErrNotFound)
	}
	if entry.userID != userID {
		return nil, model.NewAppError("FORBIDDEN", "このドリルセッションにはアクセスできません。", "", model.ErrForbidden)
	}
	return entry, nil
}

// remove はセッションをレジストリから外します
func (s *drillService) remove(drillID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[drillID]; ok {
		delete(s.byDeck, entry.deckID)
		delete(s.entries, drillID)
	}
}

// mapDrillError は状態機械の遷移違反をAPIエラーに変換します
func (s *drillService) mapDrillError(err error) error {
	if errors.Is(err, drill.ErrInvalidTransition) {
		return model.NewAppError("INVALID_DRILL_STATE", "その操作は現在のドリルの状態では実行できません。", "", model.ErrInvalidState)
	}
	return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
}

func toCardView(view *drill.View) *model.DrillCardView {
	face := "front"
	if !view.Front {
		face = "back"
	}
	return &model.DrillCardView{
		CardID: view.CardID,
		Face:   face,
		Text:   view.Text,
	}
}
