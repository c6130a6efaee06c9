// Package drill はドリルセッション (1回の対話的な復習) の状態機械を実装します。
// セッションは完全にインメモリで、開始のたびに出題キューを作り直します。
// 永続化は注入された SaveFunc 経由で行い、特定のUIイベントモデルには依存しません。
package drill

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"trireme_flashcards/internal/leitner"
	"trireme_flashcards/internal/model"
)

var (
	// ErrNothingDue は出題対象が1枚もないことを示す (エラーというより通知)
	ErrNothingDue = errors.New("no cards are due")
	// ErrInvalidTransition は呼び出し側の遷移順序違反 (プログラミングエラー)
	ErrInvalidTransition = errors.New("invalid drill transition")
)

// SaveFunc は採点で変化したカードを永続化する関数
// 呼び出しはI/Oでブロックしうるが、書き込み途中で中断されることはない前提
type SaveFunc func(ctx context.Context, card *model.Card) error

// State はセッションの状態
type State int

const (
	StateRunning State = iota
	StateComplete
	StateStopped
)

// View は出題中カードの表示面
type View struct {
	CardID uint
	Front  bool
	Text   string
}

// Session は1回のドリルの状態を保持します。
// 同一デッキに対して同時に動かせるセッションは1つだけ。
// ミューテックスにより採点イベントは発生順に直列化・永続化される。
type Session struct {
	mu           sync.Mutex
	state        State
	queue        []*model.Card
	current      *model.Card
	showingFront bool
	grading      bool
	today        time.Time
	save         SaveFunc
}

// calendarDay は時刻と時間帯を落とし、tの指す暦日だけをUTC深夜0時として残します。
// Truncate(24h) はUTC基準で丸めるため、UTC以外の時間帯では暦日が1日ずれる。
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DueCards は出題対象 (dueDate <= today) のカードを返します。
// 日付は文字列のまま比較せず、必ずパースしてから暦日として比較する。
func DueCards(cards []*model.Card, today time.Time) ([]*model.Card, error) {
	day := calendarDay(today)
	var due []*model.Card
	for _, card := range cards {
		d, err := time.Parse(model.DateLayout, card.DueDate)
		if err != nil {
			return nil, fmt.Errorf("drill.DueCards: card %d has malformed due date %q: %w", card.CardID, card.DueDate, err)
		}
		if !d.After(day) {
			due = append(due, card)
		}
	}
	return due, nil
}

// Start は出題キューを作ってセッションを開始します。
// todayはこの時点で確定し、以後の採点でも同じ日付を使う。
// 出題対象が空の場合は ErrNothingDue を返し、セッションは作られない。
func Start(cards []*model.Card, today time.Time, save SaveFunc) (*Session, error) {
	due, err := DueCards(cards, today)
	if err != nil {
		return nil, err
	}
	if len(due) == 0 {
		return nil, ErrNothingDue
	}

	// 出題順は毎回ランダム (順序の安定性は保証しない)
	rand.Shuffle(len(due), func(i, j int) {
		due[i], due[j] = due[j], due[i]
	})

	return &Session{
		state: StateRunning,
		queue: due,
		today: calendarDay(today),
		save:  save,
	}, nil
}

// State は現在のセッション状態を返します
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Remaining はキューに残っている枚数を返します
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Advance はキュー先頭のカードを表面で提示し、採点を有効にします。
// 採点待ちのカードがある間は呼べない。直前の採点でキューが空になっていた
// 場合はCompleteに遷移し、カードは返さない。
func (s *Session) Advance() (*View, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return nil, false, fmt.Errorf("advance: session is not running: %w", ErrInvalidTransition)
	}
	if s.grading {
		return nil, false, fmt.Errorf("advance: current card has not been graded: %w", ErrInvalidTransition)
	}
	if len(s.queue) == 0 {
		s.state = StateComplete
		return nil, true, nil
	}

	// 先頭をpeekする (取り除くのは採点時)
	s.current = s.queue[0]
	s.showingFront = true
	s.grading = true
	return s.view(), false, nil
}

// Flip は表示面を切り替えます。採点状態やカードには一切影響しない。
func (s *Session) Flip() (*View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning || s.current == nil {
		return nil, fmt.Errorf("flip: no card is being shown: %w", ErrInvalidTransition)
	}
	s.showingFront = !s.showingFront
	return s.view(), nil
}

// Pass は現在のカードを合格として採点します。
// カードをキューから取り除き、Leitnerポリシーを適用して永続化する。
// キューが空になったらセッションはCompleteとなる。
// 永続化に失敗してもインメモリの変更は巻き戻さない (呼び出し側にエラーを返すのみ)。
func (s *Session) Pass(ctx context.Context) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, err := s.takeCurrent("pass")
	if err != nil {
		return 0, false, err
	}
	s.queue = s.queue[1:]
	s.applyGrade(card, leitner.Pass)

	completed := len(s.queue) == 0
	if completed {
		s.state = StateComplete
	}
	if err := s.save(ctx, card); err != nil {
		return len(s.queue), completed, err
	}
	return len(s.queue), completed, nil
}

// Fail は現在のカードを不合格として採点します。
// カードは先頭から取り除かれ、同じセッション内で再度出題されるよう
// キューの末尾に戻る。そのためFailでセッションが完了することはない。
func (s *Session) Fail(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, err := s.takeCurrent("fail")
	if err != nil {
		return 0, err
	}
	s.queue = append(s.queue[1:], card)
	s.applyGrade(card, leitner.Fail)

	if err := s.save(ctx, card); err != nil {
		return len(s.queue), err
	}
	return len(s.queue), nil
}

// Stop はキューと現在カードを破棄してセッションを終了します。
// 採点済みのカードは永続化済みのまま残る (追加の書き込みはしない)。
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateStopped
	s.queue = nil
	s.current = nil
	s.grading = false
}

// takeCurrent は採点可能な状態かを検証し、現在カードを返します (要ロック)
func (s *Session) takeCurrent(op string) (*model.Card, error) {
	if s.state != StateRunning {
		return nil, fmt.Errorf("%s: session is not running: %w", op, ErrInvalidTransition)
	}
	if !s.grading || s.current == nil {
		return nil, fmt.Errorf("%s: no card is awaiting a grade: %w", op, ErrInvalidTransition)
	}
	card := s.current
	s.current = nil
	s.grading = false
	return card, nil
}

// applyGrade は採点の副作用をカードに適用します (要ロック)。
// 回数カウンタと復習日は結果に関わらず更新し、箱の進行はポリシーに委ねる。
func (s *Session) applyGrade(card *model.Card, outcome leitner.Outcome) {
	card.NumberOfReviews++
	card.ReviewedDate = s.today.Format(model.DateLayout)
	if outcome == leitner.Pass {
		card.NumberOfPasses++
	}
	next := leitner.Next(card.LeitnerBox, card.LeitnerTarget, outcome, s.today)
	card.LeitnerBox = next.Box
	card.LeitnerTarget = next.Target
	card.DueDate = next.Due.Format(model.DateLayout)
}

// view は現在の表示面を構造体で返します (要ロック)
func (s *Session) view() *View {
	text := s.current.Front
	if !s.showingFront {
		text = s.current.Back
	}
	return &View{
		CardID: s.current.CardID,
		Front:  s.showingFront,
		Text:   text,
	}
}
