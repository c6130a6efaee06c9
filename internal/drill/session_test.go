package drill

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"trireme_flashcards/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

func dateStr(daysFromToday int) string {
	return testToday.AddDate(0, 0, daysFromToday).Format(model.DateLayout)
}

func newTestCard(id uint, due string, box, target int) *model.Card {
	return &model.Card{
		CardID:        id,
		Front:         fmt.Sprintf("front-%d", id),
		Back:          fmt.Sprintf("back-%d", id),
		CreationDate:  dateStr(-30),
		DueDate:       due,
		LeitnerBox:    box,
		LeitnerTarget: target,
	}
}

// 採点の永続化呼び出しを記録するセーバー
type recordingSaver struct {
	saved []model.Card // 呼び出し時点のスナップショット (呼び出し順)
	err   error
}

func (r *recordingSaver) save(_ context.Context, card *model.Card) error {
	r.saved = append(r.saved, *card)
	return r.err
}

func TestDueCards(t *testing.T) {
	tests := []struct {
		name    string
		cards   []*model.Card
		wantIDs []uint
	}{
		{
			name: "本日以前が期日のカードだけが1枚ずつ選ばれる",
			cards: []*model.Card{
				newTestCard(1, dateStr(0), 0, 0),  // 本日
				newTestCard(2, dateStr(-1), 0, 0), // 昨日
				newTestCard(3, dateStr(1), 0, 0),  // 明日 (対象外)
			},
			wantIDs: []uint{1, 2},
		},
		{
			name:    "空のデッキは空の結果 (エラーではない)",
			cards:   nil,
			wantIDs: nil,
		},
		{
			name: "全カードが未来日なら空",
			cards: []*model.Card{
				newTestCard(1, dateStr(3), 0, 0),
			},
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due, err := DueCards(tt.cards, testToday)
			require.NoError(t, err)
			var ids []uint
			for _, c := range due {
				ids = append(ids, c.CardID)
			}
			assert.ElementsMatch(t, tt.wantIDs, ids)
		})
	}
}

func TestDueCards_MalformedDate(t *testing.T) {
	cards := []*model.Card{newTestCard(1, "10/01/2025", 0, 0)}
	_, err := DueCards(cards, testToday)
	require.Error(t, err)
}

func TestSession_LocalCalendarDay(t *testing.T) {
	// todayはUTCに換算した日付ではなく、渡された時刻そのものの暦日
	jst := time.FixedZone("JST", 9*60*60)
	localNow := time.Date(2025, 10, 1, 1, 0, 0, 0, jst) // UTCではまだ 9/30 16:00

	saver := &recordingSaver{}
	card := newTestCard(1, "2025-10-01", 0, 0)

	due, err := DueCards([]*model.Card{card}, localNow)
	require.NoError(t, err)
	require.Len(t, due, 1, "ローカルの本日が期日のカードは出題対象")

	session, err := Start([]*model.Card{card}, localNow, saver.save)
	require.NoError(t, err)
	_, _, err = session.Advance()
	require.NoError(t, err)
	_, _, err = session.Pass(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2025-10-01", card.ReviewedDate)
	assert.Equal(t, "2025-10-02", card.DueDate) // box0の合格は翌日期日

	// 逆方向 (UTCより遅れた時間帯): UTCでは翌日でも、ローカルの明日期日は対象外
	pdt := time.FixedZone("PDT", -7*60*60)
	westNow := time.Date(2025, 9, 30, 20, 0, 0, 0, pdt) // UTCでは 10/1 03:00
	tomorrow := newTestCard(2, "2025-10-01", 0, 0)
	due, err = DueCards([]*model.Card{tomorrow}, westNow)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestStart_NothingDue(t *testing.T) {
	saver := &recordingSaver{}
	cards := []*model.Card{newTestCard(1, dateStr(5), 0, 0)}

	session, err := Start(cards, testToday, saver.save)
	assert.ErrorIs(t, err, ErrNothingDue)
	assert.Nil(t, session)
}

func TestSession_PassProgression(t *testing.T) {
	// 仕様シナリオ: A(本日期日, box2, target3) は合格で box3/target3, 8日後。
	// B(昨日期日, box0, target0) は不合格で box0/target0, 翌日。
	saver := &recordingSaver{}
	a := newTestCard(1, dateStr(0), 2, 3)
	b := newTestCard(2, dateStr(-1), 0, 0)

	session, err := Start([]*model.Card{a, b}, testToday, saver.save)
	require.NoError(t, err)
	assert.Equal(t, 2, session.Remaining())

	// 2枚とも採点する (出題順はシャッフルされるため先頭を見て分岐)
	for session.Remaining() > 0 {
		view, completed, err := session.Advance()
		require.NoError(t, err)
		if completed {
			break
		}
		require.True(t, view.Front, "カードは必ず表面から提示される")

		if view.CardID == a.CardID {
			_, _, err = session.Pass(context.Background())
		} else {
			// Bは一度落としてから合格させ、同一セッション内の再出題を確認する
			if b.NumberOfReviews == 0 {
				_, err = session.Fail(context.Background())
			} else {
				_, _, err = session.Pass(context.Background())
			}
		}
		require.NoError(t, err)
	}

	assert.Equal(t, 3, a.LeitnerBox)
	assert.Equal(t, 3, a.LeitnerTarget)
	assert.Equal(t, dateStr(8), a.DueDate)
	assert.Equal(t, 1, a.NumberOfReviews)
	assert.Equal(t, 1, a.NumberOfPasses)

	// Bは不合格1回 (全リセット) + 合格1回 (b=1>t=0 で総ざらい発生)
	assert.Equal(t, 0, b.LeitnerBox)
	assert.Equal(t, 1, b.LeitnerTarget)
	assert.Equal(t, dateStr(1), b.DueDate)
	assert.Equal(t, 2, b.NumberOfReviews)
	assert.Equal(t, 1, b.NumberOfPasses)

	assert.Equal(t, StateComplete, session.State())
	assert.Len(t, saver.saved, 3, "採点イベントごとに1回永続化される")
}

func TestSession_FailRequeuesAtTail(t *testing.T) {
	saver := &recordingSaver{}
	cards := []*model.Card{
		newTestCard(1, dateStr(0), 1, 2),
		newTestCard(2, dateStr(0), 0, 1),
		newTestCard(3, dateStr(0), 2, 2),
	}
	session, err := Start(cards, testToday, saver.save)
	require.NoError(t, err)

	// K枚のキューに対してFailをN回繰り返しても長さはKのまま、完了もしない
	const n = 9
	for i := 0; i < n; i++ {
		view, completed, err := session.Advance()
		require.NoError(t, err)
		require.False(t, completed)
		require.NotNil(t, view)

		remaining, err := session.Fail(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, remaining)
	}
	assert.Equal(t, StateRunning, session.State())
	assert.Len(t, saver.saved, n)

	// 全カードが全リセットされている
	for _, c := range cards {
		assert.Equal(t, 0, c.LeitnerBox)
		assert.Equal(t, 0, c.LeitnerTarget)
		assert.Equal(t, dateStr(1), c.DueDate)
		assert.Equal(t, 0, c.NumberOfPasses)
	}
}

func TestSession_FlipTogglesFaceOnly(t *testing.T) {
	saver := &recordingSaver{}
	card := newTestCard(1, dateStr(0), 0, 0)
	session, err := Start([]*model.Card{card}, testToday, saver.save)
	require.NoError(t, err)

	view, _, err := session.Advance()
	require.NoError(t, err)
	assert.True(t, view.Front)
	assert.Equal(t, "front-1", view.Text)

	view, err = session.Flip()
	require.NoError(t, err)
	assert.False(t, view.Front)
	assert.Equal(t, "back-1", view.Text)

	view, err = session.Flip()
	require.NoError(t, err)
	assert.True(t, view.Front)

	// Flipはカードにも永続化にも影響しない
	assert.Equal(t, 0, card.NumberOfReviews)
	assert.Empty(t, saver.saved)
}

func TestSession_InvalidTransitions(t *testing.T) {
	saver := &recordingSaver{}
	cards := []*model.Card{
		newTestCard(1, dateStr(0), 0, 0),
		newTestCard(2, dateStr(0), 0, 0),
	}
	session, err := Start(cards, testToday, saver.save)
	require.NoError(t, err)

	// 出題前の採点・裏返しは遷移違反
	_, _, err = session.Pass(context.Background())
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = session.Fail(context.Background())
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = session.Flip()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// 採点待ちの間のAdvanceも遷移違反
	_, _, err = session.Advance()
	require.NoError(t, err)
	_, _, err = session.Advance()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// 採点後の二重採点も遷移違反
	_, _, err = session.Pass(context.Background())
	require.NoError(t, err)
	_, _, err = session.Pass(context.Background())
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// 停止後はすべて遷移違反
	session.Stop()
	_, _, err = session.Advance()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSession_CompleteOnAdvanceAfterLastPass(t *testing.T) {
	saver := &recordingSaver{}
	card := newTestCard(1, dateStr(0), 0, 0)
	session, err := Start([]*model.Card{card}, testToday, saver.save)
	require.NoError(t, err)

	_, completed, err := session.Advance()
	require.NoError(t, err)
	require.False(t, completed)

	remaining, completed, err := session.Pass(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
	assert.True(t, completed)
	assert.Equal(t, StateComplete, session.State())
}

func TestSession_StopDiscardsQueueWithoutSaving(t *testing.T) {
	saver := &recordingSaver{}
	cards := []*model.Card{
		newTestCard(1, dateStr(0), 0, 0),
		newTestCard(2, dateStr(0), 0, 0),
	}
	session, err := Start(cards, testToday, saver.save)
	require.NoError(t, err)

	// 1枚目を採点し、2枚目を表示したまま停止する
	_, _, err = session.Advance()
	require.NoError(t, err)
	_, _, err = session.Pass(context.Background())
	require.NoError(t, err)
	_, _, err = session.Advance()
	require.NoError(t, err)

	session.Stop()
	assert.Equal(t, StateStopped, session.State())
	assert.Equal(t, 0, session.Remaining())
	// 採点済みの1件だけが永続化されている (表示中だった未採点カードは書かれない)
	assert.Len(t, saver.saved, 1)

	// 停止後に改めて開始すると出題キューは作り直され、未採点カードは再び対象になる
	session2, err := Start(cards, testToday, saver.save)
	require.NoError(t, err)
	assert.Equal(t, 1, session2.Remaining())
}

func TestSession_SaveFailureKeepsInMemoryMutation(t *testing.T) {
	saver := &recordingSaver{err: errors.New("db down")}
	card := newTestCard(1, dateStr(0), 1, 2)
	session, err := Start([]*model.Card{card}, testToday, saver.save)
	require.NoError(t, err)

	_, _, err = session.Advance()
	require.NoError(t, err)
	_, completed, err := session.Pass(context.Background())
	require.Error(t, err)
	assert.True(t, completed)

	// 永続化に失敗してもインメモリの変更は適用されたまま (仕様上の乖離)
	assert.Equal(t, 2, card.LeitnerBox)
	assert.Equal(t, 1, card.NumberOfReviews)
}

func TestSession_SaveOrderMatchesGradingOrder(t *testing.T) {
	saver := &recordingSaver{}
	cards := []*model.Card{newTestCard(1, dateStr(0), 0, 3)}
	session, err := Start(cards, testToday, saver.save)
	require.NoError(t, err)

	// 同一カードをFail→Passの順で採点し、その順で永続化されること
	_, _, err = session.Advance()
	require.NoError(t, err)
	_, err = session.Fail(context.Background())
	require.NoError(t, err)
	_, _, err = session.Advance()
	require.NoError(t, err)
	_, _, err = session.Pass(context.Background())
	require.NoError(t, err)

	require.Len(t, saver.saved, 2)
	assert.Equal(t, 0, saver.saved[0].LeitnerBox, "1回目はFailで全リセット")
	assert.Equal(t, 0, saver.saved[0].LeitnerTarget)
	assert.Equal(t, 1, saver.saved[1].LeitnerTarget, "2回目はPassで総ざらい")
	assert.Equal(t, 2, saver.saved[1].NumberOfReviews)
}
