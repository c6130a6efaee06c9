package leitner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	today := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		box        int
		target     int
		outcome    Outcome
		wantBox    int
		wantTarget int
		wantDays   int // todayからの日数
	}{
		{
			name: "Pass: 箱が目標箱未満なら1つ進む (b+1 <= t)",
			box:  1, target: 3, outcome: Pass,
			wantBox: 2, wantTarget: 3, wantDays: 4,
		},
		{
			name: "Pass: 進めた箱が目標箱と等しい場合も進む",
			box:  2, target: 3, outcome: Pass,
			wantBox: 3, wantTarget: 3, wantDays: 8,
		},
		{
			name: "Pass: 目標箱を超えたら目標箱を引き上げて箱0に戻る",
			box:  3, target: 3, outcome: Pass,
			wantBox: 0, wantTarget: 4, wantDays: 1,
		},
		{
			name: "Pass: 初回合格でも総ざらいが発生する (b=0, t=0)",
			box:  0, target: 0, outcome: Pass,
			wantBox: 0, wantTarget: 1, wantDays: 1,
		},
		{
			name: "Fail: 箱も目標箱も全リセットして翌日出題",
			box:  5, target: 6, outcome: Fail,
			wantBox: 0, wantTarget: 0, wantDays: 1,
		},
		{
			name: "Fail: 初期状態からの不合格",
			box:  0, target: 0, outcome: Fail,
			wantBox: 0, wantTarget: 0, wantDays: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Next(tt.box, tt.target, tt.outcome, today)
			assert.Equal(t, tt.wantBox, got.Box)
			assert.Equal(t, tt.wantTarget, got.Target)
			assert.Equal(t, today.AddDate(0, 0, tt.wantDays), got.Due)
		})
	}
}

// 同じ入力からは常に同じ結果が得られること (純粋関数)
func TestNext_Deterministic(t *testing.T) {
	today := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	first := Next(2, 3, Pass, today)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Next(2, 3, Pass, today))
	}
}

// 総ざらい後、目標箱を再び超えるまで下位の箱を繰り返し通過すること
func TestNext_RecapitulationWalk(t *testing.T) {
	today := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	// b=0, t=3 から連続Pass: 1, 2, 3 と進み、4枚目で t=4, b=0 に戻る
	box, target := 0, 3
	for want := 1; want <= 3; want++ {
		p := Next(box, target, Pass, today)
		assert.Equal(t, want, p.Box)
		assert.Equal(t, 3, p.Target)
		box, target = p.Box, p.Target
	}
	p := Next(box, target, Pass, today)
	assert.Equal(t, 0, p.Box)
	assert.Equal(t, 4, p.Target)
	assert.Equal(t, today.AddDate(0, 0, 1), p.Due)
}
