// Package leitner はLeitner法の箱進行ポリシーを実装します。
// 各箱は復習間隔を倍々にする (1, 2, 4, 8, ... 日)。
package leitner

import (
	"math"
	"time"
)

// Outcome は採点結果
type Outcome int

const (
	Pass Outcome = iota
	Fail
)

// Progress は採点後の復習状態
type Progress struct {
	Box    int
	Target int
	Due    time.Time
}

// Next は現在の箱・目標箱と採点結果から次の復習状態を計算します。
// 純粋関数であり、カード自体の更新 (回数カウンタ等) は呼び出し側の責務。
//
// Pass: 箱を1つ進める。進めた箱が目標箱を超えた場合は目標箱をその値まで
// 引き上げ、箱を0に戻す (目標箱を超える前に下位の箱を総ざらいさせる)。
// 箱が目標箱より下に戻るのは意図した挙動であり、修正しないこと。
// 次回出題日は調整後の箱に対して today + 2^box 日。
//
// Fail: 箱も目標箱も0に全リセットし、翌日再出題。
func Next(box, target int, outcome Outcome, today time.Time) Progress {
	if outcome == Fail {
		return Progress{
			Box:    0,
			Target: 0,
			Due:    today.AddDate(0, 0, 1),
		}
	}

	box++
	if box > target {
		target = box
		box = 0
	}
	days := int(math.Pow(2, float64(box)))
	return Progress{
		Box:    box,
		Target: target,
		Due:    today.AddDate(0, 0, days),
	}
}
