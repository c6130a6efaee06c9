// internal/model/drill.go
package model

import "github.com/google/uuid"

// StartDrillResponse はドリル開始APIのレスポンスDTO
// 出題対象が1枚もない場合は NothingDue=true となり、セッションは作られない
type StartDrillResponse struct {
	DrillID    *uuid.UUID `json:"drill_id,omitempty"`
	DueCount   int        `json:"due_count"`
	NothingDue bool       `json:"nothing_due"`
}

// DrillCardView は出題中カードの表示面を表すDTO
// カードIDと表示テキストを構造体で返す (識別子を文字列に詰め込まない)
type DrillCardView struct {
	CardID uint   `json:"card_id"`
	Face   string `json:"face"` // "front" | "back"
	Text   string `json:"text"`
}

// DrillAdvanceResponse は次カード取得APIのレスポンスDTO
type DrillAdvanceResponse struct {
	Completed bool           `json:"completed"`
	Card      *DrillCardView `json:"card,omitempty"`
}

// DrillProgressResponse は採点APIのレスポンスDTO
type DrillProgressResponse struct {
	Remaining int  `json:"remaining"`
	Completed bool `json:"completed"`
}

// DueCountResponse は本日出題対象のカード枚数
type DueCountResponse struct {
	DueCount int64 `json:"due_count"`
}
