// Package model はドメインモデルを定義する。
package model

import "time"

// Task はユーザーが所有するタスクを表す。
// DescriptionはNULL許容のためポインタで保持する。
// UserIDは所有ユーザーへの外部キーであり、リクエスト発行者との一致は検証されない。
type Task struct {
	ID          int64
	Title       string
	Description *string
	Done        bool
	UserID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
