// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError はAPIレスポンスに変換可能なエラーを表す。
// Messageがそのままエラーレスポンスボディの error フィールドになる。
type APIError struct {
	Code    string // エラーコード
	Message string // ユーザー向けメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation    = "VALIDATION_FAILED"
	ErrCodeTaskNotFound  = "TASK_NOT_FOUND"
	ErrCodeUserNotFound  = "USER_NOT_FOUND"
	ErrCodeDuplicateUser = "DUPLICATE_USER"
	ErrCodeAuthFailed    = "AUTH_FAILED"
)

// NewValidationError は必須フィールド欠落などの入力エラーを生成する。
func NewValidationError(message string) *APIError {
	return &APIError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// NewTaskNotFoundError は指定IDのタスクが存在しない場合のエラーを生成する。
func NewTaskNotFoundError(taskID int64) *APIError {
	return &APIError{
		Code:    ErrCodeTaskNotFound,
		Message: fmt.Sprintf("Task %d not found", taskID),
	}
}

// NewUserNotFoundError は指定IDのユーザーが存在しない場合のエラーを生成する。
// タスク作成時のuser_id解決に失敗した場合に使用する。
func NewUserNotFoundError(userID int64) *APIError {
	return &APIError{
		Code:    ErrCodeUserNotFound,
		Message: fmt.Sprintf("User %d not found", userID),
	}
}

// NewDuplicateUserError はusernameまたはemailが既に登録済みの場合のエラーを生成する。
func NewDuplicateUserError(username string) *APIError {
	return &APIError{
		Code:    ErrCodeDuplicateUser,
		Message: fmt.Sprintf("User %q already exists", username),
	}
}

// NewAuthenticationError はログイン失敗エラーを生成する。
// ユーザー不在とパスワード不一致を区別しない同一メッセージを返す。
func NewAuthenticationError() *APIError {
	return &APIError{
		Code:    ErrCodeAuthFailed,
		Message: "Invalid username or password",
	}
}
