package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/taskman/internal/model"
)

// TaskServiceInterface はタスクハンドラーが必要とするサービスインターフェース。
type TaskServiceInterface interface {
	// List は全タスクを返す。
	List(ctx context.Context) ([]*model.Task, error)
	// Create は指定ユーザーを所有者とする新規タスクを作成する。
	Create(ctx context.Context, title, description string, userID int64, done bool) (*model.Task, error)
	// Get は指定IDのタスクを返す。
	Get(ctx context.Context, id int64) (*model.Task, error)
	// Update はタスクを部分更新する。nilのフィールドは変更しない。
	Update(ctx context.Context, id int64, title, description *string, done *bool) (*model.Task, error)
	// Delete は指定IDのタスクを削除する。
	Delete(ctx context.Context, id int64) error
}

// TaskHandler はタスク管理のHTTPハンドラー。
// 所有ユーザーと呼び出し元の一致は検証しない。どのタスクもすべての
// 呼び出し元から操作できる（task.Service参照）。
type TaskHandler struct {
	service TaskServiceInterface
}

// NewTaskHandler はTaskHandlerを生成する。
func NewTaskHandler(service TaskServiceInterface) *TaskHandler {
	return &TaskHandler{
		service: service,
	}
}

// --- リクエスト/レスポンス型 ---

// createTaskRequest はタスク作成リクエストのボディ。
// doneのみ省略可能で、省略時はfalseになる。
type createTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	UserID      *int64  `json:"user_id"`
	Done        bool    `json:"done"`
}

// updateTaskRequest はタスク更新リクエストのボディ。
// すべて省略可能で、省略されたフィールドは変更されない。
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Done        *bool   `json:"done"`
}

// taskResponse はタスクのAPIレスポンス。保存カラムと1:1で対応する。
type taskResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Done        bool    `json:"done"`
	UserID      int64   `json:"user_id"`
}

// toTaskResponse はモデルをAPIレスポンスに変換する。
func toTaskResponse(t *model.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Done:        t.Done,
		UserID:      t.UserID,
	}
}

// taskIDFromURL はパスパラメータからタスクIDを解析する。
// 数値でないIDは存在しないタスクとして扱う。
func taskIDFromURL(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// ListTasks は全タスクの一覧を取得する。
// 所有ユーザーによるフィルタリングは行わない。
// GET /tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, toTaskResponse(t))
	}

	writeJSON(w, http.StatusOK, responses)
}

// CreateTask はタスク作成を処理する。
// POST /tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("Invalid JSON body"))
		return
	}

	if req.Title == nil || req.Description == nil || req.UserID == nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("Title, description and user_id are required"))
		return
	}

	created, err := h.service.Create(r.Context(), *req.Title, *req.Description, *req.UserID, req.Done)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(created))
}

// GetTask はタスク詳細を取得する。
// GET /tasks/{id}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskIDFromURL(r)
	if !ok {
		writeAPIErrorResponse(w, http.StatusNotFound,
			&model.APIError{Code: model.ErrCodeTaskNotFound, Message: "Task not found"})
		return
	}

	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(found))
}

// UpdateTask はタスクの部分更新を処理する。
// 省略されたフィールドは既存の値を維持する。
// PUT /tasks/{id}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskIDFromURL(r)
	if !ok {
		writeAPIErrorResponse(w, http.StatusNotFound,
			&model.APIError{Code: model.ErrCodeTaskNotFound, Message: "Task not found"})
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("Invalid JSON body"))
		return
	}

	updated, err := h.service.Update(r.Context(), id, req.Title, req.Description, req.Done)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(updated))
}

// DeleteTask はタスク削除を処理する。
// DELETE /tasks/{id}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskIDFromURL(r)
	if !ok {
		writeAPIErrorResponse(w, http.StatusNotFound,
			&model.APIError{Code: model.ErrCodeTaskNotFound, Message: "Task not found"})
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Task deleted"})
}
