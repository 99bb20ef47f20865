package handler

import (
	"context"
	"log/slog"
	"net/http"
)

// HealthChecker はデータベース疎通確認に必要なインターフェース。
// *sql.DBがこれを満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// StatusHandler はルートとヘルスチェックのHTTPハンドラー。
type StatusHandler struct {
	checker HealthChecker
}

// NewStatusHandler はStatusHandlerを生成する。
func NewStatusHandler(checker HealthChecker) *StatusHandler {
	return &StatusHandler{
		checker: checker,
	}
}

// Home はウェルカムメッセージを返す。
// GET /
func (h *StatusHandler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Welcome to the Task API"})
}

// Health はデータベース疎通を確認し、サービスの稼働状態を返す。
// Dockerヘルスチェックおよびロードバランサー向け。
// GET /health
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.checker != nil {
		if err := h.checker.PingContext(r.Context()); err != nil {
			slog.Error("health check failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
