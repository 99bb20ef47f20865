// Package task はタスク管理のドメインロジックを提供する。
package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/taskman/internal/metrics"
	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/repository"
	"github.com/hitoshi/taskman/internal/security"
)

// Service はタスク管理のサービス層。
// 所有ユーザーの存在確認と部分更新のマージを担う。
// 操作はリクエスト発行者による絞り込みを行わない。呼び出し元の同一性を
// 担保する仕組み（セッション・トークン）がこの設計には存在しないため、
// どのタスクも全ての呼び出し元から参照・変更・削除できる。
type Service struct {
	taskRepo  repository.TaskRepository
	userRepo  repository.UserRepository
	sanitizer security.TextSanitizerService
	collector metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
// collectorはnil可（テスト用）。
func NewService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	sanitizer security.TextSanitizerService,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		sanitizer: sanitizer,
		collector: collector,
	}
}

// List は全タスクを返す。所有ユーザーによるフィルタリングは行わない。
func (s *Service) List(ctx context.Context) ([]*model.Task, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Create は指定ユーザーを所有者とする新規タスクを作成する。
// userIDが既存ユーザーに解決できない場合はUSER_NOT_FOUNDを返す。
// タイトルと説明は保存前にHTMLを除去する。
func (s *Service) Create(ctx context.Context, title, description string, userID int64, done bool) (*model.Task, error) {
	owner, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}
	if owner == nil {
		return nil, model.NewUserNotFoundError(userID)
	}

	desc := s.sanitizer.Sanitize(description)
	newTask := &model.Task{
		Title:       s.sanitizer.Sanitize(title),
		Description: &desc,
		Done:        done,
		UserID:      userID,
	}

	if err := s.taskRepo.Create(ctx, newTask); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if s.collector != nil {
		s.collector.RecordTaskCreated()
	}

	slog.Info("task created",
		slog.Int64("task_id", newTask.ID),
		slog.Int64("user_id", userID),
	)

	return newTask, nil
}

// Get は指定IDのタスクを返す。存在しない場合はTASK_NOT_FOUNDを返す。
func (s *Service) Get(ctx context.Context, id int64) (*model.Task, error) {
	found, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if found == nil {
		return nil, model.NewTaskNotFoundError(id)
	}
	return found, nil
}

// Update はタスクを部分更新する。
// nilのフィールドは変更せず、既存の値を維持するマージを行う。
// 所有ユーザー（user_id）は変更できない。
func (s *Service) Update(ctx context.Context, id int64, title, description *string, done *bool) (*model.Task, error) {
	found, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if found == nil {
		return nil, model.NewTaskNotFoundError(id)
	}

	if title != nil {
		found.Title = s.sanitizer.Sanitize(*title)
	}
	if description != nil {
		desc := s.sanitizer.Sanitize(*description)
		found.Description = &desc
	}
	if done != nil {
		found.Done = *done
	}

	if err := s.taskRepo.Update(ctx, found); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	slog.Info("task updated", slog.Int64("task_id", id))

	return found, nil
}

// Delete は指定IDのタスクを削除する。存在しない場合はTASK_NOT_FOUNDを返す。
func (s *Service) Delete(ctx context.Context, id int64) error {
	found, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}
	if found == nil {
		return model.NewTaskNotFoundError(id)
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if s.collector != nil {
		s.collector.RecordTaskDeleted()
	}

	slog.Info("task deleted", slog.Int64("task_id", id))

	return nil
}
