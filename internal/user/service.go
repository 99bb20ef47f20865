// Package user はユーザー登録と認証のドメインロジックを提供する。
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"github.com/hitoshi/taskman/internal/credential"
	"github.com/hitoshi/taskman/internal/metrics"
	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/repository"
)

// pqUniqueViolation はPostgreSQLの一意性制約違反エラーコード。
const pqUniqueViolation = "23505"

// Service はユーザー管理のサービス層。
// 登録と資格情報検証のビジネスロジックを提供する。
type Service struct {
	userRepo    repository.UserRepository
	credentials credential.Service
	collector   metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
// collectorはnil可（テスト用）。
func NewService(
	userRepo repository.UserRepository,
	credentials credential.Service,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		userRepo:    userRepo,
		credentials: credentials,
		collector:   collector,
	}
}

// Register は新規ユーザーを登録する。
// usernameの重複はINSERT前の存在確認で検出し、わかりやすいエラーを返す。
// emailの重複（および存在確認とINSERTの間の競合）はストレージの一意性制約に
// 委ね、制約違反を同じ重複エラーに変換する。
// 平文パスワードは保存されず、ソルト付きハッシュのみが永続化される。
func (s *Service) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, model.NewDuplicateUserError(username)
	}

	hash, err := s.credentials.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, model.NewDuplicateUserError(username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.collector != nil {
		s.collector.RecordUserRegistered()
	}

	slog.Info("new user registered",
		slog.Int64("user_id", newUser.ID),
		slog.String("username", username),
	)

	return newUser, nil
}

// Authenticate はusernameとpasswordの組を検証する。
// ユーザー不在とパスワード不一致は同一のエラーで返し、どちらが原因かを
// 呼び出し元に漏らさない。セッションやトークンは発行しない。
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	found, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if found == nil {
		return nil, model.NewAuthenticationError()
	}

	if !s.credentials.Verify(password, found.PasswordHash) {
		return nil, model.NewAuthenticationError()
	}

	slog.Info("user authenticated",
		slog.Int64("user_id", found.ID),
		slog.String("username", username),
	)

	return found, nil
}
