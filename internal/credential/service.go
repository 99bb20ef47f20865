// Package credential はパスワードの一方向ハッシュ化と検証を提供する。
// ハッシュアルゴリズムをハンドラーに漏らさないため、小さなインターフェースの
// 背後に隔離する。
package credential

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Service はパスワードのハッシュ化と検証のインターフェース。
type Service interface {
	// Hash はパスワードのソルト付きハッシュを生成する。
	// 呼び出しごとにランダムなソルトを使用するため、同一入力でも出力は毎回異なる。
	Hash(password string) (string, error)

	// Verify はパスワードがハッシュと一致するかを検証する。
	// ソルトはハッシュ文字列に埋め込まれている。
	Verify(password, hash string) bool
}

// BcryptService はbcryptを使用したServiceの実装。
type BcryptService struct {
	cost int
}

// NewBcryptService はBcryptServiceを生成する。
// costが範囲外の場合はbcrypt.DefaultCostを使用する。
func NewBcryptService(cost int) *BcryptService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptService{cost: cost}
}

// Hash はパスワードのbcryptハッシュを生成する。
func (s *BcryptService) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify はパスワードがハッシュと一致する場合にtrueを返す。
func (s *BcryptService) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// compile-time interface check
var _ Service = (*BcryptService)(nil)
