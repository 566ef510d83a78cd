// Package credential 提供单向密码哈希与校验。明文密码从不持久化、记录日志或序列化。
package credential

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher 是密码哈希能力的抽象
type Hasher interface {
	// Hash 生成带盐的单向哈希
	Hash(plain string) (string, error)
	// Verify 校验明文是否与哈希匹配
	Verify(plain, hash string) bool
}

// MaxPasswordBytes 是 bcrypt 能处理的最大密码长度 (字节)
const MaxPasswordBytes = 72

var (
	// ErrEmptyPassword 空密码不允许哈希
	ErrEmptyPassword = errors.New("credential: empty password")
	// ErrPasswordTooLong 密码超过 MaxPasswordBytes
	ErrPasswordTooLong = errors.New("credential: password exceeds 72 bytes")
)

// BcryptHasher 使用 bcrypt 实现 Hasher
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher 创建 BcryptHasher，cost 非法时使用 bcrypt.DefaultCost。
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash 使用 bcrypt 对密码进行哈希处理
func (h *BcryptHasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	if len(plain) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to generate hash from password: %w", err)
	}
	return string(bytes), nil
}

// Verify 比较交给 bcrypt 完成，不做原始字节相等比较
func (h *BcryptHasher) Verify(plain, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
