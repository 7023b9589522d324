// sessionstore/sessionstore.go

// Package sessionstore はログインセッションを保持するキーバリューストアを
// 提供します。ブラウザ版の localStorage に相当する外部状態で、コアは
// ISessionStore 経由でのみ読み書きします。
package sessionstore

import (
	"context"
	"strconv"
)

// セッションストアが扱うキー。balance は数値文字列として保存されます。
const (
	KeyToken    = "token"
	KeyUsername = "username"
	KeyBalance  = "balance"
)

// ISessionStore はセッションストレージへの操作を定義するインターフェースです
type ISessionStore interface {
	Initialize(ctx context.Context) error

	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error

	Ping(ctx context.Context) bool
}

// Session は ISessionStore 上の token / username / balance キーへの型付き
// ビューです。balance の数値変換をここに集約します。
type Session struct {
	store ISessionStore
}

// NewSession コンストラクタ
func NewSession(store ISessionStore) *Session {
	return &Session{store: store}
}

// Token はログイントークンを返します。未ログインなら空文字列です。
func (s *Session) Token(ctx context.Context) (string, error) {
	return s.store.Get(ctx, KeyToken)
}

// Username はログイン中のユーザー名を返します。
func (s *Session) Username(ctx context.Context) (string, error) {
	return s.store.Get(ctx, KeyUsername)
}

// Balance はウォレット残高を返します。キーが無い・空の場合は 0 です。
func (s *Session) Balance(ctx context.Context) (float64, error) {
	raw, err := s.store.Get(ctx, KeyBalance)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// SetBalance はウォレット残高を数値文字列として保存します。
func (s *Session) SetBalance(ctx context.Context, balance float64) error {
	return s.store.Set(ctx, KeyBalance, strconv.FormatFloat(balance, 'f', -1, 64))
}

// Persist はログイン成功時に token / username / balance をまとめて保存します。
func (s *Session) Persist(ctx context.Context, token, username string, balance float64) error {
	if err := s.store.Set(ctx, KeyToken, token); err != nil {
		return err
	}
	if err := s.store.Set(ctx, KeyUsername, username); err != nil {
		return err
	}
	return s.SetBalance(ctx, balance)
}

// Clear はログアウト時に 3 キーをすべて削除します。
func (s *Session) Clear(ctx context.Context) error {
	for _, key := range []string{KeyBalance, KeyToken, KeyUsername} {
		if err := s.store.Remove(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
