// sessionstore/local_sessionstore.go

package sessionstore

import (
	"context"
	"log"
	"sync"
)

// LocalSessionStore は、メモリ上にセッションを保持する簡易版ストレージです。
// 外部プロセスを必要としないため、開発時やテストで使います。
type LocalSessionStore struct {
	mu    sync.RWMutex
	store map[string]string
}

// NewLocalSessionStore コンストラクタ
func NewLocalSessionStore() *LocalSessionStore {
	return &LocalSessionStore{
		store: make(map[string]string),
	}
}

// Initialize は初期化処理（ここでは何もしない）
func (l *LocalSessionStore) Initialize(ctx context.Context) error {
	log.Println("LocalSessionStore initialized")
	return nil
}

// Get はキーの値を返します。存在しなければ空文字列を返します。
func (l *LocalSessionStore) Get(ctx context.Context, key string) (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store[key], nil
}

// Set はキーに値を保存します。
func (l *LocalSessionStore) Set(ctx context.Context, key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.store[key] = value
	return nil
}

// Remove はキーを削除します。存在しないキーでもエラーにしません。
func (l *LocalSessionStore) Remove(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.store, key)
	return nil
}

// Ping は疎通チェック用。常に true を返します
func (l *LocalSessionStore) Ping(ctx context.Context) bool {
	return true
}
