// search/search.go

// Package search は商品一覧の取得と検索を実装します。検索入力は 500ms の
// 静止期間でデバウンスし、連続した入力を最後の 1 回の API 呼び出しに
// まとめます（保留中の呼び出しは新しい入力で置き換え）。
package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/veekshithcb/Qkart-Frontend/api"
	"github.com/veekshithcb/Qkart-Frontend/cart"
	"github.com/veekshithcb/Qkart-Frontend/notify"
)

// DefaultQuietPeriod はデバウンスの静止期間です。
const DefaultQuietPeriod = 500 * time.Millisecond

const msgFetchProductsFailed = "Could not fetch products. Check that the backend is running, reachable and returns valid JSON."

// IProductAPI はリモートの Catalog サービスへの操作です。
type IProductAPI interface {
	Products(ctx context.Context) ([]cart.Product, error)
	SearchProducts(ctx context.Context, query string) ([]cart.Product, error)
}

// Result は検索 1 回の結果です。NotFound はヒット 0 件の状態で、エラーでは
// ありません（UI は「見つかりませんでした」表示に切り替えます）。
type Result struct {
	Products []cart.Product
	NotFound bool
}

// Runner は検索を実行して結果をコールバックに渡します。
type Runner struct {
	api      IProductAPI
	notifier notify.INotifier
	onResult func(Result)
	quiet    time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewRunner コンストラクタ
func NewRunner(api IProductAPI, notifier notify.INotifier, onResult func(Result)) *Runner {
	return NewRunnerWithQuietPeriod(api, notifier, onResult, DefaultQuietPeriod)
}

// NewRunnerWithQuietPeriod は静止期間を差し替えます。テスト向け。
func NewRunnerWithQuietPeriod(api IProductAPI, notifier notify.INotifier, onResult func(Result), quiet time.Duration) *Runner {
	return &Runner{api: api, notifier: notifier, onResult: onResult, quiet: quiet}
}

// Search は入力をデバウンスして検索を予約します。静止期間内に再度呼ばれた
// 場合、保留中の検索は新しいクエリで置き換えられます。
func (r *Runner) Search(ctx context.Context, query string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.quiet, func() {
		r.Perform(ctx, query)
	})
}

// Stop は保留中の検索を取り消します。
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// Perform はデバウンスせずに即時検索します。クエリが空の場合は全商品を
// 取得します。ヒット 0 件は NotFound=true の結果になり、リモート障害は
// 通知した上でコールバックを呼びません。
func (r *Runner) Perform(ctx context.Context, query string) {
	var (
		products []cart.Product
		err      error
	)
	if query == "" {
		products, err = r.api.Products(ctx)
	} else {
		products, err = r.api.SearchProducts(ctx, query)
	}

	if errors.Is(err, api.ErrNoProductsFound) {
		r.onResult(Result{Products: []cart.Product{}, NotFound: true})
		return
	}
	if err != nil {
		r.notifier.Notify(notify.ErrorMessage(err, msgFetchProductsFailed), notify.SeverityError)
		return
	}
	r.onResult(Result{Products: products})
}
