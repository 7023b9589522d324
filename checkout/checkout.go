// checkout/checkout.go

// Package checkout はチェックアウトの前提条件検証と、注文送信・残高反映の
// オーケストレーションを実装します。フローは厳密に逐次です:
// 検証 → 注文送信 → 残高反映。残高の反映はサーバーが注文成功を返した後に
// しか行いません（失敗した注文で二重に引き落とさないため）。
package checkout

import (
	"context"
	"errors"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/veekshithcb/Qkart-Frontend/address"
	"github.com/veekshithcb/Qkart-Frontend/cart"
	"github.com/veekshithcb/Qkart-Frontend/notify"
	"github.com/veekshithcb/Qkart-Frontend/sessionstore"
)

// State はチェックアウトの進行状態です。
// VALIDATING → SUBMITTING → RECONCILING → DONE が正常系で、
// VALIDATING から REJECTED、SUBMITTING から FAILED に終端します。
type State string

const (
	StateValidating  State = "VALIDATING"
	StateSubmitting  State = "SUBMITTING"
	StateReconciling State = "RECONCILING"
	StateDone        State = "DONE"
	StateRejected    State = "REJECTED"
	StateFailed      State = "FAILED"
)

// IOrderPlacer はリモートの Order サービスへの注文送信です。
// サーバーが失敗を返した場合はサーバーメッセージを含むエラーを返します。
type IOrderPlacer interface {
	PlaceOrder(ctx context.Context, token, addressID string) error
}

// ErrCheckoutInFlight は進行中のチェックアウトがある間の再入を表します。
var ErrCheckoutInFlight = errors.New("checkout: another checkout is already in flight")

const msgPlaceOrderFailed = "Could not place the order. Check that the backend is running, reachable and returns valid JSON."

// Outcome はチェックアウト 1 回の結果です。State は終端状態のいずれかです。
type Outcome struct {
	State  State
	Reason FailureReason // REJECTED のとき不成立理由
	Err    error         // FAILED のとき送信エラー

	// NewBalance は DONE のときの反映後ウォレット残高です。
	NewBalance float64
}

// Orchestrator は検証・注文送信・残高反映を逐次実行します。
// 1 回の呼び出しでネットワーク書き込みは最大 1 回、セッションストアへの
// 書き込みは成功経路でのみ最大 1 回です。
type Orchestrator struct {
	orders   IOrderPlacer
	session  *sessionstore.Session
	notifier notify.INotifier
	tracer   trace.Tracer

	inFlight atomic.Bool
}

// NewOrchestrator コンストラクタ
func NewOrchestrator(orders IOrderPlacer, session *sessionstore.Session, notifier notify.INotifier) *Orchestrator {
	return &Orchestrator{
		orders:   orders,
		session:  session,
		notifier: notifier,
		tracer:   otel.Tracer("storefront-checkout"),
	}
}

// Checkout はカートのスナップショットに対してチェックアウトを実行します。
// 検証不成立（REJECTED）と送信失敗（FAILED)は想定内の結果で、通知済みの
// Outcome として返ります。error が非 nil になるのは再入（ErrCheckoutInFlight）と、
// 注文成功後の残高保存に失敗した場合だけです。
func (o *Orchestrator) Checkout(ctx context.Context, rows []cart.Row, catalog []cart.Product, addrs address.State) (Outcome, error) {
	// 進行中にもう一度呼ばれた場合はネットワークを呼ばずに拒否する
	if !o.inFlight.CompareAndSwap(false, true) {
		return Outcome{State: StateRejected}, ErrCheckoutInFlight
	}
	defer o.inFlight.Store(false)

	ctx, span := o.tracer.Start(ctx, "Checkout")
	defer span.End()

	// VALIDATING
	span.AddEvent(string(StateValidating))
	balance, err := o.session.Balance(ctx)
	if err != nil {
		span.SetAttributes(attribute.String("error", err.Error()))
		return Outcome{State: StateFailed, Err: err}, err
	}

	if result := Validate(rows, catalog, addrs, balance); !result.OK {
		span.SetAttributes(attribute.String("checkout.rejected_reason", string(result.Reason)))
		o.notifier.Notify(result.Reason.Message(), notify.SeverityWarning)
		return Outcome{State: StateRejected, Reason: result.Reason}, nil
	}

	// SUBMITTING
	span.AddEvent(string(StateSubmitting))
	token, err := o.session.Token(ctx)
	if err != nil {
		span.SetAttributes(attribute.String("error", err.Error()))
		return Outcome{State: StateFailed, Err: err}, err
	}

	if err := o.orders.PlaceOrder(ctx, token, addrs.SelectedID); err != nil {
		span.SetAttributes(attribute.String("error", err.Error()))
		o.notifier.Notify(notify.ErrorMessage(err, msgPlaceOrderFailed), notify.SeverityError)
		return Outcome{State: StateFailed, Err: err}, nil
	}

	// RECONCILING: サーバーが注文成功を確認した後にだけ残高を差し引く
	span.AddEvent(string(StateReconciling))
	total := cart.TotalValue(cart.ResolveLineItems(rows, catalog))
	newBalance := balance - total
	if err := o.session.SetBalance(ctx, newBalance); err != nil {
		// 注文自体は確定済み。残高のローカル反映だけが失敗している。
		span.SetAttributes(attribute.String("error", err.Error()))
		return Outcome{State: StateDone, NewBalance: newBalance, Err: err}, err
	}

	// DONE: 呼び出し側は注文完了ビューへ遷移する
	span.AddEvent(string(StateDone))
	span.SetAttributes(attribute.Float64("checkout.order_total", total))
	return Outcome{State: StateDone, NewBalance: newBalance}, nil
}
