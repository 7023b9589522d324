// cart/manager.go

package cart

import (
	"context"

	"github.com/veekshithcb/Qkart-Frontend/notify"
)

// ICartAPI は Manager が使うリモート Cart サービスへの操作です。
// 追加・更新はいずれも更新後のカート行全体を返します。
type ICartAPI interface {
	FetchCart(ctx context.Context, token string) ([]Row, error)
	AddToCart(ctx context.Context, token, productID string, qty int) ([]Row, error)
}

const (
	msgFetchCartFailed = "Could not fetch cart details. Check that the backend is running, reachable and returns valid JSON."
	msgLoginToAdd      = "Login to add an item to the Cart"
	msgAlreadyInCart   = "Item already in cart. Use the cart sidebar to update quantity or remove item."
)

// Manager はサーバーに永続化されたカートのローカルコピーを所有し、
// 取得・追加・数量変更を仲介します。行の書き換えはサーバーが返す
// カート行全体での置き換えだけです。
type Manager struct {
	api      ICartAPI
	notifier notify.INotifier
	rows     []Row
}

// NewManager コンストラクタ
func NewManager(api ICartAPI, notifier notify.INotifier) *Manager {
	return &Manager{api: api, notifier: notifier}
}

// Rows は現在のカート行のコピーを返します。
func (m *Manager) Rows() []Row {
	rows := make([]Row, len(m.rows))
	copy(rows, m.rows)
	return rows
}

// Refresh はサーバーからカート行を取得してローカルを置き換えます。
// 失敗時は通知してローカル状態を変更しません。
func (m *Manager) Refresh(ctx context.Context, token string) ([]Row, error) {
	if token == "" {
		return nil, nil
	}
	rows, err := m.api.FetchCart(ctx, token)
	if err != nil {
		m.notifier.Notify(notify.ErrorMessage(err, msgFetchCartFailed), notify.SeverityError)
		return nil, err
	}
	m.rows = rows
	return rows, nil
}

// AddItem は商品をカートに追加または数量変更します。
// preventDuplicate は商品一覧の「カートに追加」からの呼び出しで true にし、
// 既にカートにある商品は追加せず警告します（数量の変更はカート側で行う）。
// 未ログインの場合はネットワークを呼ばず警告だけ出します。
func (m *Manager) AddItem(ctx context.Context, token, productID string, qty int, preventDuplicate bool) ([]Row, error) {
	if token == "" {
		m.notifier.Notify(msgLoginToAdd, notify.SeverityWarning)
		return m.rows, nil
	}
	if preventDuplicate && Contains(m.rows, productID) {
		m.notifier.Notify(msgAlreadyInCart, notify.SeverityWarning)
		return m.rows, nil
	}

	rows, err := m.api.AddToCart(ctx, token, productID, qty)
	if err != nil {
		m.notifier.Notify(notify.ErrorMessage(err, msgFetchCartFailed), notify.SeverityError)
		return nil, err
	}
	m.rows = rows
	return rows, nil
}
