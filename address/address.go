// address/address.go

// Package address は配送先住所の一覧・選択状態・下書きを管理します。
// 住所の追加・削除はリモートの Address サービスが正とし、成功時はサーバーが
// 返すリスト全体でローカル状態を置き換えます（楽観的なローカル追記はしません）。
package address

import (
	"context"

	"github.com/veekshithcb/Qkart-Frontend/notify"
)

// Address は登録済みの配送先住所です。_id で一意です。
type Address struct {
	ID   string `json:"_id"`
	Text string `json:"address"`
}

// State は住所コレクションと選択状態のスナップショットです。
// SelectedID が空でなければ All 内のいずれかの ID を指します。
type State struct {
	All        []Address
	SelectedID string
}

// Draft は送信前の新規住所の下書きです。永続化されません。
type Draft struct {
	IsEditing bool
	Text      string
}

// IAddressAPI は Manager が使うリモート Address サービスへの操作です。
// 追加・削除はいずれも更新後の住所リスト全体を返します。
type IAddressAPI interface {
	Addresses(ctx context.Context, token string) ([]Address, error)
	AddAddress(ctx context.Context, token, text string) ([]Address, error)
	DeleteAddress(ctx context.Context, token, addressID string) ([]Address, error)
}

// 接続エラー時の汎用メッセージ。サーバーがメッセージを返した場合はそちらを優先します。
const (
	msgFetchAddressesFailed = "Could not fetch addresses. Check that the backend is running, reachable and returns valid JSON."
	msgAddAddressFailed     = "Could not add this address. Check that the backend is running, reachable and returns valid JSON."
	msgDeleteAddressFailed  = "Could not delete this address. Check that the backend is running, reachable and returns valid JSON."
)

// Manager は住所の作成・選択・削除と下書き状態を所有します。
// 1 ユーザーセッションにつき呼び出し側は単一ゴルーチンを前提とします。
type Manager struct {
	api      IAddressAPI
	notifier notify.INotifier
	state    State
	draft    Draft
}

// NewManager コンストラクタ
func NewManager(api IAddressAPI, notifier notify.INotifier) *Manager {
	return &Manager{api: api, notifier: notifier}
}

// State は現在の住所コレクションと選択状態のコピーを返します。
func (m *Manager) State() State {
	all := make([]Address, len(m.state.All))
	copy(all, m.state.All)
	return State{All: all, SelectedID: m.state.SelectedID}
}

// Draft は現在の下書きを返します。
func (m *Manager) Draft() Draft {
	return m.draft
}

// StartDraft は新規住所の入力を開始します。
func (m *Manager) StartDraft() {
	m.draft.IsEditing = true
}

// SetDraftText は入力中の住所テキストを更新します。
func (m *Manager) SetDraftText(text string) {
	m.draft = Draft{IsEditing: true, Text: text}
}

// CancelDraft は下書きを破棄して入力を終了します。
func (m *Manager) CancelDraft() {
	m.draft = Draft{}
}

// Refresh はサーバーから住所リストを取得してローカル状態を置き換えます。
// 失敗時は通知してローカル状態を変更しません。
func (m *Manager) Refresh(ctx context.Context, token string) ([]Address, error) {
	all, err := m.api.Addresses(ctx, token)
	if err != nil {
		m.notifier.Notify(notify.ErrorMessage(err, msgFetchAddressesFailed), notify.SeverityError)
		return nil, err
	}
	m.state.All = all
	return all, nil
}

// Add は下書きの住所テキストをサーバーに送信します。成功時はサーバーが返す
// リストでローカルを置き換え、下書きをクリアします。失敗時は通知のみ行い、
// ローカル状態は変更しません。
func (m *Manager) Add(ctx context.Context, token string) ([]Address, error) {
	all, err := m.api.AddAddress(ctx, token, m.draft.Text)
	if err != nil {
		m.notifier.Notify(notify.ErrorMessage(err, msgAddAddressFailed), notify.SeverityError)
		return nil, err
	}
	m.state.All = all
	m.draft = Draft{}
	return all, nil
}

// Delete は住所を ID で削除し、サーバーが返すリストでローカルを置き換えます。
// 削除した住所が選択中だった場合は選択を解除します。
func (m *Manager) Delete(ctx context.Context, token, addressID string) ([]Address, error) {
	all, err := m.api.DeleteAddress(ctx, token, addressID)
	if err != nil {
		m.notifier.Notify(notify.ErrorMessage(err, msgDeleteAddressFailed), notify.SeverityError)
		return nil, err
	}
	m.state.All = all
	if m.state.SelectedID == addressID {
		m.state.SelectedID = ""
	}
	return all, nil
}

// Select は配送先住所を選択します。addressID が現在表示中のリスト由来で
// あることは呼び出し側が保証します（存在チェックはしません）。
func (m *Manager) Select(addressID string) {
	m.state.SelectedID = addressID
}
