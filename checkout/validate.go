// checkout/validate.go

package checkout

import (
	"github.com/veekshithcb/Qkart-Frontend/address"
	"github.com/veekshithcb/Qkart-Frontend/cart"
)

// FailureReason はチェックアウト前提条件の不成立理由です。
type FailureReason string

const (
	ReasonInsufficientBalance FailureReason = "INSUFFICIENT_BALANCE"
	ReasonNoAddress           FailureReason = "NO_ADDRESS"
	ReasonNoAddressSelected   FailureReason = "NO_ADDRESS_SELECTED"
)

// Message は理由に対応するユーザー向けの警告メッセージを返します。
func (r FailureReason) Message() string {
	switch r {
	case ReasonInsufficientBalance:
		return "You do not have enough balance in your wallet for this purchase"
	case ReasonNoAddress:
		return "Please add a new address before proceeding."
	case ReasonNoAddressSelected:
		return "Please select one shipping address to proceed."
	}
	return ""
}

// ValidationResult は Validate の判定結果です。OK=false のとき Reason が入ります。
type ValidationResult struct {
	OK     bool
	Reason FailureReason
}

// Validate はチェックアウトの前提条件を固定順で検査し、最初に不成立となった
// 理由だけを返します。警告として表示されるのは常に 1 件です。
//
//  1. カートの合計金額がウォレット残高を超えていないこと
//  2. 住所が 1 件以上登録されていること
//  3. 配送先住所が選択されていること
//
// ネットワークを呼ばない純粋な判定で、UI が注文ボタンの活性制御にも使います。
func Validate(rows []cart.Row, catalog []cart.Product, addrs address.State, walletBalance float64) ValidationResult {
	items := cart.ResolveLineItems(rows, catalog)
	if cart.TotalValue(items) > walletBalance {
		return ValidationResult{Reason: ReasonInsufficientBalance}
	}
	if len(addrs.All) == 0 {
		return ValidationResult{Reason: ReasonNoAddress}
	}
	if addrs.SelectedID == "" {
		return ValidationResult{Reason: ReasonNoAddressSelected}
	}
	return ValidationResult{OK: true}
}
