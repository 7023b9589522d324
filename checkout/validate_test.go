// checkout/validate_test.go

package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veekshithcb/Qkart-Frontend/address"
	"github.com/veekshithcb/Qkart-Frontend/cart"
)

var catalog = []cart.Product{
	{ID: "p1", Name: "iPhone XR", Category: "Phones", Cost: 100, Rating: 4},
	{ID: "p2", Name: "Basketball", Category: "Sports", Cost: 50, Rating: 5},
}

func oneAddress(selected string) address.State {
	return address.State{
		All:        []address.Address{{ID: "a1", Text: "Test address\n12th street, Mumbai"}},
		SelectedID: selected,
	}
}

// TestValidate_Ordering runs the fixed-order precondition checks.
func TestValidate_Ordering(t *testing.T) {
	t.Parallel()

	rows := []cart.Row{{ProductID: "p1", Qty: 2}} // total 200

	tests := []struct {
		name    string
		addrs   address.State
		balance float64
		ok      bool
		reason  FailureReason
	}{
		{
			name:    "insufficient balance",
			addrs:   oneAddress("a1"),
			balance: 150,
			reason:  ReasonInsufficientBalance,
		},
		{
			name:    "no addresses",
			addrs:   address.State{},
			balance: 250,
			reason:  ReasonNoAddress,
		},
		{
			name:    "no address selected",
			addrs:   oneAddress(""),
			balance: 250,
			reason:  ReasonNoAddressSelected,
		},
		{
			name:    "all satisfied",
			addrs:   oneAddress("a1"),
			balance: 250,
			ok:      true,
		},
		{
			// 残高不足と住所なしが同時に成立する場合、先に検査される残高不足だけを報告する
			name:    "balance check wins over missing addresses",
			addrs:   address.State{},
			balance: 150,
			reason:  ReasonInsufficientBalance,
		},
		{
			name:    "exact balance passes",
			addrs:   oneAddress("a1"),
			balance: 200,
			ok:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(rows, catalog, tt.addrs, tt.balance)
			assert.Equal(t, tt.ok, result.OK)
			assert.Equal(t, tt.reason, result.Reason)
		})
	}
}

// TestValidate_EmptyCartPasses verifies an empty cart never trips the balance check.
func TestValidate_EmptyCartPasses(t *testing.T) {
	t.Parallel()

	result := Validate(nil, catalog, oneAddress("a1"), 0)
	assert.True(t, result.OK)
}

// TestFailureReason_Messages pins the user-facing warning texts.
func TestFailureReason_Messages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "You do not have enough balance in your wallet for this purchase", ReasonInsufficientBalance.Message())
	assert.Equal(t, "Please add a new address before proceeding.", ReasonNoAddress.Message())
	assert.Equal(t, "Please select one shipping address to proceed.", ReasonNoAddressSelected.Message())
}
