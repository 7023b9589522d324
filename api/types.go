// api/types.go

package api

// 各エンドポイントのリクエスト・レスポンスを明示的な型で定義します。

// CartItemRequest は POST /cart のリクエストボディです。
type CartItemRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// AddAddressRequest は POST /user/addresses のリクエストボディです。
type AddAddressRequest struct {
	Address string `json:"address"`
}

// CheckoutRequest は POST /cart/checkout のリクエストボディです。
type CheckoutRequest struct {
	AddressID string `json:"addressId"`
}

// CheckoutResponse は POST /cart/checkout のレスポンスです。
// 失敗時は success=false と message が返ります。
type CheckoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// AuthRequest は POST /auth/login と POST /auth/register のリクエストボディです。
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse は POST /auth/login の成功レスポンスです。
type LoginResponse struct {
	Success  bool    `json:"success"`
	Token    string  `json:"token"`
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
}

// errorBody はエラーレスポンス共通の形です。
type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
