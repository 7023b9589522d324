// api/client.go

// Package api はリモートの Catalog / Cart / Order / Address / Auth サービスへの
// HTTP クライアントです。エンドポイントごとに型付きのリクエスト・レスポンスを
// 使い、レスポンスボディに含まれるサーバーメッセージを Error として返します。
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/veekshithcb/Qkart-Frontend/address"
	"github.com/veekshithcb/Qkart-Frontend/cart"
)

// ErrNoProductsFound は検索にヒットする商品が無かったことを表します。
// エラーというより「見つからなかった」状態で、呼び出し側は空の結果として扱います。
var ErrNoProductsFound = errors.New("api: no products found")

// Error は HTTP エラーステータスとともに返されたサーバーメッセージです。
// Message が空でなければユーザーにそのまま提示できます。
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: server returned %d", e.StatusCode)
}

// ServerMessage は notify.ErrorMessage から参照されます。
func (e *Error) ServerMessage() string { return e.Message }

// Client はストアフロント API へのクライアントです
type Client struct {
	endpoint string
	http     *http.Client
	tracer   trace.Tracer
}

// NewClient は API のベース URL（例: "http://localhost:8082"）を受け取ります。
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
		tracer:   otel.Tracer("storefront-api"),
	}
}

// do は 1 リクエストの送信・デコードをまとめた内部ヘルパーです。
// 4xx/5xx はボディの message を取り出して *Error として返します。
// ネットワーク障害は *Error にならないので、呼び出し側で汎用メッセージに落とします。
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	ctx, span := c.tracer.Start(ctx, method+" "+path)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.target", path),
	)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "api: encoding request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return errors.Wrap(err, "api: building request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-Id", uuid.New().String())

	resp, err := c.http.Do(req)
	if err != nil {
		span.SetAttributes(attribute.String("error", err.Error()))
		return errors.Wrap(err, "api: sending request")
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "api: reading response body")
	}

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb) // message が無いボディもある
		return &Error{StatusCode: resp.StatusCode, Message: eb.Message}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.Wrap(err, "api: decoding response body")
		}
	}
	return nil
}

// Products は GET /products で全商品リストを取得します。
func (c *Client) Products(ctx context.Context) ([]cart.Product, error) {
	var products []cart.Product
	if err := c.do(ctx, http.MethodGet, "/products", "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SearchProducts は GET /products/search で商品を検索します。
// ヒットしない場合（404）は ErrNoProductsFound を返します。
func (c *Client) SearchProducts(ctx context.Context, query string) ([]cart.Product, error) {
	var products []cart.Product
	path := "/products/search?value=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &products); err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, ErrNoProductsFound
		}
		return nil, err
	}
	return products, nil
}

// FetchCart は GET /cart でログインユーザーのカート行を取得します。
func (c *Client) FetchCart(ctx context.Context, token string) ([]cart.Row, error) {
	var rows []cart.Row
	if err := c.do(ctx, http.MethodGet, "/cart", token, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// AddToCart は POST /cart でカート行を追加・更新します。qty が 0 になった行は
// サーバー側で削除されます。更新後のカート行全体が返ります。
func (c *Client) AddToCart(ctx context.Context, token, productID string, qty int) ([]cart.Row, error) {
	var rows []cart.Row
	body := CartItemRequest{ProductID: productID, Qty: qty}
	if err := c.do(ctx, http.MethodPost, "/cart", token, body, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Addresses は GET /user/addresses で住所リストを取得します。
func (c *Client) Addresses(ctx context.Context, token string) ([]address.Address, error) {
	var all []address.Address
	if err := c.do(ctx, http.MethodGet, "/user/addresses", token, nil, &all); err != nil {
		return nil, err
	}
	return all, nil
}

// AddAddress は POST /user/addresses で新しい住所を登録し、サーバーが返す
// 住所リスト全体を返します。
func (c *Client) AddAddress(ctx context.Context, token, text string) ([]address.Address, error) {
	var all []address.Address
	if err := c.do(ctx, http.MethodPost, "/user/addresses", token, AddAddressRequest{Address: text}, &all); err != nil {
		return nil, err
	}
	return all, nil
}

// DeleteAddress は DELETE /user/addresses/{id} で住所を削除し、サーバーが返す
// 住所リスト全体を返します。
func (c *Client) DeleteAddress(ctx context.Context, token, addressID string) ([]address.Address, error) {
	var all []address.Address
	if err := c.do(ctx, http.MethodDelete, "/user/addresses/"+url.PathEscape(addressID), token, nil, &all); err != nil {
		return nil, err
	}
	return all, nil
}

// PlaceOrder は POST /cart/checkout で注文を確定します。
// サーバーが success=false を返した場合も *Error として扱います。
func (c *Client) PlaceOrder(ctx context.Context, token, addressID string) error {
	var out CheckoutResponse
	if err := c.do(ctx, http.MethodPost, "/cart/checkout", token, CheckoutRequest{AddressID: addressID}, &out); err != nil {
		return err
	}
	if !out.Success {
		return &Error{StatusCode: http.StatusOK, Message: out.Message}
	}
	return nil
}

// Login は POST /auth/login でログインします。
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", AuthRequest{Username: username, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register は POST /auth/register で新規ユーザーを登録します。
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", AuthRequest{Username: username, Password: password}, nil)
}
