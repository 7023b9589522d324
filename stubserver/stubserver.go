// stubserver/stubserver.go

// Package stubserver はストアフロント API のインメモリ実装です。
// 本物のバックエンドは外部サービスですが、テストとローカル開発では
// この代役をドキュメント化された契約どおりに立てて使います。
package stubserver

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/veekshithcb/Qkart-Frontend/address"
	"github.com/veekshithcb/Qkart-Frontend/cart"
)

type user struct {
	password string
	balance  float64
}

// Server はユーザー・カート・住所・商品をメモリ上に保持する疑似バックエンドです。
type Server struct {
	mu        sync.Mutex
	products  []cart.Product
	users     map[string]*user
	tokens    map[string]string // token -> username
	carts     map[string][]cart.Row
	addresses map[string][]address.Address
	router    *mux.Router
}

// New は商品カタログを受け取って疑似バックエンドを作ります。
func New(products []cart.Product) *Server {
	s := &Server{
		products:  products,
		users:     make(map[string]*user),
		tokens:    make(map[string]string),
		carts:     make(map[string][]cart.Row),
		addresses: make(map[string][]address.Address),
	}

	r := mux.NewRouter()
	r.HandleFunc("/products", s.handleProducts).Methods(http.MethodGet)
	r.HandleFunc("/products/search", s.handleSearch).Methods(http.MethodGet)
	r.HandleFunc("/cart", s.auth(s.handleGetCart)).Methods(http.MethodGet)
	r.HandleFunc("/cart", s.auth(s.handlePostCart)).Methods(http.MethodPost)
	r.HandleFunc("/cart/checkout", s.auth(s.handleCheckout)).Methods(http.MethodPost)
	r.HandleFunc("/user/addresses", s.auth(s.handleGetAddresses)).Methods(http.MethodGet)
	r.HandleFunc("/user/addresses", s.auth(s.handleAddAddress)).Methods(http.MethodPost)
	r.HandleFunc("/user/addresses/{id}", s.auth(s.handleDeleteAddress)).Methods(http.MethodDelete)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	s.router = r
	return s
}

// Router は HTTP ハンドラを返します。httptest.NewServer にそのまま渡せます。
func (s *Server) Router() http.Handler {
	return s.router
}

// SeedUser はユーザーを登録 API を経由せずに直接投入します。
func (s *Server) SeedUser(username, password string, balance float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = &user{password: password, balance: balance}
}

// UserBalance はサーバー側のウォレット残高を返します（検証用）。
func (s *Server) UserBalance(username string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[username]; ok {
		return u.balance
	}
	return 0
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("stubserver: encoding response: %v", err)
	}
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"success": false, "message": message})
}

// auth は Bearer トークンを検証し、ユーザー名をハンドラに渡します。
func (s *Server) auth(next func(w http.ResponseWriter, r *http.Request, username string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		s.mu.Lock()
		username, ok := s.tokens[token]
		s.mu.Unlock()
		if header == "" || token == header || !ok {
			writeFailure(w, http.StatusUnauthorized, "Protected route, Oauth2 Bearer token not found")
			return
		}
		next(w, r, username)
	}
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.products)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("value")
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]cart.Product, 0)
	for _, p := range s.products {
		if containsFold(p.Name, value) || containsFold(p.Category, value) {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		writeFailure(w, http.StatusNotFound, "Products not found")
		return
	}
	writeJSON(w, http.StatusOK, matched)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.rowsLocked(username))
}

func (s *Server) handlePostCart(w http.ResponseWriter, r *http.Request, username string) {
	var req struct {
		ProductID string `json:"productId"`
		Qty       int    `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	known := false
	for _, p := range s.products {
		if p.ID == req.ProductID {
			known = true
			break
		}
	}
	if !known {
		writeFailure(w, http.StatusNotFound, "Product doesn't exist")
		return
	}

	rows := s.rowsLocked(username)
	next := make([]cart.Row, 0, len(rows)+1)
	found := false
	for _, row := range rows {
		if row.ProductID == req.ProductID {
			found = true
			if req.Qty > 0 {
				next = append(next, cart.Row{ProductID: req.ProductID, Qty: req.Qty})
			}
			continue
		}
		next = append(next, row)
	}
	if !found && req.Qty > 0 {
		next = append(next, cart.Row{ProductID: req.ProductID, Qty: req.Qty})
	}
	s.carts[username] = next
	writeJSON(w, http.StatusOK, next)
}

func (s *Server) rowsLocked(username string) []cart.Row {
	rows := s.carts[username]
	if rows == nil {
		rows = []cart.Row{}
	}
	return rows
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request, username string) {
	var req struct {
		AddressID string `json:"addressId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.rowsLocked(username)
	if len(rows) == 0 {
		writeFailure(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	addressOK := false
	for _, a := range s.addresses[username] {
		if a.ID == req.AddressID {
			addressOK = true
			break
		}
	}
	if !addressOK {
		writeFailure(w, http.StatusBadRequest, "Bad address specified")
		return
	}

	total := cart.TotalValue(cart.ResolveLineItems(rows, s.products))
	u := s.users[username]
	if u.balance < total {
		writeFailure(w, http.StatusBadRequest, "Wallet balance not sufficient to place order")
		return
	}

	u.balance -= total
	s.carts[username] = []cart.Row{}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (s *Server) handleGetAddresses(w http.ResponseWriter, r *http.Request, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.addressesLocked(username))
}

func (s *Server) handleAddAddress(w http.ResponseWriter, r *http.Request, username string) {
	var req struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Address) < 20 {
		writeFailure(w, http.StatusBadRequest, "Address shouldn't be less than 20 characters")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.addresses[username] = append(s.addresses[username], address.Address{
		ID:   uuid.New().String(),
		Text: req.Address,
	})
	writeJSON(w, http.StatusOK, s.addressesLocked(username))
}

func (s *Server) handleDeleteAddress(w http.ResponseWriter, r *http.Request, username string) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.addresses[username]
	next := make([]address.Address, 0, len(all))
	for _, a := range all {
		if a.ID != id {
			next = append(next, a)
		}
	}
	s.addresses[username] = next
	writeJSON(w, http.StatusOK, next)
}

func (s *Server) addressesLocked(username string) []address.Address {
	all := s.addresses[username]
	if all == nil {
		all = []address.Address{}
	}
	return all
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[req.Username]
	if !ok {
		writeFailure(w, http.StatusBadRequest, "Username does not exist")
		return
	}
	if u.password != req.Password {
		writeFailure(w, http.StatusBadRequest, "Password is incorrect")
		return
	}

	token := uuid.New().String()
	s.tokens[token] = req.Username
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"token":    token,
		"username": req.Username,
		"balance":  u.balance,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.Username]; exists {
		writeFailure(w, http.StatusBadRequest, "Username is already taken")
		return
	}
	// 新規ユーザーの初期残高は 5000
	s.users[req.Username] = &user{password: req.Password, balance: 5000}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true})
}
