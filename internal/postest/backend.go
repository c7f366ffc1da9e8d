// Package postest provides an in-memory fake of the POS backend for tests.
// It mimics the server-side effects the real backend performs on writes:
// id/date assignment, stock decrements, debt bookkeeping and the embedded
// seller snapshot on sales.
package postest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"kassa/internal/pos"

	"github.com/google/uuid"
)

type Backend struct {
	mu sync.Mutex

	// PIN and Token drive /auth/login/ and bearer checks.
	PIN   string
	Token string

	Me   pos.Employee
	Data pos.InitialData

	// FailInitial / FailMe force 500 on the snapshot and identity fetches.
	FailInitial bool
	FailMe      bool
	// RejectWrites forces 400 on every mutating request.
	RejectWrites bool

	requests []string
}

func New() *Backend {
	return &Backend{
		PIN:   "1234",
		Token: "test-token",
	}
}

// Requests lists every call seen so far as "METHOD path".
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.requests))
	copy(out, b.requests)
	return out
}

func (b *Backend) ResetRequests() {
	b.mu.Lock()
	b.requests = nil
	b.mu.Unlock()
}

func (b *Backend) Server() *httptest.Server {
	return httptest.NewServer(b)
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.requests = append(b.requests, r.Method+" "+r.URL.Path)

	if r.Method == http.MethodPost && r.URL.Path == "/auth/login/" {
		b.handleLogin(w, r)
		return
	}

	if r.Header.Get("Authorization") != "Bearer "+b.Token {
		http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
		return
	}

	if r.Method != http.MethodGet && b.RejectWrites {
		http.Error(w, `{"error":"rejected"}`, http.StatusBadRequest)
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/data/initial/":
		if b.FailInitial {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
			return
		}
		writeJSON(w, b.Data)
	case r.Method == http.MethodGet && r.URL.Path == "/auth/me/":
		if b.FailMe {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
			return
		}
		writeJSON(w, b.Me)
	case r.Method == http.MethodPost && r.URL.Path == "/sales/":
		b.handleCreateSale(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/goods-receipts/":
		b.handleCreateGoodsReceipt(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/debt-payments/":
		b.handleDebtPayment(w, r)
	case r.Method == http.MethodPut && r.URL.Path == "/settings/":
		b.handleUpdateSettings(w, r)
	default:
		b.handleCollection(w, r)
	}
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PIN != b.PIN {
		http.Error(w, `{"error":"wrong pin"}`, http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]string{"token": b.Token})
}

func (b *Backend) handleCreateSale(w http.ResponseWriter, r *http.Request) {
	var req pos.NewSale
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad payload"}`, http.StatusBadRequest)
		return
	}

	subtotal := 0.0
	for _, item := range req.Items {
		subtotal += item.Quantity * item.Price
		for i := range b.Data.Products {
			if b.Data.Products[i].ID == item.ProductID {
				b.Data.Products[i].Stock -= item.Quantity
			}
		}
	}

	seller := b.Me
	sale := pos.Sale{
		ID:         uuid.NewString(),
		Date:       time.Now().UTC().Format(time.RFC3339),
		Items:      req.Items,
		Subtotal:   subtotal,
		Discount:   req.Discount,
		Total:      subtotal - req.Discount,
		Payments:   req.Payments,
		CustomerID: req.CustomerID,
		Seller:     &seller,
	}
	if req.CustomerID != "" {
		for i := range b.Data.Customers {
			if b.Data.Customers[i].ID == req.CustomerID {
				customer := b.Data.Customers[i]
				sale.Customer = &customer
			}
		}
	}
	for _, p := range req.Payments {
		if p.Type != pos.PaymentDebt {
			continue
		}
		for i := range b.Data.Customers {
			if b.Data.Customers[i].ID == req.CustomerID {
				b.Data.Customers[i].Debt += p.Amount
			}
		}
	}

	b.Data.Sales = append(b.Data.Sales, sale)
	writeJSON(w, sale)
}

func (b *Backend) handleCreateGoodsReceipt(w http.ResponseWriter, r *http.Request) {
	var req pos.NewGoodsReceipt
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad payload"}`, http.StatusBadRequest)
		return
	}

	receipt := pos.GoodsReceipt{
		ID:         uuid.NewString(),
		Date:       time.Now().UTC().Format(time.RFC3339),
		SupplierID: req.SupplierID,
		Items:      req.Items,
	}
	for i := range b.Data.Suppliers {
		if b.Data.Suppliers[i].ID == req.SupplierID {
			supplier := b.Data.Suppliers[i]
			receipt.Supplier = &supplier
		}
	}
	for _, item := range req.Items {
		for i := range b.Data.Products {
			if b.Data.Products[i].ID == item.ProductID {
				b.Data.Products[i].Stock += item.Quantity
			}
		}
	}

	b.Data.GoodsReceipts = append(b.Data.GoodsReceipts, receipt)
	writeJSON(w, receipt)
}

func (b *Backend) handleDebtPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID  string          `json:"customerId"`
		Amount      float64         `json:"amount"`
		PaymentType pos.PaymentType `json:"paymentType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad payload"}`, http.StatusBadRequest)
		return
	}

	payment := pos.DebtPayment{
		ID:          uuid.NewString(),
		CustomerID:  req.CustomerID,
		Amount:      req.Amount,
		PaymentType: req.PaymentType,
		Date:        time.Now().UTC().Format(time.RFC3339),
	}
	for i := range b.Data.Customers {
		if b.Data.Customers[i].ID == req.CustomerID {
			b.Data.Customers[i].Debt -= req.Amount
		}
	}

	b.Data.DebtPayments = append(b.Data.DebtPayments, payment)
	writeJSON(w, payment)
}

func (b *Backend) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	if b.Data.Settings == nil {
		b.Data.Settings = &pos.StoreSettings{}
	}
	current, _ := json.Marshal(b.Data.Settings)
	merged := map[string]any{}
	_ = json.Unmarshal(current, &merged)

	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, `{"error":"bad payload"}`, http.StatusBadRequest)
		return
	}
	for k, v := range patch {
		merged[k] = v
	}

	raw, _ := json.Marshal(merged)
	var updated pos.StoreSettings
	if err := json.Unmarshal(raw, &updated); err != nil {
		http.Error(w, `{"error":"bad patch"}`, http.StatusBadRequest)
		return
	}
	b.Data.Settings = &updated
	writeJSON(w, updated)
}

// handleCollection covers the generic CRUD endpoints for products, units,
// customers and employees, which is as far as the tests need to go.
func (b *Backend) handleCollection(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	collection := parts[0]
	id := ""
	if len(parts) > 1 {
		id = parts[1]
	}

	switch collection {
	case "products":
		crud(w, r, id, &b.Data.Products, func(p *pos.Product) *string { return &p.ID })
	case "units":
		crud(w, r, id, &b.Data.Units, func(u *pos.Unit) *string { return &u.ID })
	case "customers":
		crud(w, r, id, &b.Data.Customers, func(c *pos.Customer) *string { return &c.ID })
	case "employees":
		crud(w, r, id, &b.Data.Employees, func(e *pos.Employee) *string { return &e.ID })
	default:
		http.NotFound(w, r)
	}
}

func crud[T any](w http.ResponseWriter, r *http.Request, id string, items *[]T, idOf func(*T) *string) {
	switch r.Method {
	case http.MethodPost:
		var record T
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			http.Error(w, `{"error":"bad payload"}`, http.StatusBadRequest)
			return
		}
		*idOf(&record) = uuid.NewString()
		*items = append(*items, record)
		writeJSON(w, record)
	case http.MethodPut:
		var record T
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			http.Error(w, `{"error":"bad payload"}`, http.StatusBadRequest)
			return
		}
		for i := range *items {
			if *idOf(&(*items)[i]) == id {
				*idOf(&record) = id
				(*items)[i] = record
				writeJSON(w, record)
				return
			}
		}
		http.NotFound(w, r)
	case http.MethodDelete:
		for i := range *items {
			if *idOf(&(*items)[i]) == id {
				*items = append((*items)[:i], (*items)[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		http.NotFound(w, r)
	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
