package data

import (
	"context"
	"sync"

	"kassa/internal/pos"

	"go.uber.org/zap"
)

// Store holds the in-memory copy of every domain collection plus the
// settings singleton and the authenticated identity. It is only ever
// replaced wholesale: RefreshAll fetches the full snapshot and the current
// identity, and applies both in one swap or not at all. There is no partial
// invalidation; the collections carry denormalized cross-references (a
// sale's embedded seller, resolved product names) that are cheap to refetch
// and error-prone to patch in place.
type Store struct {
	client *pos.Client
	logger *zap.Logger

	mu      sync.RWMutex
	snap    pos.InitialData
	current *pos.Employee
}

func NewStore(client *pos.Client, logger *zap.Logger) *Store {
	return &Store{
		client: client,
		logger: logger.Named("store"),
	}
}

// RefreshAll discards and replaces the whole snapshot from a fresh fetch.
// Two requests: the full snapshot, then the identity behind the token. If
// either fails nothing is applied and the previous snapshot stays visible;
// the caller decides whether that failure forces a logout.
func (s *Store) RefreshAll(ctx context.Context) error {
	snap, err := s.client.FetchInitial(ctx)
	if err != nil {
		return err
	}
	me, err := s.client.Me(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snap = snap
	s.current = &me
	s.mu.Unlock()

	s.logger.Debug("snapshot replaced",
		zap.Int("products", len(snap.Products)),
		zap.Int("sales", len(snap.Sales)),
		zap.Int("customers", len(snap.Customers)),
	)
	return nil
}

// Reset empties the snapshot and clears the identity.
func (s *Store) Reset() {
	s.mu.Lock()
	s.snap = pos.InitialData{}
	s.current = nil
	s.mu.Unlock()
}

// CurrentUser is the authenticated employee, role resolved, or nil when no
// session is active. Never partially populated: it is set only together
// with a successful full refresh.
func (s *Store) CurrentUser() *pos.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) Employees() []pos.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Employees
}

func (s *Store) Roles() []pos.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Roles
}

func (s *Store) Products() []pos.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Products
}

func (s *Store) Customers() []pos.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Customers
}

func (s *Store) Suppliers() []pos.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Suppliers
}

func (s *Store) Sales() []pos.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Sales
}

func (s *Store) DebtPayments() []pos.DebtPayment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.DebtPayments
}

func (s *Store) GoodsReceipts() []pos.GoodsReceipt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.GoodsReceipts
}

func (s *Store) Units() []pos.Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Units
}

func (s *Store) Settings() *pos.StoreSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Settings
}

// ProductByID resolves a product from the snapshot.
func (s *Store) ProductByID(id string) (pos.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.snap.Products {
		if p.ID == id {
			return p, true
		}
	}
	return pos.Product{}, false
}

// SaleByID resolves a sale from the snapshot.
func (s *Store) SaleByID(id string) (pos.Sale, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sale := range s.snap.Sales {
		if sale.ID == id {
			return sale, true
		}
	}
	return pos.Sale{}, false
}
