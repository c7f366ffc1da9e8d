package data

import (
	"context"

	"kassa/internal/pos"

	"go.uber.org/zap"
)

// Gateway is the single write path of the application. Every mutation is
// write-then-resync: the request completes first, then the whole snapshot
// is refetched, and the operation only counts as done once that refresh
// succeeds. Overlapping mutations are not serialized; the snapshot after
// both equals whichever refresh lands last (single-terminal usage).
type Gateway struct {
	client *pos.Client
	store  *Store
	logger *zap.Logger
}

func NewGateway(client *pos.Client, store *Store, logger *zap.Logger) *Gateway {
	return &Gateway{
		client: client,
		store:  store,
		logger: logger.Named("gateway"),
	}
}

// writeThenRefresh runs one write call and follows it with a full resync.
// The refresh is never issued before the write has finished.
func writeThenRefresh[T any](ctx context.Context, g *Gateway, op string, write func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	out, err := write(ctx)
	if err != nil {
		return zero, err
	}
	if err := g.store.RefreshAll(ctx); err != nil {
		return zero, err
	}
	g.logger.Info("mutation applied", zap.String("op", op))
	return out, nil
}

// Collection is a typed repository over one backend collection. The path
// segment is fixed at construction, so there is no runtime name dispatch
// beyond the handful of statically declared instances below.
type Collection[T any] struct {
	name string
	g    *Gateway
}

// Create posts a new record and returns it as the server reports it;
// server-assigned fields (id, timestamps) come from the response, not from
// the payload.
func (c Collection[T]) Create(ctx context.Context, payload T) (T, error) {
	return writeThenRefresh(ctx, c.g, "create "+c.name, func(ctx context.Context) (T, error) {
		var out T
		err := c.g.client.Create(ctx, c.name, payload, &out)
		return out, err
	})
}

// Update sends a partial update and returns the merged record.
func (c Collection[T]) Update(ctx context.Context, id string, payload T) (T, error) {
	return writeThenRefresh(ctx, c.g, "update "+c.name, func(ctx context.Context) (T, error) {
		var out T
		err := c.g.client.Update(ctx, c.name, id, payload, &out)
		return out, err
	})
}

func (c Collection[T]) Delete(ctx context.Context, id string) error {
	_, err := writeThenRefresh(ctx, c.g, "delete "+c.name, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.g.client.Delete(ctx, c.name, id)
	})
	return err
}

func (g *Gateway) Employees() Collection[pos.Employee] {
	return Collection[pos.Employee]{name: "employees", g: g}
}

func (g *Gateway) Roles() Collection[pos.Role] {
	return Collection[pos.Role]{name: "roles", g: g}
}

func (g *Gateway) Products() Collection[pos.Product] {
	return Collection[pos.Product]{name: "products", g: g}
}

func (g *Gateway) Customers() Collection[pos.Customer] {
	return Collection[pos.Customer]{name: "customers", g: g}
}

func (g *Gateway) Suppliers() Collection[pos.Supplier] {
	return Collection[pos.Supplier]{name: "suppliers", g: g}
}

func (g *Gateway) Units() Collection[pos.Unit] {
	return Collection[pos.Unit]{name: "units", g: g}
}

// CreateSale records a sale. Server side this decrements stock and, for
// DEBT payments, raises the customer's debt; the refetch brings all of that
// back in one piece.
func (g *Gateway) CreateSale(ctx context.Context, sale pos.NewSale) (pos.Sale, error) {
	return writeThenRefresh(ctx, g, "create sale", func(ctx context.Context) (pos.Sale, error) {
		return g.client.CreateSale(ctx, sale)
	})
}

// AddGoodsReceipt records an incoming delivery; stock increments happen
// server side.
func (g *Gateway) AddGoodsReceipt(ctx context.Context, receipt pos.NewGoodsReceipt) (pos.GoodsReceipt, error) {
	return writeThenRefresh(ctx, g, "create goods receipt", func(ctx context.Context) (pos.GoodsReceipt, error) {
		return g.client.CreateGoodsReceipt(ctx, receipt)
	})
}

// PayDebt records a debt payment against a customer.
func (g *Gateway) PayDebt(ctx context.Context, customerID string, amount float64, paymentType pos.PaymentType) error {
	_, err := writeThenRefresh(ctx, g, "debt payment", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, g.client.RecordDebtPayment(ctx, customerID, amount, paymentType)
	})
	return err
}

// UpdateSettings partially updates the settings singleton.
func (g *Gateway) UpdateSettings(ctx context.Context, patch map[string]any) (pos.StoreSettings, error) {
	return writeThenRefresh(ctx, g, "update settings", func(ctx context.Context) (pos.StoreSettings, error) {
		return g.client.UpdateSettings(ctx, patch)
	})
}
