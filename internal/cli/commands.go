package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"kassa/internal/history"
	"kassa/internal/pos"
	"kassa/internal/receipt"

	"go.uber.org/zap"
)

const commandHelp = `  login <pin>                          authenticate with a PIN
  logout                               end the session
  me                                   show the current employee
  products | customers | suppliers     list a collection
  units | employees | roles
  sales [from=YYYY-MM-DD] [to=YYYY-MM-DD] [customer=ID] [seller=ID]
  receipt <sale-id>                    render a sale as a receipt
  sell <product-id> <qty> [customer=ID] [pay=CASH|CARD|TRANSFER|DEBT]
  debt <customer-id> <amount> [CASH|CARD|TRANSFER]
  receive <supplier-id> <product-id> <qty> [cost]
  settings [<key> <value>]             show or patch store settings
`

var errNeedLogin = errors.New("not logged in")

func (r *Runner) runCommand(ctx context.Context, args []string) error {
	cmd := strings.ToLower(args[0])
	rest := args[1:]
	r.logger.Info("command", zap.String("name", cmd), zap.Int("args", len(rest)))

	switch cmd {
	case "login":
		if len(rest) != 1 {
			return errors.New("usage: login <pin>")
		}
		if !r.manager.Login(ctx, rest[0]) {
			fmt.Fprintln(os.Stdout, "Kirish rad etildi.")
			return nil
		}
		if user := r.manager.CurrentUser(); user != nil {
			fmt.Fprintf(os.Stdout, "Xush kelibsiz, %s!\n", user.Name)
		}
		return nil
	case "logout":
		r.manager.Logout()
		fmt.Fprintln(os.Stdout, "Sessiya yakunlandi.")
		return nil
	case "me":
		user := r.manager.CurrentUser()
		if user == nil {
			return errNeedLogin
		}
		return r.write(*user)
	case "products":
		return r.write(r.store.Products())
	case "customers":
		return r.write(r.store.Customers())
	case "suppliers":
		return r.write(r.store.Suppliers())
	case "units":
		return r.write(r.store.Units())
	case "employees":
		if !r.manager.HasPermission(pos.PermManageUsers) {
			return errPermission(pos.PermManageUsers)
		}
		return r.write(r.store.Employees())
	case "roles":
		if !r.manager.HasPermission(pos.PermManageUsers) {
			return errPermission(pos.PermManageUsers)
		}
		return r.write(r.store.Roles())
	case "sales":
		return r.runSales(rest)
	case "receipt":
		if len(rest) != 1 {
			return errors.New("usage: receipt <sale-id>")
		}
		return r.runReceipt(rest[0])
	case "sell":
		return r.runSell(ctx, rest)
	case "debt":
		return r.runDebt(ctx, rest)
	case "receive":
		return r.runReceive(ctx, rest)
	case "settings":
		return r.runSettings(ctx, rest)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func (r *Runner) runSales(args []string) error {
	filter := history.Filter{}
	if r.options.From != "" {
		from, err := parseDay(r.options.From)
		if err != nil {
			return fmt.Errorf("invalid --from date: %w", err)
		}
		filter.From = from
	}
	if r.options.To != "" {
		to, err := parseDay(r.options.To)
		if err != nil {
			return fmt.Errorf("invalid --to date: %w", err)
		}
		filter.To = to
	}

	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			return fmt.Errorf("unexpected argument: %s", arg)
		}
		switch key {
		case "from":
			from, err := parseDay(value)
			if err != nil {
				return fmt.Errorf("invalid from date: %w", err)
			}
			filter.From = from
		case "to":
			to, err := parseDay(value)
			if err != nil {
				return fmt.Errorf("invalid to date: %w", err)
			}
			filter.To = to
		case "customer":
			filter.CustomerID = value
		case "seller":
			filter.SellerID = value
		default:
			return fmt.Errorf("unknown filter: %s", key)
		}
	}

	return r.writeSales(history.Apply(r.store.Sales(), filter))
}

func (r *Runner) runReceipt(saleID string) error {
	sale, ok := r.store.SaleByID(saleID)
	if !ok {
		return fmt.Errorf("sale %s not found", saleID)
	}
	settings := r.store.Settings()
	if settings == nil {
		return errNeedLogin
	}
	fmt.Fprint(os.Stdout, receipt.Render(sale, r.store.Products(), *settings))
	return nil
}

func (r *Runner) runSell(ctx context.Context, args []string) error {
	if !r.manager.HasPermission(pos.PermSell) {
		return errPermission(pos.PermSell)
	}
	if len(args) < 2 {
		return errors.New("usage: sell <product-id> <qty> [customer=ID] [pay=CASH]")
	}

	product, ok := r.store.ProductByID(args[0])
	if !ok {
		return fmt.Errorf("product %s not found", args[0])
	}
	qty, err := strconv.ParseFloat(args[1], 64)
	if err != nil || qty <= 0 {
		return fmt.Errorf("invalid quantity: %s", args[1])
	}

	payType := pos.PaymentCash
	customerID := ""
	for _, arg := range args[2:] {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			return fmt.Errorf("unexpected argument: %s", arg)
		}
		switch key {
		case "customer":
			customerID = value
		case "pay":
			payType = pos.PaymentType(strings.ToUpper(value))
		default:
			return fmt.Errorf("unknown option: %s", key)
		}
	}
	if payType == pos.PaymentDebt && customerID == "" {
		return errors.New("debt payment requires customer=ID")
	}

	total := product.Price * qty
	sale := pos.NewSale{
		Items:      []pos.SaleItem{{ProductID: product.ID, Quantity: qty, Price: product.Price}},
		Subtotal:   total,
		Discount:   0,
		Total:      total,
		Payments:   []pos.Payment{{Type: payType, Amount: total}},
		CustomerID: customerID,
	}

	created, err := r.gateway.CreateSale(ctx, sale)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Savdo saqlandi: chek #%s, jami %.0f\n", receipt.ShortID(created.ID), created.Total)
	return r.write(created)
}

func (r *Runner) runDebt(ctx context.Context, args []string) error {
	if !r.manager.HasPermission(pos.PermManageCustomers) {
		return errPermission(pos.PermManageCustomers)
	}
	if len(args) < 2 {
		return errors.New("usage: debt <customer-id> <amount> [CASH|CARD|TRANSFER]")
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil || amount <= 0 {
		return fmt.Errorf("invalid amount: %s", args[1])
	}
	payType := pos.PaymentCash
	if len(args) > 2 {
		payType = pos.PaymentType(strings.ToUpper(args[2]))
	}

	if err := r.gateway.PayDebt(ctx, args[0], amount, payType); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "Qarz to'lovi qabul qilindi.")
	return nil
}

func (r *Runner) runReceive(ctx context.Context, args []string) error {
	if !r.manager.HasPermission(pos.PermManageProducts) {
		return errPermission(pos.PermManageProducts)
	}
	if len(args) < 3 {
		return errors.New("usage: receive <supplier-id> <product-id> <qty> [cost]")
	}
	qty, err := strconv.ParseFloat(args[2], 64)
	if err != nil || qty <= 0 {
		return fmt.Errorf("invalid quantity: %s", args[2])
	}
	cost := 0.0
	if len(args) > 3 {
		cost, err = strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("invalid cost: %s", args[3])
		}
	}

	created, err := r.gateway.AddGoodsReceipt(ctx, pos.NewGoodsReceipt{
		SupplierID: args[0],
		Items:      []pos.GoodsReceiptItem{{ProductID: args[1], Quantity: qty, CostPrice: cost}},
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "Kirim saqlandi.")
	return r.write(created)
}

func (r *Runner) runSettings(ctx context.Context, args []string) error {
	if len(args) == 0 {
		settings := r.store.Settings()
		if settings == nil {
			return errNeedLogin
		}
		return r.write(*settings)
	}
	if len(args) != 2 {
		return errors.New("usage: settings [<key> <value>]")
	}
	if !r.manager.HasPermission(pos.PermManageSettings) {
		return errPermission(pos.PermManageSettings)
	}

	updated, err := r.gateway.UpdateSettings(ctx, map[string]any{args[0]: args[1]})
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "Sozlamalar yangilandi.")
	return r.write(updated)
}

func errPermission(p pos.Permission) error {
	return fmt.Errorf("permission %s required", p)
}

func parseDay(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, time.Local)
}
