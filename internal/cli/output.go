package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"kassa/internal/pos"
	"kassa/internal/receipt"
)

func (r *Runner) write(result any) error {
	if r.options.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return writeHuman(result)
}

func (r *Runner) writeSales(sales []pos.Sale) error {
	if r.options.JSON {
		return r.write(sales)
	}
	if len(sales) == 0 {
		fmt.Fprintln(os.Stdout, "(hech narsa topilmadi)")
		return nil
	}
	for i, sale := range sales {
		customer := "Umumiy"
		if sale.Customer != nil {
			customer = sale.Customer.Name
		}
		seller := "Noma'lum"
		if sale.Seller != nil {
			seller = sale.Seller.Name
		}
		kinds := make([]string, 0, len(sale.Payments))
		for _, p := range sale.Payments {
			kinds = append(kinds, receipt.PaymentLabel(p.Type))
		}
		fmt.Fprintf(os.Stdout, "%d) #%s  %s  %s  %s  %.0f  [%s]\n",
			i+1, receipt.ShortID(sale.ID), sale.Date, customer, seller, sale.Total, joinComma(kinds))
	}
	return nil
}

func writeHuman(result any) error {
	switch v := result.(type) {
	case []pos.Product:
		if len(v) == 0 {
			fmt.Fprintln(os.Stdout, "(hech narsa topilmadi)")
			return nil
		}
		for i, p := range v {
			fmt.Fprintf(os.Stdout, "%d) %s (id=%s, narx=%.0f, qoldiq=%g)\n", i+1, p.Name, p.ID, p.Price, p.Stock)
		}
	case []pos.Customer:
		if len(v) == 0 {
			fmt.Fprintln(os.Stdout, "(hech narsa topilmadi)")
			return nil
		}
		for i, c := range v {
			fmt.Fprintf(os.Stdout, "%d) %s (id=%s, qarz=%.0f)\n", i+1, c.Name, c.ID, c.Debt)
		}
	case []pos.Supplier:
		for i, s := range v {
			fmt.Fprintf(os.Stdout, "%d) %s (id=%s)\n", i+1, s.Name, s.ID)
		}
	case []pos.Unit:
		for i, u := range v {
			fmt.Fprintf(os.Stdout, "%d) %s (id=%s)\n", i+1, u.Name, u.ID)
		}
	case []pos.Employee:
		for i, e := range v {
			role := "-"
			if e.Role != nil {
				role = e.Role.Name
			}
			fmt.Fprintf(os.Stdout, "%d) %s (id=%s, rol=%s)\n", i+1, e.Name, e.ID, role)
		}
	case []pos.Role:
		for i, role := range v {
			fmt.Fprintf(os.Stdout, "%d) %s (id=%s, ruxsatlar=%d)\n", i+1, role.Name, role.ID, len(role.Permissions))
		}
	case pos.Employee:
		role := "-"
		if v.Role != nil {
			role = v.Role.Name
		}
		fmt.Fprintf(os.Stdout, "%s (id=%s, rol=%s)\n", v.Name, v.ID, role)
		if v.Role != nil {
			for _, p := range v.Role.Permissions {
				fmt.Fprintf(os.Stdout, "  - %s\n", p)
			}
		}
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return nil
}

func friendlyError(err error) string {
	var validationErr *pos.ValidationError
	switch {
	case errors.Is(err, errNeedLogin), errors.Is(err, pos.ErrMissingToken):
		return "Avval tizimga kiring: login <pin>"
	case errors.Is(err, pos.ErrUnauthorized):
		return "Ruxsat yo'q yoki sessiya eskirgan. Qayta kiring."
	case errors.As(err, &validationErr):
		return "Server ma'lumotni rad etdi: " + validationErr.Body
	default:
		if err == nil {
			return ""
		}
		return err.Error()
	}
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
