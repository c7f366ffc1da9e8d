// Package receipt renders a sale as fixed-width text for a thermal printer,
// honoring the layout toggles of the store settings.
package receipt

import (
	"fmt"
	"strings"
	"time"

	"kassa/internal/pos"
)

const width = 32

const unknownProduct = "Noma'lum mahsulot"

var paymentLabels = map[pos.PaymentType]string{
	pos.PaymentCash:     "Naqd",
	pos.PaymentCard:     "Plastik karta",
	pos.PaymentTransfer: "O'tkazma",
	pos.PaymentDebt:     "Nasiya",
}

// PaymentLabel is the human label of a payment kind.
func PaymentLabel(t pos.PaymentType) string {
	if label, ok := paymentLabels[t]; ok {
		return label
	}
	return string(t)
}

// Render produces the receipt text for a sale. Product names are resolved
// against the given snapshot; seller and customer come from the sale's own
// embedded point-in-time copies.
func Render(sale pos.Sale, products []pos.Product, settings pos.StoreSettings) string {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	var b strings.Builder

	if settings.ReceiptShowStoreName && settings.Name != "" {
		writeCentered(&b, settings.Name)
	}
	if settings.ReceiptShowAddress && settings.Address != "" {
		writeCentered(&b, settings.Address)
	}
	if settings.ReceiptShowPhone && settings.Phone != "" {
		writeCentered(&b, "Tel: "+settings.Phone)
	}
	if settings.ReceiptHeader != "" {
		writeCentered(&b, settings.ReceiptHeader)
	}
	writeRule(&b)

	if settings.ReceiptShowChekID {
		fmt.Fprintf(&b, "Chek: #%s\n", ShortID(sale.ID))
	}
	if settings.ReceiptShowDate {
		fmt.Fprintf(&b, "Sana: %s\n", formatDate(sale.Date))
	}
	if settings.ReceiptShowSeller && sale.Seller != nil {
		fmt.Fprintf(&b, "Sotuvchi: %s\n", sale.Seller.Name)
	}
	if settings.ReceiptShowCustomer && sale.Customer != nil {
		fmt.Fprintf(&b, "Mijoz: %s\n", sale.Customer.Name)
	}
	writeRule(&b)

	for _, item := range sale.Items {
		name, ok := names[item.ProductID]
		if !ok {
			name = unknownProduct
		}
		fmt.Fprintf(&b, "%s\n", truncate(name, width))
		line := fmt.Sprintf("%s x %s", formatQuantity(item.Quantity), formatAmount(item.Price))
		sum := formatAmount(item.Quantity * item.Price)
		writeSpread(&b, "  "+line, sum)
	}
	writeRule(&b)

	writeSpread(&b, "Jami:", formatAmount(sale.Subtotal)+" "+settings.Currency)
	if sale.Discount > 0 {
		writeSpread(&b, "Chegirma:", "-"+formatAmount(sale.Discount)+" "+settings.Currency)
	}
	writeSpread(&b, "To'lash uchun:", formatAmount(sale.Total)+" "+settings.Currency)
	writeRule(&b)

	if len(sale.Payments) > 0 {
		b.WriteString("To'lovlar:\n")
		for _, p := range sale.Payments {
			writeSpread(&b, PaymentLabel(p.Type)+":", formatAmount(p.Amount)+" "+settings.Currency)
		}
		writeRule(&b)
	}

	if settings.ReceiptFooter != "" {
		writeCentered(&b, settings.ReceiptFooter)
	}

	return b.String()
}

// ShortID is the check number printed on the receipt: the last six
// characters of the sale id.
func ShortID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}

func writeRule(b *strings.Builder) {
	b.WriteString(strings.Repeat("-", width))
	b.WriteByte('\n')
}

func writeCentered(b *strings.Builder, text string) {
	text = truncate(text, width)
	pad := (width - len([]rune(text))) / 2
	if pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(text)
	b.WriteByte('\n')
}

func writeSpread(b *strings.Builder, left, right string) {
	gap := width - len([]rune(left)) - len([]rune(right))
	if gap < 1 {
		gap = 1
	}
	b.WriteString(left)
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(right)
	b.WriteByte('\n')
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}

func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func formatQuantity(v float64) string {
	return formatAmount(v)
}

func formatDate(value string) string {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed.Format("02.01.2006 15:04")
	}
	return value
}
