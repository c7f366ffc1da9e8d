package receipt_test

import (
	"strings"
	"testing"

	"kassa/internal/pos"
	"kassa/internal/receipt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSettings() pos.StoreSettings {
	return pos.StoreSettings{
		Name:                 "Baraka Market",
		Address:              "Chilonzor 5",
		Phone:                "+998901234567",
		Currency:             "so'm",
		ReceiptHeader:        "Xush kelibsiz!",
		ReceiptFooter:        "Xaridingiz uchun rahmat!",
		ReceiptShowStoreName: true,
		ReceiptShowAddress:   true,
		ReceiptShowPhone:     true,
		ReceiptShowChekID:    true,
		ReceiptShowDate:      true,
		ReceiptShowSeller:    true,
		ReceiptShowCustomer:  true,
	}
}

func sampleSale() pos.Sale {
	return pos.Sale{
		ID:   "sale-00123456",
		Date: "2025-03-01T12:30:00Z",
		Items: []pos.SaleItem{
			{ProductID: "p1", Quantity: 2, Price: 1000},
			{ProductID: "p2", Quantity: 1, Price: 5000},
		},
		Subtotal: 7000,
		Discount: 500,
		Total:    6500,
		Payments: []pos.Payment{
			{Type: pos.PaymentCash, Amount: 5000},
			{Type: pos.PaymentCard, Amount: 1500},
		},
		Customer: &pos.Customer{ID: "c1", Name: "Karim aka"},
		Seller:   &pos.Employee{ID: "e1", Name: "Aziz"},
	}
}

func sampleProducts() []pos.Product {
	return []pos.Product{
		{ID: "p1", Name: "Olma"},
		{ID: "p2", Name: "Anor"},
	}
}

func TestRenderFullLayout(t *testing.T) {
	out := receipt.Render(sampleSale(), sampleProducts(), sampleSettings())

	assert.Contains(t, out, "Baraka Market")
	assert.Contains(t, out, "Chilonzor 5")
	assert.Contains(t, out, "Tel: +998901234567")
	assert.Contains(t, out, "Xush kelibsiz!")
	assert.Contains(t, out, "Chek: #123456")
	assert.Contains(t, out, "Sotuvchi: Aziz")
	assert.Contains(t, out, "Mijoz: Karim aka")
	assert.Contains(t, out, "Olma")
	assert.Contains(t, out, "Anor")
	assert.Contains(t, out, "Jami:")
	assert.Contains(t, out, "7000 so'm")
	assert.Contains(t, out, "Chegirma:")
	assert.Contains(t, out, "-500 so'm")
	assert.Contains(t, out, "To'lash uchun:")
	assert.Contains(t, out, "6500 so'm")
	assert.Contains(t, out, "Naqd:")
	assert.Contains(t, out, "Plastik karta:")
	assert.Contains(t, out, "Xaridingiz uchun rahmat!")
}

func TestRenderHonorsToggles(t *testing.T) {
	settings := sampleSettings()
	settings.ReceiptShowStoreName = false
	settings.ReceiptShowPhone = false
	settings.ReceiptShowSeller = false
	settings.ReceiptShowChekID = false
	settings.ReceiptHeader = ""

	out := receipt.Render(sampleSale(), sampleProducts(), settings)

	assert.NotContains(t, out, "Baraka Market")
	assert.NotContains(t, out, "Tel:")
	assert.NotContains(t, out, "Sotuvchi:")
	assert.NotContains(t, out, "Chek: #")
	assert.Contains(t, out, "Mijoz: Karim aka", "customer line still enabled")
}

func TestRenderUnknownProduct(t *testing.T) {
	out := receipt.Render(sampleSale(), nil, sampleSettings())
	assert.Contains(t, out, "Noma'lum mahsulot")
}

func TestRenderSkipsZeroDiscount(t *testing.T) {
	sale := sampleSale()
	sale.Discount = 0
	out := receipt.Render(sale, sampleProducts(), sampleSettings())
	assert.NotContains(t, out, "Chegirma:")
}

func TestRenderLineWidth(t *testing.T) {
	out := receipt.Render(sampleSale(), sampleProducts(), sampleSettings())
	for _, line := range strings.Split(out, "\n") {
		require.LessOrEqual(t, len([]rune(line)), 33, "line too wide: %q", line)
	}
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "123456", receipt.ShortID("sale-00123456"))
	assert.Equal(t, "ab", receipt.ShortID("ab"))
}

func TestPaymentLabel(t *testing.T) {
	assert.Equal(t, "Nasiya", receipt.PaymentLabel(pos.PaymentDebt))
	assert.Equal(t, "O'tkazma", receipt.PaymentLabel(pos.PaymentTransfer))
	assert.Equal(t, "OTHER", receipt.PaymentLabel(pos.PaymentType("OTHER")))
}
