package pos

// Permission is an atomic capability flag grouped into a Role.
type Permission string

const (
	PermSell            Permission = "SELL"
	PermManageProducts  Permission = "MANAGE_PRODUCTS"
	PermManageCustomers Permission = "MANAGE_CUSTOMERS"
	PermManageSuppliers Permission = "MANAGE_SUPPLIERS"
	PermManageUsers     Permission = "MANAGE_USERS"
	PermManageSettings  Permission = "MANAGE_SETTINGS"
	PermViewReports     Permission = "VIEW_REPORTS"
)

// PaymentType distinguishes how a sale (or debt payment) was settled.
type PaymentType string

const (
	PaymentCash     PaymentType = "CASH"
	PaymentCard     PaymentType = "CARD"
	PaymentTransfer PaymentType = "TRANSFER"
	PaymentDebt     PaymentType = "DEBT"
)

type Role struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

type Employee struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	RoleID string `json:"roleId,omitempty"`
	Role   *Role  `json:"role,omitempty"`
	PIN    string `json:"pin,omitempty"`
}

type Product struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Stock  float64 `json:"stock"`
	UnitID string  `json:"unitId,omitempty"`
}

type Customer struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Phone string  `json:"phone,omitempty"`
	Debt  float64 `json:"debt"`
}

type Supplier struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type Unit struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SaleItem struct {
	ProductID string  `json:"productId"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
}

type Payment struct {
	Type   PaymentType `json:"type"`
	Amount float64     `json:"amount"`
}

// Sale embeds point-in-time copies of the seller and customer: renaming an
// employee later must not rewrite historical receipts.
type Sale struct {
	ID         string     `json:"id"`
	Date       string     `json:"date"`
	Items      []SaleItem `json:"items"`
	Subtotal   float64    `json:"subtotal"`
	Discount   float64    `json:"discount"`
	Total      float64    `json:"total"`
	Payments   []Payment  `json:"payments"`
	CustomerID string     `json:"customerId,omitempty"`
	Customer   *Customer  `json:"customer,omitempty"`
	Seller     *Employee  `json:"seller,omitempty"`
}

type DebtPayment struct {
	ID          string      `json:"id"`
	CustomerID  string      `json:"customerId"`
	Amount      float64     `json:"amount"`
	PaymentType PaymentType `json:"paymentType"`
	Date        string      `json:"date"`
}

type GoodsReceiptItem struct {
	ProductID string  `json:"productId"`
	Quantity  float64 `json:"quantity"`
	CostPrice float64 `json:"costPrice,omitempty"`
}

type GoodsReceipt struct {
	ID         string             `json:"id"`
	Date       string             `json:"date"`
	SupplierID string             `json:"supplierId"`
	Supplier   *Supplier          `json:"supplier,omitempty"`
	Items      []GoodsReceiptItem `json:"items"`
}

// StoreSettings is the singleton receipt/branding configuration.
type StoreSettings struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Currency string `json:"currency"`

	ReceiptHeader        string `json:"receiptHeader,omitempty"`
	ReceiptFooter        string `json:"receiptFooter,omitempty"`
	ReceiptShowStoreName bool   `json:"receiptShowStoreName"`
	ReceiptShowAddress   bool   `json:"receiptShowAddress"`
	ReceiptShowPhone     bool   `json:"receiptShowPhone"`
	ReceiptShowChekID    bool   `json:"receiptShowChekId"`
	ReceiptShowDate      bool   `json:"receiptShowDate"`
	ReceiptShowSeller    bool   `json:"receiptShowSeller"`
	ReceiptShowCustomer  bool   `json:"receiptShowCustomer"`
}

// InitialData is the full-snapshot payload of GET /data/initial/.
type InitialData struct {
	Employees     []Employee     `json:"employees"`
	Roles         []Role         `json:"roles"`
	Products      []Product      `json:"products"`
	Customers     []Customer     `json:"customers"`
	Suppliers     []Supplier     `json:"suppliers"`
	Sales         []Sale         `json:"sales"`
	DebtPayments  []DebtPayment  `json:"debtPayments"`
	GoodsReceipts []GoodsReceipt `json:"goodsReceipts"`
	Units         []Unit         `json:"units"`
	Settings      *StoreSettings `json:"settings"`
}

type loginRequest struct {
	PIN string `json:"pin"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// NewSale is the request payload of POST /sales/; id, date and the embedded
// seller snapshot are assigned server-side.
type NewSale struct {
	Items      []SaleItem `json:"items"`
	Subtotal   float64    `json:"subtotal"`
	Discount   float64    `json:"discount"`
	Total      float64    `json:"total"`
	Payments   []Payment  `json:"payments"`
	CustomerID string     `json:"customerId,omitempty"`
}

// NewGoodsReceipt is the request payload of POST /goods-receipts/.
type NewGoodsReceipt struct {
	SupplierID string             `json:"supplierId"`
	Items      []GoodsReceiptItem `json:"items"`
}

type debtPaymentRequest struct {
	CustomerID  string      `json:"customerId"`
	Amount      float64     `json:"amount"`
	PaymentType PaymentType `json:"paymentType"`
}
