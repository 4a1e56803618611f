package main

import (
	"errors"
	"time"
)

// Transaction statuses. success and expired are terminal.
const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusExpired = "expired"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrProductNotFound    = errors.New("product not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrTransactionMissing = errors.New("transaction not found")
	ErrDuplicateReference = errors.New("duplicate reference")
	ErrGateway            = errors.New("payment gateway error")
)

// Product represents a sellable item in the catalog. Amounts are in the
// minor currency unit (rupiah).
type Product struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"desc" db:"description"`
	Notes       string    `json:"snk" db:"notes"`
	Price       int64     `json:"price" db:"price"`
	TotalSold   int64     `json:"terjual" db:"total_sold"`
	CreatedAt   time.Time `json:"-" db:"created_at"`
	UpdatedAt   time.Time `json:"-" db:"updated_at"`
}

// ProductListing is a Product plus its remaining stock pool size.
type ProductListing struct {
	Product
	AvailableStock int `json:"stokTersedia"`
}

// Transaction represents one purchase attempt, keyed by its reference.
type Transaction struct {
	Reference   string    `json:"reff" db:"reference"`
	ProductID   string    `json:"idProduk" db:"product_id"`
	Quantity    int       `json:"jumlah" db:"quantity"`
	UnitPrice   int64     `json:"harga" db:"unit_price"`
	Fee         int64     `json:"fee" db:"fee"`
	Total       int64     `json:"total" db:"total"`
	GatewayID   string    `json:"qrisId" db:"gateway_id"`
	Status      string    `json:"status" db:"status"`
	ExpiresAt   time.Time `json:"expiredAt" db:"expires_at"`
	Credentials []string  `json:"akun,omitempty" db:"credentials"`
	CreatedAt   time.Time `json:"-" db:"created_at"`
	UpdatedAt   time.Time `json:"-" db:"updated_at"`
}

// NewTransaction creates a pending Transaction with its pricing computed.
func NewTransaction(reference, productID string, quantity int, unitPrice, feePercent int64, expiresAt time.Time) *Transaction {
	fee := ComputeFee(unitPrice, quantity, feePercent)
	return &Transaction{
		Reference: reference,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Fee:       fee,
		Total:     unitPrice*int64(quantity) + fee,
		Status:    StatusPending,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// ComputeFee returns ceil(unitPrice * quantity * feePercent / 100) using
// integer arithmetic only.
func ComputeFee(unitPrice int64, quantity int, feePercent int64) int64 {
	subtotal := unitPrice * int64(quantity)
	return (subtotal*feePercent + 99) / 100
}

// IsExpired reports whether the payment window has closed at the given time.
func (t *Transaction) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// MarkDelivered transitions a pending transaction to success and attaches
// the delivered credentials. Terminal states are never left.
func (t *Transaction) MarkDelivered(credentials []string) error {
	if t.Status != StatusPending {
		return errors.New("only pending transactions can be delivered")
	}

	t.Status = StatusSuccess
	t.Credentials = credentials
	t.UpdatedAt = time.Now()
	return nil
}

// MarkExpired transitions a pending transaction to expired.
func (t *Transaction) MarkExpired() error {
	if t.Status != StatusPending {
		return errors.New("only pending transactions can expire")
	}

	t.Status = StatusExpired
	t.UpdatedAt = time.Now()
	return nil
}

// SalesSummary holds the running totals, bumped once per delivered transaction.
type SalesSummary struct {
	TotalTransactions int64 `json:"totalTransaksi" db:"total_transactions"`
	TotalRevenue      int64 `json:"totalPenjualan" db:"total_revenue"`
}
