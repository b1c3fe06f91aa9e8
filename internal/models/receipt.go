package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptItem is a single line recognised on a receipt.
type ReceiptItem struct {
	Name   string          `json:"name" yaml:"name"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}

// ReceiptScan is the result of uploading and scanning a receipt image.
type ReceiptScan struct {
	FileName   string          `json:"file_name" yaml:"file_name"`
	PublicURL  string          `json:"public_url" yaml:"public_url"`
	Merchant   string          `json:"merchant" yaml:"merchant"`
	Amount     decimal.Decimal `json:"amount" yaml:"amount"`
	Date       time.Time       `json:"date" yaml:"date"`
	Items      []ReceiptItem   `json:"items" yaml:"items"`
	Confidence float64         `json:"confidence" yaml:"confidence"`
}
