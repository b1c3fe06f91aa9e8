package smsparser

import (
	"time"

	"fjacquet/budget-tracker/internal/models"
)

// DefaultDuplicateWindow is how close to now an existing transaction must be to count
// as the same transaction.
const DefaultDuplicateWindow = 5 * time.Minute

// Detector flags parsed transactions that repeat one already recorded.
//
// The comparison is against the detector's clock at check time, not the parsed
// transaction's own timestamp, so latency between parsing and checking shrinks the
// effective window.
type Detector struct {
	window time.Duration
	now    func() time.Time
}

// NewDetector creates a Detector. A non-positive window uses DefaultDuplicateWindow
// and a nil clock uses time.Now.
func NewDetector(window time.Duration, now func() time.Time) *Detector {
	if window <= 0 {
		window = DefaultDuplicateWindow
	}
	if now == nil {
		now = time.Now
	}
	return &Detector{window: window, now: now}
}

// Window returns the configured duplicate window.
func (d *Detector) Window() time.Duration {
	return d.window
}

// IsDuplicate reports whether existing holds a transaction with the same amount, type
// and merchant created less than the window away from now.
func (d *Detector) IsDuplicate(tx models.ParsedTransaction, existing []models.ExistingTransaction) bool {
	now := d.now()
	for _, e := range existing {
		if !e.Amount.Equal(tx.Amount) || e.Type != tx.Type || e.Merchant != tx.Merchant {
			continue
		}
		diff := now.Sub(e.CreatedAt)
		if diff < 0 {
			diff = -diff
		}
		if diff < d.window {
			return true
		}
	}
	return false
}
