package smsparser

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 12, 10, 30, 0, 0, time.UTC)

func newTestParser() *Parser {
	return NewParser(logging.NewMockLogger(), WithClock(func() time.Time { return fixedNow }))
}

func TestParse_SupportedTemplates(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		amount   string
		txType   models.TransactionType
		merchant string
		source   SourceApp
	}{
		{
			name:     "PhonePe payment",
			message:  "Paid Rs.250 to Swiggy via PhonePe. UPI Ref: 401234567890",
			amount:   "250",
			txType:   models.TypeExpense,
			merchant: "Swiggy",
			source:   SourcePhonePe,
		},
		{
			name:     "PhonePe receipt",
			message:  "Received Rs.1,500.00 from Rahul Sharma via PhonePe.",
			amount:   "1500",
			txType:   models.TypeIncome,
			merchant: "Rahul Sharma",
			source:   SourcePhonePe,
		},
		{
			name:     "PhonePe account debit form",
			message:  "PhonePe: Your A/c XX1234 debited with Rs.799.50 on 12-03-26",
			amount:   "799.5",
			txType:   models.TypeExpense,
			merchant: "phonepe",
			source:   SourcePhonePe,
		},
		{
			name:     "Google Pay payment",
			message:  "You paid ₹450.00 to Zomato using Google Pay",
			amount:   "450",
			txType:   models.TypeExpense,
			merchant: "Zomato",
			source:   SourceGooglePay,
		},
		{
			name:     "GPay receipt",
			message:  "You received ₹2,000 from Priya on GPay",
			amount:   "2000",
			txType:   models.TypeIncome,
			merchant: "Priya",
			source:   SourceGooglePay,
		},
		{
			name:     "Paytm wallet payment",
			message:  "Rs.120 paid to Uber India from Paytm Wallet. Txn ID 998877",
			amount:   "120",
			txType:   models.TypeExpense,
			merchant: "Uber India",
			source:   SourcePaytm,
		},
		{
			name:     "Paytm wallet receipt",
			message:  "Rs.500 received from Amit in your Paytm Wallet",
			amount:   "500",
			txType:   models.TypeIncome,
			merchant: "Amit",
			source:   SourcePaytm,
		},
		{
			name:     "Bank debit to VPA",
			message:  "Rs.2,500.00 debited from A/c XX1234 on 12-03-26 to VPA bigbazaar@okaxis. Ref 123456",
			amount:   "2500",
			txType:   models.TypeExpense,
			merchant: "bigbazaar@okaxis",
			source:   SourceBank,
		},
		{
			name:     "Bank strict debit with info",
			message:  "Your A/c no. XX5678 is debited with INR 1,23,456.78. Info: Amazon Pay. Avl Bal INR 10,000",
			amount:   "123456.78",
			txType:   models.TypeExpense,
			merchant: "Amazon Pay",
			source:   SourceBank,
		},
		{
			name:     "Bank salary credit",
			message:  "INR 85,000.00 credited to A/c XX5678 on 01-03-26 by VPA payroll@hdfcbank",
			amount:   "85000",
			txType:   models.TypeIncome,
			merchant: "payroll@hdfcbank",
			source:   SourceBank,
		},
		{
			name:     "Bank credit without merchant",
			message:  "Your account XX9012 has been credited with Rs.300",
			amount:   "300",
			txType:   models.TypeIncome,
			merchant: "bank",
			source:   SourceBank,
		},
	}

	p := newTestParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, ok := p.Parse(tt.message)
			require.True(t, ok, "message should parse: %s", tt.message)

			assert.True(t, decimal.RequireFromString(tt.amount).Equal(tx.Amount), "amount %s, got %s", tt.amount, tx.Amount)
			assert.Equal(t, tt.txType, tx.Type)
			assert.Equal(t, tt.merchant, tx.Merchant)
			assert.Equal(t, models.SourceSMS, tx.Source)
			assert.Equal(t, strings.ToUpper(string(tt.source))+" transaction", tx.Description)
			assert.Equal(t, tt.message, tx.RawData.OriginalText)
			assert.Equal(t, string(tt.source), tx.RawData.DetectedSource)
			assert.Equal(t, fixedNow, tx.RawData.ParsedAt)
		})
	}
}

func TestParse_Unmatched(t *testing.T) {
	p := newTestParser()

	for _, msg := range []string{
		"",
		"Your OTP for login is 482910. Do not share it.",
		"Meeting moved to 3pm tomorrow",
		"Paid Rs. to nobody via PhonePe",
	} {
		_, ok := p.Parse(msg)
		assert.False(t, ok, "expected no match for %q", msg)
	}
}

func TestParse_ZeroAmountFallsThroughToLaterSource(t *testing.T) {
	p := newTestParser()

	// PhonePe matches first with a zero amount; the bank pattern then recovers the real one.
	tx, ok := p.Parse("Paid Rs.0 to Test via PhonePe. Rs.45 debited from A/c XX1111")
	require.True(t, ok)
	assert.Equal(t, string(SourceBank), tx.RawData.DetectedSource)
	assert.True(t, decimal.NewFromInt(45).Equal(tx.Amount))
}

func TestParse_ZeroAmountOnlyIsUnparsed(t *testing.T) {
	logger := logging.NewMockLogger()
	p := NewParser(logger)

	_, ok := p.Parse("Paid Rs.0 to Test via PhonePe")
	assert.False(t, ok)
	assert.NotEmpty(t, logger.GetEntriesByLevel("DEBUG"))
}

func TestParse_SourceOrderWins(t *testing.T) {
	p := newTestParser()

	// Matches both the PhonePe account form and the generic bank form.
	tx, ok := p.Parse("PhonePe alert: A/c XX4321 debited with Rs.60")
	require.True(t, ok)
	assert.Equal(t, string(SourcePhonePe), tx.RawData.DetectedSource)
}

func TestParse_MerchantKeepsOriginalCase(t *testing.T) {
	p := newTestParser()

	tx, ok := p.Parse("PAID RS.99 TO McDonald's India VIA PHONEPE")
	require.True(t, ok)
	assert.Equal(t, "McDonald's India", tx.Merchant)
}

// formatAmount renders d the way banks commonly print it, optionally with Indian grouping.
func formatAmount(d decimal.Decimal, indian bool) string {
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	var groups []string
	if len(whole) > 3 {
		groups = append(groups, whole[len(whole)-3:])
		whole = whole[:len(whole)-3]
		size := 3
		if indian {
			size = 2
		}
		for len(whole) > size {
			groups = append([]string{whole[len(whole)-size:]}, groups...)
			whole = whole[:len(whole)-size]
		}
	}
	groups = append([]string{whole}, groups...)
	return strings.Join(groups, ",") + "." + frac
}

func TestParse_GeneratedRoundTrip(t *testing.T) {
	templates := []struct {
		source SourceApp
		txType models.TransactionType
		format string
	}{
		{SourcePhonePe, models.TypeExpense, "Paid Rs.%s to Store %d via PhonePe"},
		{SourceGooglePay, models.TypeExpense, "You paid ₹%s to Store %d using Google Pay"},
		{SourcePaytm, models.TypeIncome, "Rs.%s received from Store %d in your Paytm Wallet"},
		{SourceBank, models.TypeExpense, "Rs.%s debited from A/c XX1234 to VPA store%d@okaxis"},
	}

	p := newTestParser()
	for i := 1; i <= 40; i++ {
		// Spread amounts over several orders of magnitude with paise.
		amount := decimal.NewFromInt(int64(i*i*i*173 + i*7)).Div(decimal.NewFromInt(100))
		for _, tmpl := range templates {
			for _, indian := range []bool{false, true} {
				msg := fmt.Sprintf(tmpl.format, formatAmount(amount, indian), i)
				tx, ok := p.Parse(msg)
				require.True(t, ok, msg)
				assert.True(t, amount.Equal(tx.Amount), "%s: want %s got %s", msg, amount, tx.Amount)
				assert.Equal(t, tmpl.txType, tx.Type, msg)
				assert.Equal(t, string(tmpl.source), tx.RawData.DetectedSource, msg)
			}
		}
	}
}

func TestParseMultiple_PreservesOrderAndDropsUnparsed(t *testing.T) {
	p := newTestParser()

	messages := []string{
		"Paid Rs.10 to A via PhonePe",
		"hello there",
		"You paid ₹20 to B using Google Pay",
		"Rs.30 paid to C from Paytm Wallet",
		"",
	}

	parsed := p.ParseMultiple(messages)
	require.Len(t, parsed, 3)
	assert.LessOrEqual(t, len(parsed), len(messages))
	assert.Equal(t, "A", parsed[0].Merchant)
	assert.Equal(t, "B", parsed[1].Merchant)
	assert.Equal(t, "C", parsed[2].Merchant)
}

func TestParseMultiple_Empty(t *testing.T) {
	assert.Empty(t, newTestParser().ParseMultiple(nil))
}

func TestPatterns_KnownSources(t *testing.T) {
	for _, source := range SourceOrder {
		_, ok := Patterns(source)
		assert.True(t, ok, string(source))
	}
	_, ok := Patterns("unknown")
	assert.False(t, ok)
}
