package smsparser

import (
	"regexp"

	"fjacquet/budget-tracker/internal/textutils"
)

// SourceApp identifies the payment channel an SMS was sent by.
type SourceApp string

const (
	SourcePhonePe   SourceApp = "phonepe"
	SourceGooglePay SourceApp = "googlepay"
	SourcePaytm     SourceApp = "paytm"
	SourceBank      SourceApp = "bank"
)

// SourceOrder is the order in which sources are tried. The first source whose debit
// or credit pattern matches wins.
var SourceOrder = []SourceApp{SourcePhonePe, SourceGooglePay, SourcePaytm, SourceBank}

// Capture is a pattern plus the named groups holding its value, in preference order.
type Capture struct {
	re     *regexp.Regexp
	groups []string
}

// Find returns the first non-empty group of the first match, or the whole match when
// every group is empty.
func (c Capture) Find(text string) (string, bool) {
	return textutils.FirstSubmatch(c.re, text, c.groups...)
}

// PatternSet holds the three independent patterns of one source app. Debit and Credit
// expect lower-cased text; Merchant runs on the original message.
type PatternSet struct {
	Debit    Capture
	Credit   Capture
	Merchant Capture
}

const (
	groupAmount        = "amount"
	groupAccountAmount = "acct_amount"
	groupMerchant      = "merchant"
	groupPayee         = "payee"
)

var amountGroups = []string{groupAmount, groupAccountAmount}

// amountExpr matches "rs.1,234.50", "inr 500" or "₹99" and captures the number.
func amountExpr(group string) string {
	return `(?:rs\.?|inr|₹)\s*(?P<` + group + `>\d[\d,]*(?:\.\d+)?)`
}

// accountExpr matches the strict "a/c xx1234 debited with rs.500" form.
func accountExpr(verb string) string {
	return `a/?c(?:count)?\s*(?:no\.?\s*)?\S+\s+(?:has\s+been\s+|is\s+)?` + verb + `\s+(?:with|by|for)\s+` + amountExpr(groupAccountAmount)
}

func amountCapture(expr string) Capture {
	return Capture{re: regexp.MustCompile(expr), groups: amountGroups}
}

func merchantCapture(expr string) Capture {
	return Capture{re: regexp.MustCompile(`(?i)` + expr), groups: []string{groupMerchant, groupPayee}}
}

const (
	phonePeName   = `phonepe`
	googlePayName = `(?:google\s*pay|gpay)`
	paytmName     = `(?:your\s+)?paytm`
	merchantName  = `(?P<merchant>[^\s].*?)`
)

var patterns = map[SourceApp]PatternSet{
	SourcePhonePe: {
		Debit: amountCapture(
			`paid\s+` + amountExpr(groupAmount) + `\s+to\s+.+?\s+(?:via|using|on)\s+` + phonePeName +
				`|` + phonePeName + `.*?` + accountExpr("debited")),
		Credit: amountCapture(
			`received\s+` + amountExpr(groupAmount) + `\s+from\s+.+?\s+(?:via|using|on)\s+` + phonePeName +
				`|` + phonePeName + `.*?` + accountExpr("credited")),
		Merchant: merchantCapture(`\b(?:to|from)\s+` + merchantName + `\s+(?:via|using|on)\s+` + phonePeName),
	},
	SourceGooglePay: {
		Debit: amountCapture(
			`paid\s+` + amountExpr(groupAmount) + `\s+to\s+.+?\s+(?:via|using|on)\s+` + googlePayName +
				`|` + googlePayName + `.*?` + accountExpr("debited")),
		Credit: amountCapture(
			`received\s+` + amountExpr(groupAmount) + `\s+from\s+.+?\s+(?:via|using|on)\s+` + googlePayName +
				`|` + googlePayName + `.*?` + accountExpr("credited")),
		Merchant: merchantCapture(`\b(?:to|from)\s+` + merchantName + `\s+(?:via|using|on)\s+` + googlePayName),
	},
	SourcePaytm: {
		Debit: amountCapture(
			amountExpr(groupAmount) + `\s+paid\s+to\s+.+?\s+(?:from|via|using)\s+` + paytmName +
				`|paytm.*?` + accountExpr("debited")),
		Credit: amountCapture(
			amountExpr(groupAmount) + `\s+received\s+from\s+.+?\s+(?:in|to|on)\s+` + paytmName +
				`|paytm.*?` + accountExpr("credited")),
		Merchant: merchantCapture(`(?:paid\s+to|received\s+from)\s+` + merchantName + `\s+(?:from|in|to|on|via|using)\s+` + paytmName),
	},
	SourceBank: {
		Debit: amountCapture(
			amountExpr(groupAmount) + `\s+(?:has\s+been\s+|is\s+)?debited\s+from` +
				`|` + accountExpr("debited")),
		Credit: amountCapture(
			amountExpr(groupAmount) + `\s+(?:has\s+been\s+|is\s+)?credited\s+to` +
				`|` + accountExpr("credited")),
		Merchant: merchantCapture(
			`\b(?:to|from|by)\s+vpa\s+(?P<merchant>[\w.\-]+@[\w.\-]*\w)` +
				`|\binfo[:\s]+(?P<payee>[^\s.][^.\n]*?)(?:\.|\s+ref|\s+avl|$)`),
	},
}

// Patterns returns the pattern set for source and whether it is known.
func Patterns(source SourceApp) (PatternSet, bool) {
	set, ok := patterns[source]
	return set, ok
}

// Extract runs the source's patterns over text and returns the amount and merchant
// substrings, each empty when not found. lowered must be strings.ToLower(text).
func Extract(source SourceApp, text, lowered string) (amount string, debit bool, merchant string) {
	set, ok := patterns[source]
	if !ok {
		return "", false, ""
	}

	if a, ok := set.Debit.Find(lowered); ok {
		amount, debit = a, true
	} else if a, ok := set.Credit.Find(lowered); ok {
		amount = a
	} else {
		return "", false, ""
	}

	if m, ok := set.Merchant.Find(text); ok {
		merchant = textutils.CleanName(m)
	}
	return amount, debit, merchant
}
