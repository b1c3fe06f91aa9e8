// Package smsparser turns bank and UPI SMS messages into transactions and detects
// messages that repeat a recently recorded transaction.
package smsparser

import (
	"errors"
	"strings"
	"time"

	"fjacquet/budget-tracker/internal/currencyutils"
	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/parsererror"
)

var errNonPositive = errors.New("amount must be positive")

// Parser extracts transactions from SMS text using the per-source pattern table.
type Parser struct {
	logger logging.Logger
	now    func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock replaces the clock used to stamp RawData.ParsedAt.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// NewParser creates a Parser. A nil logger discards output.
func NewParser(logger logging.Logger, opts ...Option) *Parser {
	if logger == nil {
		logger = logging.Nop()
	}
	p := &Parser{logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses one message. The boolean is false when no source app produced a
// usable match; unparseable input is never an error.
func (p *Parser) Parse(text string) (models.ParsedTransaction, bool) {
	lowered := strings.ToLower(text)

	for _, source := range SourceOrder {
		rawAmount, debit, merchant := Extract(source, text, lowered)
		if rawAmount == "" {
			continue
		}

		amount, err := currencyutils.ParseAmount(rawAmount)
		if err == nil && !currencyutils.IsPositive(amount) {
			err = errNonPositive
		}
		if err != nil {
			perr := &parsererror.ParseError{Source: string(source), Field: "amount", Value: rawAmount, Err: err}
			p.logger.WithError(perr).Debug("Amount did not parse, trying next source",
				logging.F(logging.FieldSourceApp, source))
			continue
		}

		txType := models.TypeIncome
		if debit {
			txType = models.TypeExpense
		}
		if merchant == "" {
			merchant = string(source)
		}

		return models.ParsedTransaction{
			Amount:      amount,
			Type:        txType,
			Merchant:    merchant,
			Description: strings.ToUpper(string(source)) + " transaction",
			Source:      models.SourceSMS,
			RawData: models.RawSMSData{
				OriginalText:   text,
				DetectedSource: string(source),
				ParsedAt:       p.now(),
			},
		}, true
	}

	return models.ParsedTransaction{}, false
}

// ParseMultiple parses each message in order and drops the ones that did not parse.
func (p *Parser) ParseMultiple(messages []string) []models.ParsedTransaction {
	parsed := make([]models.ParsedTransaction, 0, len(messages))
	for _, msg := range messages {
		if tx, ok := p.Parse(msg); ok {
			parsed = append(parsed, tx)
		}
	}

	p.logger.Debug("Parsed SMS batch",
		logging.F(logging.FieldCount, len(parsed)),
		logging.F("input_count", len(messages)))
	return parsed
}
