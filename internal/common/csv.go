// Package common holds the file I/O shared by commands: reading SMS exports and
// writing import outcome reports.
package common

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"

	"github.com/gocarina/gocsv"
)

// SMSRecord is one row of an SMS inbox export.
type SMSRecord struct {
	Sender     string `csv:"sender"`
	Body       string `csv:"body"`
	ReceivedAt string `csv:"received_at"`
}

const maxLineSize = 1024 * 1024

// CSVHandler reads and writes CSV files with a configurable delimiter.
type CSVHandler struct {
	delimiter rune
	logger    logging.Logger
}

// NewCSVHandler creates a CSVHandler. A zero delimiter means ','.
func NewCSVHandler(delimiter rune, logger logging.Logger) *CSVHandler {
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &CSVHandler{delimiter: delimiter, logger: logger}
}

// Delimiter returns the field separator in use.
func (h *CSVHandler) Delimiter() rune {
	return h.delimiter
}

// ReadCSV decodes CSV rows from r into TRow structs using their csv tags.
func ReadCSV[TRow any](r io.Reader, delimiter rune) ([]TRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var rows []TRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}
	return rows, nil
}

// ReadCSVFile reads filePath into TRow structs.
func ReadCSVFile[TRow any](filePath string, delimiter rune, logger logging.Logger) ([]TRow, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	logger.Debug("Reading CSV file", logging.F(logging.FieldFile, filePath))

	file, err := os.Open(filePath) // #nosec G304 -- user-supplied input file
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	rows, err := ReadCSV[TRow](file, delimiter)
	if err != nil {
		logger.WithError(err).Error("Failed to parse CSV file", logging.F(logging.FieldFile, filePath))
		return nil, err
	}

	logger.Debug("Read CSV data", logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}

// ReadMessages loads SMS texts from path. Files ending in .csv are read as exports
// with a body column; anything else holds one message per line. Blank messages are
// skipped and input order is kept.
func (h *CSVHandler) ReadMessages(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		records, err := ReadCSVFile[SMSRecord](path, h.delimiter, h.logger)
		if err != nil {
			return nil, err
		}
		return MessagesFromRecords(records), nil
	}

	file, err := os.Open(path) // #nosec G304 -- user-supplied input file
	if err != nil {
		return nil, fmt.Errorf("error opening message file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			h.logger.WithError(err).Warn("Failed to close file")
		}
	}()
	return ReadLines(file)
}

// MessagesFromRecords returns the non-blank bodies of records.
func MessagesFromRecords(records []SMSRecord) []string {
	messages := make([]string, 0, len(records))
	for _, r := range records {
		if body := strings.TrimSpace(r.Body); body != "" {
			messages = append(messages, body)
		}
	}
	return messages
}

// ReadLines returns the non-blank trimmed lines of r.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading messages: %w", err)
	}
	return lines, nil
}

// WriteOutcomes writes rows to w as CSV with a header line.
func (h *CSVHandler) WriteOutcomes(w io.Writer, rows []models.ImportOutcomeRow) error {
	writer := csv.NewWriter(w)
	writer.Comma = h.delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteOutcomesFile writes rows to path, creating its directory when needed.
func (h *CSVHandler) WriteOutcomesFile(path string, rows []models.ImportOutcomeRow) error {
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(path) // #nosec G304 -- user-selected output file
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	if err := h.WriteOutcomes(file, rows); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error closing CSV file: %w", err)
	}

	h.logger.Info("Wrote import outcomes",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(rows)))
	return nil
}
