// Package receipt implements the receipt scanning command.
package receipt

import (
	"context"
	"fmt"
	"io"
	"strings"

	"fjacquet/budget-tracker/cmd/root"
	"fjacquet/budget-tracker/internal/currencyutils"
	"fjacquet/budget-tracker/internal/dateutils"
	"fjacquet/budget-tracker/internal/models"
	scanner "fjacquet/budget-tracker/internal/receipt"
	"fjacquet/budget-tracker/internal/validation"

	"github.com/spf13/cobra"
)

var (
	accountID string
	format    string
)

// Cmd represents the receipt command
var Cmd = &cobra.Command{
	Use:   "receipt <file>",
	Short: "Upload and scan a receipt image",
	Long: `Upload a receipt image to the configured receipts store and scan it for the
merchant, total and line items. With --account the total is recorded as an
expense on that account.

Example:
  budget-tracker receipt lunch.jpg -u alice --account acct-1`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&accountID, "account", "a", "", "Account to record the receipt total on")
	Cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json or yaml (default: report.format)")
}

// Result is a scanned receipt and, when imported, the stored transaction.
type Result struct {
	Scan        models.ReceiptScan        `json:"scan" yaml:"scan"`
	Transaction *models.TransactionRecord `json:"transaction,omitempty" yaml:"transaction,omitempty"`
}

func run(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	if err := validation.IsValidInputFile(args[0]); err != nil {
		return err
	}
	outFormat, err := root.OutputFormat(format)
	if err != nil {
		return err
	}
	userID, err := root.UserID()
	if err != nil {
		return err
	}

	res, err := scanReceipt(cmd.Context(), c.GetScanner(), args[0], userID, accountID)
	if err != nil {
		return err
	}

	var out []byte
	if outFormat == root.FormatText {
		var sb strings.Builder
		writeText(&sb, res)
		out = []byte(sb.String())
	} else if out, err = root.Encode(res, outFormat); err != nil {
		return err
	}
	return root.WriteOutput(cmd, out)
}

// scanReceipt scans the file at path and, when account is set, imports the total.
func scanReceipt(ctx context.Context, s *scanner.Scanner, path, userID, account string) (Result, error) {
	scan, err := s.ScanFile(ctx, path)
	if err != nil {
		return Result{}, err
	}
	res := Result{Scan: scan}
	if account == "" {
		return res, nil
	}

	rec, err := s.Import(ctx, userID, account, scan)
	if err != nil {
		return res, fmt.Errorf("receipt %s uploaded but not recorded: %w", scan.FileName, err)
	}
	res.Transaction = &rec
	return res, nil
}

func writeText(w io.Writer, res Result) {
	s := res.Scan
	fmt.Fprintf(w, "Receipt:    %s\n", s.FileName)
	fmt.Fprintf(w, "URL:        %s\n", s.PublicURL)
	fmt.Fprintf(w, "Merchant:   %s\n", s.Merchant)
	fmt.Fprintf(w, "Date:       %s\n", dateutils.ToISODate(s.Date))
	fmt.Fprintf(w, "Total:      %s\n", currencyutils.FormatDecimal(s.Amount))
	fmt.Fprintf(w, "Confidence: %.0f%%\n", s.Confidence*100)
	for _, item := range s.Items {
		fmt.Fprintf(w, "  %-20s %12s\n", item.Name, currencyutils.FormatDecimal(item.Amount))
	}
	if res.Transaction != nil {
		fmt.Fprintf(w, "Recorded as %s in %s (%s)\n", res.Transaction.ID, res.Transaction.Category, res.Transaction.AccountID)
	}
}
