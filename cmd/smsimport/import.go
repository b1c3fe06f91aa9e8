// Package smsimport implements the import command: SMS alerts are parsed, checked
// for duplicates and stored against an account.
package smsimport

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"fjacquet/budget-tracker/cmd/root"
	"fjacquet/budget-tracker/internal/batch"
	"fjacquet/budget-tracker/internal/logging"

	"github.com/spf13/cobra"
)

var accountID string

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import [message...]",
	Short: "Import transaction SMS alerts into an account",
	Long: `Import transaction SMS alerts into one of the user's active accounts.

Each message is parsed, compared with the user's recent SMS transactions and,
unless it is a duplicate, stored with the account balance adjusted. Messages are
processed in order; a failure on one message does not stop the others.

With --output ending in .csv the per-message outcomes are written as CSV.

Example:
  budget-tracker import -u alice -a <account-id> -i inbox.csv -o outcomes.csv`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&accountID, "account", "a", "", "Account id to import into")
	_ = Cmd.MarkFlagRequired("account")
}

func run(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	userID, err := root.UserID()
	if err != nil {
		return err
	}
	messages, err := root.Messages(c.GetCSVHandler(), args)
	if err != nil {
		return err
	}

	result, err := importMessages(cmd.Context(), c.GetImporter(), userID, accountID, messages)
	if err != nil {
		return err
	}

	root.Log.Info("Import finished",
		logging.F(logging.FieldUserID, userID),
		logging.F(logging.FieldAccountID, accountID),
		logging.F("imported", result.SuccessCount))

	if isCSV(root.SharedFlags.Output) {
		return c.GetCSVHandler().WriteOutcomesFile(root.SharedFlags.Output, result.Rows())
	}

	var sb strings.Builder
	if err := writeResult(&sb, result); err != nil {
		return err
	}
	return root.WriteOutput(cmd, []byte(sb.String()))
}

func importMessages(ctx context.Context, importer *batch.Importer, userID, account string, messages []string) (batch.Result, error) {
	if len(messages) == 0 {
		return batch.Result{}, fmt.Errorf("no messages to import")
	}
	return importer.ImportForUser(ctx, userID, account, messages)
}

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

func writeResult(w io.Writer, result batch.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSTATUS\tDETAIL")
	for _, row := range result.Rows() {
		detail := row.Reason
		if row.Status == batch.StatusSuccess {
			detail = fmt.Sprintf("%s %s (%s)", row.Type, row.Amount, row.TransactionID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", row.Index+1, row.Status, detail)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", result.Summary())
	return err
}
