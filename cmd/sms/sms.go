// Package sms implements the command that parses SMS alerts without storing them.
package sms

import (
	"bytes"
	"fmt"
	"io"
	"text/tabwriter"

	"fjacquet/budget-tracker/cmd/root"
	"fjacquet/budget-tracker/internal/currencyutils"
	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/smsparser"

	"github.com/spf13/cobra"
)

var format string

// Cmd represents the sms command
var Cmd = &cobra.Command{
	Use:   "sms [message...]",
	Short: "Parse transaction SMS alerts and print what was recognised",
	Long: `Parse transaction SMS alerts from PhonePe, Google Pay, Paytm and banks and print
the amount, direction and merchant of each. Nothing is stored.

Messages come from the arguments or from --input (.csv export or .txt, one per line).

Example:
  budget-tracker sms "Paid Rs.250 to Swiggy via PhonePe"
  budget-tracker sms -i inbox.csv --format json`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json or yaml (default: report.format)")
}

func run(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	messages, err := root.Messages(c.GetCSVHandler(), args)
	if err != nil {
		return err
	}
	outFormat, err := root.OutputFormat(format)
	if err != nil {
		return err
	}

	out, err := render(c.GetParser(), messages, outFormat)
	if err != nil {
		return err
	}
	return root.WriteOutput(cmd, out)
}

func render(parser *smsparser.Parser, messages []string, outFormat string) ([]byte, error) {
	if outFormat != root.FormatText {
		return root.Encode(parser.ParseMultiple(messages), outFormat)
	}

	var buf bytes.Buffer
	if err := writeTable(&buf, parser, messages); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTable(w io.Writer, parser *smsparser.Parser, messages []string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTYPE\tAMOUNT\tMERCHANT\tSOURCE")

	parsed := 0
	for i, msg := range messages {
		tx, ok := parser.Parse(msg)
		if !ok {
			fmt.Fprintf(tw, "%d\t-\t-\t(not recognised)\t-\n", i+1)
			continue
		}
		parsed++
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, tx.Type, signed(tx), tx.Merchant, tx.RawData.DetectedSource)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nRecognised %d of %d messages\n", parsed, len(messages))
	return err
}

func signed(tx models.ParsedTransaction) string {
	return currencyutils.FormatDecimal(models.BalanceDelta(tx.Type, tx.Amount))
}
