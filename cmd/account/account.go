// Package account implements the commands that create and list accounts.
package account

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"fjacquet/budget-tracker/cmd/root"
	"fjacquet/budget-tracker/internal/currencyutils"
	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/parsererror"
	"fjacquet/budget-tracker/internal/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	accountName    string
	openingBalance string
)

// Cmd represents the account command
var Cmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the accounts transactions are imported into",
	Long:  `Create accounts and list the active accounts of a user.`,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an active account",
	Long: `Create an active account for the user.

Example:
  budget-tracker account add -u alice --name "HDFC Savings" --balance 25000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		userID, err := root.UserID()
		if err != nil {
			return err
		}
		created, err := addAccount(cmd.Context(), c.GetStore(), userID, accountName, openingBalance)
		if err != nil {
			return err
		}
		return root.WriteOutput(cmd, []byte(fmt.Sprintf("Created account %s (%s) with balance %s\n",
			created.Name, created.ID, currencyutils.FormatDecimal(created.Balance))))
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the user's active accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		userID, err := root.UserID()
		if err != nil {
			return err
		}
		var sb strings.Builder
		if err := listAccounts(cmd.Context(), &sb, c.GetStore(), userID); err != nil {
			return err
		}
		return root.WriteOutput(cmd, []byte(sb.String()))
	},
}

func init() {
	addCmd.Flags().StringVarP(&accountName, "name", "n", "", "Account name")
	addCmd.Flags().StringVarP(&openingBalance, "balance", "b", "0", "Opening balance")
	_ = addCmd.MarkFlagRequired("name")

	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
}

func addAccount(ctx context.Context, st store.Store, userID, name, balance string) (models.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Account{}, &parsererror.ValidationError{Subject: "account", Reason: "name is required"}
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(balance))
	if err != nil {
		return models.Account{}, &parsererror.ValidationError{Subject: "account", Reason: fmt.Sprintf("invalid balance %q", balance)}
	}
	return st.CreateAccount(ctx, models.Account{UserID: userID, Name: name, Balance: amount, Active: true})
}

func listAccounts(ctx context.Context, w io.Writer, st store.Store, userID string) error {
	accounts, err := st.ListActiveAccounts(ctx, userID)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		_, err := fmt.Fprintf(w, "No active accounts for %s\n", userID)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBALANCE")
	for _, a := range accounts {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", a.ID, a.Name, currencyutils.FormatDecimal(a.Balance))
	}
	return tw.Flush()
}
