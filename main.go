package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/budget-tracker/cmd/account"
	"fjacquet/budget-tracker/cmd/budget"
	"fjacquet/budget-tracker/cmd/receipt"
	"fjacquet/budget-tracker/cmd/report"
	"fjacquet/budget-tracker/cmd/root"
	"fjacquet/budget-tracker/cmd/sms"
	"fjacquet/budget-tracker/cmd/smsimport"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(sms.Cmd)
	root.Cmd.AddCommand(smsimport.Cmd)
	root.Cmd.AddCommand(account.Cmd)
	root.Cmd.AddCommand(budget.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(receipt.Cmd)
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
