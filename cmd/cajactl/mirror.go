package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/cambio/internal/mirror"
)

var errMirrorDisabled = errors.New("mirror is disabled (SYNC_MIRROR_ENABLED=false)")

var latestLimit int

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Inspect the Redis mirror document",
}

var mirrorDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the mirror document",
	RunE:  runMirrorDump,
}

var mirrorLatestCmd = &cobra.Command{
	Use:   "latest",
	Short: "List the most recent mirrored transactions",
	RunE:  runMirrorLatest,
}

func init() {
	mirrorLatestCmd.Flags().IntVar(&latestLimit, "limit", 10, "Number of transactions to show")

	mirrorCmd.AddCommand(mirrorDumpCmd, mirrorLatestCmd)
	rootCmd.AddCommand(mirrorCmd)
}

func runMirrorDump(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.Gateway == nil {
		return errMirrorDisabled
	}

	doc, err := a.Gateway.Read(cmd.Context())
	if err != nil {
		return err
	}

	if doc == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "mirror document is empty")
		return nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, doc, "", "  "); err != nil {
		return fmt.Errorf("formatting mirror document: %w", err)
	}

	out.WriteByte('\n')

	_, err = out.WriteTo(cmd.OutOrStdout())

	return err
}

func runMirrorLatest(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.Gateway == nil {
		return errMirrorDisabled
	}

	txs, err := mirror.LatestTransactions(cmd.Context(), a.Gateway, latestLimit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tOPERATION\tTYPE\tAMOUNT\tID")

	for _, tx := range txs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			tx.Date.Format(time.DateTime), tx.CurrencyOperation, tx.OperationType, tx.Amount, tx.ID)
	}

	return w.Flush()
}
