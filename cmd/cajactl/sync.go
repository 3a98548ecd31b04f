package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var pushAfterSync bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one full refresh from the database and print the container sizes",
	RunE:  runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&pushAfterSync, "push", false, "Write the refreshed state to the mirror afterwards")

	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Refresh.Sync(cmd.Context()); err != nil {
		return err
	}

	if pushAfterSync {
		if a.Mirror == nil {
			return errMirrorDisabled
		}

		if err := a.Mirror.Push(cmd.Context()); err != nil {
			return err
		}
	}

	st := a.State
	session := "closed"

	if sess := st.Session.Get(); sess.IsOpen {
		session = sess.ID.String()
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "session\t%s\n", session)
	fmt.Fprintf(w, "transactions\t%d\n", st.Transactions.Len())
	fmt.Fprintf(w, "balances\t%d\n", st.Balances.Len())
	fmt.Fprintf(w, "clients\t%d\n", st.Clients.Len())
	fmt.Fprintf(w, "currencies\t%d\n", st.Currencies.Len())
	fmt.Fprintf(w, "cryptos\t%d\n", st.Cryptos.Len())
	fmt.Fprintf(w, "operation types\t%d\n", st.OperationTypes.Len())
	fmt.Fprintf(w, "operators\t%d\n", st.Operators.Len())

	return w.Flush()
}
