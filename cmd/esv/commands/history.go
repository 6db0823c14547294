package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/store"
)

const defaultDB = "esv.sqlite"

func historyCmd(a *app) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List stored runs, or the solutions of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

			if len(args) == 0 {
				runs, err := db.Runs(ctx)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs stored.")
					return nil
				}
				fmt.Fprintln(tw, "RUN\tCREATED\tSCENARIO\tREQUEST\tSOLUTIONS\tDOMINATED\t")
				for _, r := range runs {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d/%d\t\n",
						r.ID, r.CreatedAt.Local().Format(time.DateTime), r.Scenario, r.RequestID, r.Solutions, r.Dominated[0], r.Dominated[1])
				}
				return tw.Flush()
			}

			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("bad run id %q: %w", args[0], err)
			}
			sols, err := db.Solutions(ctx, id)
			if err != nil {
				return err
			}
			a.log.Debugf("run %s: %d solutions", id, len(sols))
			fmt.Fprintln(tw, "#\tSRC\tCARRIER\tOUT\tIN\tTOTAL\tGROUP\tFAMILY\t")
			for _, s := range sols {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%.2f\t%d\t%d\t\n",
					s.Order, s.Source, s.Carrier, s.Out, s.In, s.Total, s.CarrierGroup, s.Family)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", defaultDB, "SQLite database written by run --db")
	return cmd
}
