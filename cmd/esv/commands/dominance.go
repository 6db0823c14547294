package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/diag"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/dominance"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/scenario"
)

func dominanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dominance <scenario>",
		Short: "Report the flights the dominance filter removes from a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scenario.ParseFile(args[0])
			if err != nil {
				return err
			}
			requested := sc.Request.Requested
			if requested <= 0 {
				requested = a.cfg.Diversity.RequestedSolutions
			}

			opts := []dominance.Option{dominance.WithRequestedOptions(requested)}
			if a.diag {
				opts = append(opts, dominance.WithSink(diag.NewLogSink(a.log.WithField("scenario", args[0]))))
			}
			f := dominance.New(opts...)
			n := f.FindDominated(sc.Request.Outbound, sc.Request.Inbound)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s: %d dominated (cap %d per leg)\n", args[0], n, f.Cap())
			if n == 0 {
				return nil
			}

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "LEG\tID\tCARRIERS\tDEPARTURE\tELAPSED\tSTOPS\t")
			for _, leg := range [][]*core.Candidate{sc.Request.Outbound, sc.Request.Inbound} {
				for _, c := range leg {
					if !c.Dominated {
						continue
					}
					fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%d\t\n",
						c.Leg, c.ID, c.Signature(), c.Departure().Format("2006-01-02 15:04"), c.Elapsed(), c.Stops())
				}
			}

			return tw.Flush()
		},
	}
}
