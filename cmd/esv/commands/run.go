package commands

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/diag"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/esv"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/scenario"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/store"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/utility"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/vis"
)

// outcome is the processed result of one scenario file.
type outcome struct {
	name   string
	res    *esv.Result
	counts *diag.Collector
}

func runCmd(a *app) *cobra.Command {
	var (
		output  string
		selectN int
		dbPath  string
		jobs    int
		byValue bool
	)
	cmd := &cobra.Command{
		Use:   "run <scenario>...",
		Short: "Process scenario files and print the selected solutions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "table" && output != "yaml" {
				return fmt.Errorf("unknown output format %q", output)
			}
			if selectN < 0 {
				return fmt.Errorf("--select must be non-negative, got %d", selectN)
			}

			runs, err := a.process(cmd.Context(), args, jobs, byValue)
			if err != nil {
				return err
			}
			if selectN > 0 {
				m, g := a.cfg.Model(), a.groupingFor(byValue)
				for _, r := range runs {
					r.res.Solutions = selectBest(m, g, r.res.Solutions, selectN)
				}
			}

			if dbPath != "" {
				db, err := store.Open(dbPath)
				if err != nil {
					return err
				}
				defer db.Close()
				for _, r := range runs {
					if err := db.SaveResult(cmd.Context(), r.name, r.res); err != nil {
						return err
					}
				}
				a.log.Debugf("saved %d runs to %s", len(runs), dbPath)
			}

			if output == "yaml" {
				return writeYAML(cmd.OutOrStdout(), runs)
			}
			return writeTable(cmd.OutOrStdout(), runs)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or yaml")
	cmd.Flags().IntVar(&selectN, "select", 0, "keep the N solutions of highest incremental value (0 keeps all)")
	cmd.Flags().StringVar(&dbPath, "db", "", "save every run to this SQLite database")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 4, "scenario files processed concurrently (0 is unlimited)")
	cmd.Flags().BoolVar(&byValue, "vis", false, "select by market value buckets instead of diversity passes")
	return cmd
}

// process runs every scenario with its own engine. Results keep the order
// of paths; the first failure cancels the others.
func (a *app) process(ctx context.Context, paths []string, jobs int, byValue bool) ([]outcome, error) {
	out := make([]outcome, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			sc, err := scenario.ParseFile(path)
			if err != nil {
				return err
			}

			log := a.log.WithField("scenario", path)
			counts := diag.NewCollector(nil)
			sink := diag.Sink(counts)
			if a.diag {
				ls := diag.NewLogSink(log)
				ls.AcceptLevel, ls.RejectLevel = logrus.InfoLevel, logrus.InfoLevel
				sink = diag.Multi(counts, ls)
			}

			var res *esv.Result
			if byValue {
				res, err = a.selectByValue(ctx, sc, log, sink)
			} else {
				res, err = a.selectDiverse(ctx, sc, log, sink)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			log.WithFields(logrus.Fields{
				"run_id":    res.RunID.String(),
				"solutions": len(res.Solutions),
				"records":   counts.Total(),
			}).Info("scenario processed")

			out[i] = outcome{name: path, res: res, counts: counts}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func (a *app) selectDiverse(ctx context.Context, sc *scenario.Scenario, log logrus.FieldLogger, sink diag.Sink) (*esv.Result, error) {
	e, err := esv.New(a.cfg.ESV(),
		esv.WithLogger(log),
		esv.WithSink(sink),
		esv.WithInterline(a.cfg.Rules()),
		esv.WithMileage(sc.Mileage),
	)
	if err != nil {
		return nil, err
	}

	return e.Process(ctx, sc.Request)
}

func (a *app) selectByValue(ctx context.Context, sc *scenario.Scenario, log logrus.FieldLogger, sink diag.Sink) (*esv.Result, error) {
	s, err := vis.New(a.cfg.VIS(),
		vis.WithLogger(log),
		vis.WithSink(sink),
		vis.WithInterline(a.cfg.Rules()),
		vis.WithMileage(sc.Mileage),
	)
	if err != nil {
		return nil, err
	}
	res, err := s.Select(ctx, vis.Request{Request: sc.Request})
	if err != nil {
		return nil, err
	}

	return &res.Result, nil
}

// grouping holds the settings solutions are regrouped with after --select.
type grouping struct {
	enabled     bool
	maxGroups   int
	maxFamilies int
}

func (a *app) groupingFor(byValue bool) grouping {
	if byValue {
		s := a.cfg.Vis
		return grouping{s.Grouping, s.MaxGroups, s.MaxFamiliesInGroup}
	}
	e := a.cfg.Engine

	return grouping{e.Grouping, e.MaxGroups, e.MaxFamiliesInGroup}
}

// selectBest keeps the cheapest solution and the n-1 solutions adding the
// most outbound incremental value to it. The kept solutions are numbered in
// pick order, sorted by price and grouped again.
func selectBest(m utility.Model, g grouping, sols []*core.Item, n int) []*core.Item {
	if n >= len(sols) {
		return sols
	}
	picked := utility.SelectByIncrementalValue(m, core.Outbound, sols[:1], sols[1:], n-1)
	kept := append([]*core.Item{sols[0]}, picked...)

	for i, it := range kept {
		it.SelectionOrder = i
	}
	esv.SortByPrice(kept)
	if g.enabled {
		esv.GroupCarriers(kept, g.maxGroups)
		esv.GroupFamilies(kept)
		esv.Regroup(kept, g.maxGroups, g.maxFamilies)
	}

	return kept
}
