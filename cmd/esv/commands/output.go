package commands

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/diag"
)

type runView struct {
	Scenario  string         `yaml:"scenario"`
	RunID     string         `yaml:"run_id"`
	Request   string         `yaml:"request,omitempty"`
	Dominated [2]int         `yaml:"dominated"`
	Solutions []solutionView `yaml:"solutions"`
	Passes    []passView     `yaml:"passes"`
	Records   map[string]int `yaml:"records,omitempty"`
}

type solutionView struct {
	Order   int     `yaml:"order"`
	Source  string  `yaml:"source"`
	Carrier string  `yaml:"carrier"`
	ID      string  `yaml:"id"`
	Total   float64 `yaml:"total"`
	Penalty float64 `yaml:"penalty,omitempty"`
	Utility float64 `yaml:"utility"`
	Group   int     `yaml:"group"`
	Family  int     `yaml:"family"`
	Primary bool    `yaml:"primary"`
}

type passView struct {
	Queue   string `yaml:"queue"`
	Carrier string `yaml:"carrier,omitempty"`
	Limit   int    `yaml:"limit"`
	Picked  int    `yaml:"picked"`
	Popped  int    `yaml:"popped"`
}

func viewOf(o outcome) runView {
	v := runView{
		Scenario:  o.name,
		RunID:     o.res.RunID.String(),
		Request:   o.res.RequestID,
		Dominated: o.res.Dominated,
		Solutions: make([]solutionView, 0, len(o.res.Solutions)),
		Passes:    make([]passView, 0, len(o.res.Passes)),
	}
	for _, s := range o.res.Solutions {
		v.Solutions = append(v.Solutions, solutionView{
			Order:   s.SelectionOrder,
			Source:  s.SelectionSource,
			Carrier: s.GoverningCarrier(),
			ID:      s.ID.String(),
			Total:   s.Total,
			Penalty: s.Penalty,
			Utility: s.AggregateUtility,
			Group:   s.CarrierGroup,
			Family:  s.Family,
			Primary: s.Primary,
		})
	}
	for _, p := range o.res.Passes {
		v.Passes = append(v.Passes, passView{Queue: p.Queue.Code(), Carrier: p.Carrier, Limit: p.Limit, Picked: p.Picked, Popped: p.Popped})
	}
	if o.counts != nil && o.counts.Total() > 0 {
		v.Records = make(map[string]int)
		for r, n := range o.counts.Counts() {
			v.Records[r.Code()] = n
		}
	}

	return v
}

func writeYAML(w io.Writer, runs []outcome) error {
	views := make([]runView, len(runs))
	for i, o := range runs {
		views[i] = viewOf(o)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(views); err != nil {
		return err
	}

	return enc.Close()
}

func writeTable(w io.Writer, runs []outcome) error {
	for i, o := range runs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		res := o.res
		fmt.Fprintf(w, "%s  request=%s  run=%s  dominated=%d/%d\n",
			o.name, res.RequestID, res.RunID, res.Dominated[core.Outbound], res.Dominated[core.Inbound])

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tSRC\tCARRIER\tID\tTOTAL\tPENALTY\tUTILITY\tGROUP\tFAMILY\t")
		for _, s := range res.Solutions {
			primary := ""
			if s.Primary {
				primary = "*"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f\t%.2f\t%.3f\t%d\t%d%s\t\n",
				s.SelectionOrder, s.SelectionSource, s.GoverningCarrier(), s.ID,
				s.Total, s.Penalty, s.AggregateUtility, s.CarrierGroup, s.Family, primary)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		for _, p := range res.Passes {
			fmt.Fprintf(w, "  Q%s %-3s limit=%d picked=%d popped=%d%s\n",
				p.Queue.Code(), p.Carrier, p.Limit, p.Picked, p.Popped, formatRejected(p.Rejected))
		}
	}

	return nil
}

// formatRejected renders rejection counts in reason order.
func formatRejected(m map[diag.Reason]int) string {
	if len(m) == 0 {
		return ""
	}
	reasons := make([]diag.Reason, 0, len(m))
	for r := range m {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })

	s := " rejected:"
	for _, r := range reasons {
		s += fmt.Sprintf(" %s=%d", r.Code(), m[r])
	}

	return s
}
