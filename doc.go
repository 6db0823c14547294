// Package markup is the root of an itinerary selection engine (ESV/VIS):
// given priced flight candidates for an outbound and an optional inbound
// leg, it combines them into itineraries in ascending price order and picks
// a diverse, bounded solution set.
//
// What is in the module?
//
//	• core       – segments, candidates, fare constructions, items, queues
//	• dominance  – removes flights that are slower and never cheaper
//	• expand     – turns candidates into price-ordered option columns
//	• lattice    – lazy cheapest-first enumeration of legal combinations
//	• diversity  – reuse quotas and upper price bounds per pass
//	• utility    – utility scoring, reranking and incremental-value selection
//	• esv        – the ordered must-price and low-fare passes, plus grouping
//	• vis        – value-based selection by market buckets and beta coefficients
//	• interline  – interline ticketing eligibility
//	• mileage    – ground distances for open-jaw legality
//	• diag       – diagnostic records of every accept and reject
//
// Around the engine:
//
//	config/   – viper-backed configuration with ESV_ environment overrides
//	scenario/ – YAML scenario documents
//	store/    – SQLite history of runs
//	cmd/esv/  – the cobra CLI (run [--vis], dominance, config, history)
//
// Quick start:
//
//	e, err := esv.New(esv.DefaultConfig(), esv.WithInterline(interline.New()))
//	if err != nil {
//	    return err
//	}
//	res, err := e.Process(ctx, esv.Request{Outbound: out, Inbound: in})
//	for _, s := range res.Solutions {
//	    fmt.Println(s.SelectionSource, s.ID, s.Total)
//	}
package markup
