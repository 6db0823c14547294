// Package commands defines the esv CLI.
//
// Commands
//
//   - run        Process scenario files and print the selected solutions;
//     --vis selects by market value buckets instead of diversity passes
//   - dominance  Report the flights a scenario's dominance filter removes
//   - config     Print the effective configuration as YAML
//   - history    List stored runs, or the solutions of one run
//
// # Configuration
//
// The root command reads $HOME/.esv.yaml (or --config), applies ESV_
// environment overrides and validates the result before any subcommand
// runs. Scenario files are processed concurrently, each with its own engine
// state.
package commands
