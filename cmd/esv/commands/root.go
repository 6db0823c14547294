package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/config"
)

// app holds the state shared by every subcommand of one root command.
type app struct {
	cfgFile  string
	logLevel string
	diag     bool

	log *logrus.Logger
	cfg config.Config
}

// Execute runs the CLI until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "esv",
		Short: "Itinerary selection over priced flight candidates",
		Long: `esv combines priced outbound and inbound flight candidates into itineraries
and selects a diverse solution set: must-price passes first, then low-fare passes.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.esv.yaml)")
	root.PersistentFlags().StringVarP(&a.logLevel, "loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	root.PersistentFlags().BoolVar(&a.diag, "diag", false, "log every diagnostic record of the searches")

	root.AddCommand(runCmd(a), dominanceCmd(a), configCmd(a), historyCmd(a))
	return root
}

// init builds the logger and loads the configuration.
func (a *app) init(cmd *cobra.Command) error {
	a.log = logrus.New()
	a.log.SetOutput(cmd.ErrOrStderr())
	if err := setLogLevel(a.log, a.logLevel); err != nil {
		return err
	}

	v := viper.New()
	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}
		v.AddConfigPath(home)
		v.SetConfigName(".esv")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
		a.log.Debug("no config file found, using defaults")
	} else {
		a.log.Debugf("using config file %s", v.ConfigFileUsed())
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	return nil
}

// setLogLevel maps a level name onto l. Trace and panic are not offered.
func setLogLevel(l *logrus.Logger, level string) error {
	switch strings.ToLower(level) {
	case "debug":
		l.SetLevel(logrus.DebugLevel)
	case "info":
		l.SetLevel(logrus.InfoLevel)
	case "warning", "warn":
		l.SetLevel(logrus.WarnLevel)
	case "error":
		l.SetLevel(logrus.ErrorLevel)
	case "fatal":
		l.SetLevel(logrus.FatalLevel)
	default:
		return fmt.Errorf("bad log level %q", level)
	}

	return nil
}
