package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"synth911/config"
	"synth911/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	// v collects defaults, config file, environment and bound flags.
	v = config.New()

	cfgFile  string
	settings *config.Settings

	// Metrics flags shared by every batch command
	waitForScrape bool

	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "synth911",
	Short: "Synthetic 911 computer aided dispatch data generator",
	Long: `synth911 generates synthetic 911 computer aided dispatch call records.

Every record carries an agency, a call ID, a classified event time, a
problem and priority, the call taker and dispatcher on shift and a causally
ordered set of call lifecycle timestamps. Tables can be written as CSV,
JSON or SQLite, served over HTTP, analyzed for distribution fits and turned
into hourly call-taker staffing estimates.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		logger, err = logging.New(settings.LogLevel)
		if err != nil {
			return err
		}
		logger.Debug("configuration loaded",
			zap.String("command", cmd.Name()),
			zap.String("config_file", v.ConfigFileUsed()),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default: ./synth911.yaml or ./config/synth911.yaml)")
	flags.String("log-level", "info", "Log level: debug|info|warn|error")
	flags.String("metrics-addr", "", "Address to expose Prometheus metrics (e.g., :9090)")
	flags.String("push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	flags.BoolVar(&waitForScrape, "wait", false, "Keep process running after completion to allow for metric scraping")
	bindFlags(flags, "log-level", "metrics-addr", "push-url")

	// Add commands to root
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(staffingCmd)
}

// bindFlags binds each named flag to the config key of the same name with
// dashes replaced by underscores.
func bindFlags(flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		key := strings.ReplaceAll(name, "-", "_")
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
