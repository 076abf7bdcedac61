package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/frozenpine/pktview/capture"
)

const envPrefix = "PKTVIEW"

var (
	config = viper.New()
	logger = logrus.New()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pktview",
	Short: "Zero-copy ethernet/ip/udp/tcp frame viewer",
	Long: `pktview decodes captured ethernet frames through zero-copy header overlays.

Data sources:
  file://<path>        pcap file
  iface://<name|ip>    live capture on a network interface (linux)

Every flag may also be set through a PKTVIEW_ prefixed environment variable,
e.g. PKTVIEW_LOG_LEVEL=debug.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.BindPFlags(cmd.Flags()); err != nil {
			return errors.WithStack(err)
		}

		return setupLogger()
	},
}

// Execute run root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	config.SetEnvPrefix(envPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	config.AutomaticEnv()

	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringP("source", "s", "", "data source, file://<path> or iface://<name>")
	rootCmd.PersistentFlags().Int("snaplen", 0, "pooled frame buffer size, 0 follows the source snap length")

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(rewriteCmd)
}

func setupLogger() error {
	level, err := logrus.ParseLevel(config.GetString("log-level"))
	if err != nil {
		return errors.WithStack(err)
	}

	logger.SetLevel(level)
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000000",
	})

	capture.SetLogger(logger)

	return nil
}

// openSource open data source named by flag or first argument
func openSource(args []string) (capture.Source, error) {
	source := config.GetString("source")
	if source == "" && len(args) > 0 {
		source = args[0]
	}

	if source == "" {
		return nil, errors.New("data source must be specified")
	}

	src, err := capture.CreateHandler(source)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"source":    source,
		"link_type": src.LinkType(),
		"snaplen":   src.Snaplen(),
	}).Info("data source opened")

	return src, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
