package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/afrantzis/ugcs/internal/buildinfo"
	"github.com/afrantzis/ugcs/internal/logging"
)

const (
	LogLevelKey   = "log.level"
	LogFormatKey  = "log.format"
	LogNoColorKey = "log.no_color"

	ServiceAccountFileKey = "service_account_file"
)

var rootCmd = &cobra.Command{
	Use:   "ugcs",
	Short: fmt.Sprintf("Micro Google Cloud Storage client (version: %s, commit: %s)", buildinfo.Version, buildinfo.CommitHash),
	Long: `ugcs is a micro client for Google Cloud Storage.
It authenticates as a service account, caching the obtained access
tokens across invocations, and performs object operations (list, get,
put, stat, rm) against a bucket.`,
	Version: buildinfo.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(&logging.Options{
			Level:   viper.GetString(LogLevelKey),
			Format:  viper.GetString(LogFormatKey),
			NoColor: viper.GetBool(LogNoColorKey),
		})
		return nil
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal().Err(err).Msg("execution failed")
		os.Exit(1)
	}
}

func init() {
	// setup pre-flag logger
	logging.InitDefault()

	rootCmd.PersistentFlags().StringVar(&f.ServiceAccountFile, "service-account-file", "",
		"Path of a service account JSON file")
	_ = viper.BindPFlag(ServiceAccountFileKey, rootCmd.PersistentFlags().Lookup("service-account-file"))

	rootCmd.PersistentFlags().StringVar(&f.ConfigPath, "config", "",
		"Path of a ugcs configuration file (optional)")

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	_ = viper.BindPFlag(LogLevelKey, rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().String("log-format", "console", "Log format (console, json)")
	_ = viper.BindPFlag(LogFormatKey, rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.PersistentFlags().Bool("no-color", false, "Disable color output")
	_ = viper.BindPFlag(LogNoColorKey, rootCmd.PersistentFlags().Lookup("no-color"))

	viper.SetEnvPrefix("UGCS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))

	viper.AutomaticEnv()

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}
