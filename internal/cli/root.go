package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swellbound/surfcast/internal/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "surfcast",
	Short: "Surf forecasts reconciled from wave models and live buoy reports",
	Long: `surfcast fetches wave model forecasts and live NDBC buoy reports,
reconciles the two into a bias-corrected hourly surf forecast, and
evaluates alert rules against current conditions.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.surfcast.yaml)")
	rootCmd.PersistentFlags().Float64("lat", 0, "spot latitude")
	rootCmd.PersistentFlags().Float64("lon", 0, "spot longitude")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (trace, debug, info, warn, error)")

	_ = viper.BindPFlag("lat", rootCmd.PersistentFlags().Lookup("lat"))
	_ = viper.BindPFlag("lon", rootCmd.PersistentFlags().Lookup("lon"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".surfcast" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".surfcast")
	}

	viper.SetEnvPrefix("SURFCAST")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	viper.SetDefault("wave_model_base_url", "https://api.swellmodel.io")
	viper.SetDefault("ndbc_base_url", "https://www.ndbc.noaa.gov")
	viper.SetDefault("hourly_points", 24)

	// Config file is optional for the CLI.
	_ = viper.ReadInConfig()

	cfg := config.New(
		config.WithEnvironment("local"),
		config.WithLogLevel(viper.GetString("log_level")),
	)
	cfg.InitializeLogging()
}
