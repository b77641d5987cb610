package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

// forecastCmd prints the reconciled hourly forecast for a coordinate pair.
var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Print the reconciled hourly forecast for a spot",
	RunE: func(cmd *cobra.Command, args []string) error {
		location, err := spotFromFlags()
		if err != nil {
			return err
		}

		service, _, err := buildService(cmd.Context())
		if err != nil {
			return err
		}

		forecasts, err := service.GetForecast(cmd.Context(), location)
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(forecasts)
	},
}

func init() {
	rootCmd.AddCommand(forecastCmd)
}
