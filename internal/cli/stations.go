package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// stationsCmd lists the buoy stations nearest a coordinate pair.
var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "List the nearest buoy stations",
	RunE: func(cmd *cobra.Command, args []string) error {
		location, err := spotFromFlags()
		if err != nil {
			return err
		}

		_, buoyClient, err := buildService(cmd.Context())
		if err != nil {
			return err
		}

		stations, err := buoyClient.FindNearestStations(cmd.Context(), location.Latitude, location.Longitude, viper.GetInt("limit"))
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(stations)
	},
}

func init() {
	stationsCmd.Flags().Int("limit", 5, "maximum stations to list")
	_ = viper.BindPFlag("limit", stationsCmd.Flags().Lookup("limit"))
	rootCmd.AddCommand(stationsCmd)
}
