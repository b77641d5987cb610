package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

// conditionsCmd prints the current conditions snapshot, live buoy data when
// the nearest station is reporting.
var conditionsCmd = &cobra.Command{
	Use:   "conditions",
	Short: "Print current conditions for a spot",
	RunE: func(cmd *cobra.Command, args []string) error {
		location, err := spotFromFlags()
		if err != nil {
			return err
		}

		service, _, err := buildService(cmd.Context())
		if err != nil {
			return err
		}

		conditions, err := service.BuildCurrentConditions(cmd.Context(), location)
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(conditions)
	},
}

func init() {
	rootCmd.AddCommand(conditionsCmd)
}
