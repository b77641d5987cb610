package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swellbound/surfcast/internal/alert"
	"github.com/swellbound/surfcast/internal/cache"
	"github.com/swellbound/surfcast/internal/config"
)

// alertsCmd runs one alert evaluation cycle against the rule store. The CLI
// always dispatches to the log, never to SNS.
var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Evaluate enabled alert rules once and report the outcome",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		service, _, err := buildService(ctx)
		if err != nil {
			return err
		}

		cacheConfig := config.GetCacheConfig()
		conditionsCache, err := cache.NewConditionsCache(cacheConfig)
		if err != nil {
			return err
		}

		dynamoClient, err := cache.NewDynamoClient(ctx)
		if err != nil {
			return fmt.Errorf("connecting to rule store: %w", err)
		}
		store := alert.NewDynamoStore(dynamoClient)

		engine := alert.NewEngine(service, conditionsCache, store, alert.LogDispatcher{}, config.LoadFromEnv().AlertRefireInterval)

		summary, err := engine.RunOnce(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("evaluated %d rules: %d fired, %d failed\n", summary.Evaluated, summary.Fired, summary.Failed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(alertsCmd)
}
