package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentwire/scout/internal/logger"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe the search backend health endpoint",
	Run: func(_ *cobra.Command, _ []string) {
		runHealth()
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth() {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	client, err := newClient(ctx, zlog, config)
	if err != nil {
		zlog.Fatal("creating the backend client", zap.Error(err))
	}

	report, err := client.Health()
	if err != nil {
		zlog.Fatal("backend is unreachable", zap.String("url", client.APIURL), zap.Error(err))
	}

	fields := []zap.Field{zap.String("status", report.Status)}
	for name, ok := range report.Checks {
		fields = append(fields, zap.Bool(name, ok))
	}

	zlog.Info("backend health", fields...)
}
