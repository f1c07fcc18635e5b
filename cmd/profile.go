package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentwire/scout/internal/logger"
)

var profileCmd = &cobra.Command{
	Use:   "profile <id>",
	Short: "Show the full record of one candidate profile",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		runProfile(args[0])
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

func runProfile(id string) {
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

	profile, err := client.GetProfile(id)
	if err != nil {
		zlog.Fatal("getting profile", zap.String("profile_id", id), zap.Error(err))
	}

	// Print the raw record so fields this client does not model are visible too.
	pretty, _ := json.MarshalIndent(profile.Raw, "", "  ")
	fmt.Println(string(pretty))
}
