package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentwire/scout/internal/ingest"
	"github.com/talentwire/scout/internal/logger"
	"github.com/talentwire/scout/internal/talent"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a resume for ingestion and wait for it to be processed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runUpload(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().Bool("no-wait", false, "do not poll for the ingestion result")
}

func runUpload(cmd *cobra.Command, path string) {
	// Ctrl-C during the poll loop stops scheduling further status checks.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

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

	file, err := os.Open(path)
	if err != nil {
		zlog.Fatal("opening resume file", zap.Error(err))
	}
	defer file.Close()

	resp, err := client.UploadResume(filepath.Base(path), file)
	if err != nil {
		zlog.Fatal("uploading resume", zap.Error(err))
	}

	zlog.Info("resume uploaded",
		zap.String(logger.FieldTask, resp.TaskID),
		zap.String("filename", resp.Filename),
	)

	if noWait, _ := cmd.Flags().GetBool("no-wait"); noWait {
		return
	}

	watch(ctx, client, resp.TaskID, config, zlog)
}

// watch follows the ingestion task until it finishes, logging every status
// transition on the way.
func watch(ctx context.Context, client *talent.Client, taskID string, config *Config, zlog *zap.Logger) {
	poller := ingest.New(client, config.Upload.PollInterval, zlog)
	task := poller.Start(ctx, taskID)
	defer task.Stop()

	for update := range task.Updates() {
		if update.Err != nil {
			// The task state is unknown here. This is not the same as the
			// task itself failing.
			zlog.Fatal("ingestion status unknown, polling stopped",
				zap.String(logger.FieldTask, taskID),
				zap.Error(update.Err),
			)
		}

		switch update.Status {
		case talent.TaskSuccess:
			zlog.Info("resume processed and indexed", zap.String(logger.FieldTask, taskID))
		case talent.TaskFailure:
			zlog.Fatal("resume processing failed",
				zap.String(logger.FieldTask, taskID),
				zap.String("detail", update.Detail),
			)
		default:
			zlog.Info("ingestion in progress",
				zap.String(logger.FieldTask, taskID),
				zap.String("status", string(update.Status)),
			)
		}
	}
}
