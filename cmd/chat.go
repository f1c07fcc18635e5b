package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentwire/scout/internal/chat"
	"github.com/talentwire/scout/internal/logger"
	"github.com/talentwire/scout/internal/talent"
	"github.com/talentwire/scout/internal/util"
)

const (
	PromptContinue = "Continue searching"
	PromptRate     = "Rate a result"
	PromptClear    = "Clear conversation"
	PromptExit     = "Exit"
	PromptBack     = "back"
	PromptLike     = "Like"
	PromptDislike  = "Dislike"

	maxExplanation = 140
)

var errExit = errors.New("exit requested")

var actionPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptContinue, PromptRate, PromptClear, PromptExit},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive search conversation",
	Run: func(cmd *cobra.Command, _ []string) {
		runChat(cmd)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().IntP("top-k", "k", talent.DefaultTopK, "number of profiles requested per search")

	viper.BindPFlag("search.top-k", chatCmd.Flags().Lookup("top-k"))
}

// runChat drives the conversation loop: read an utterance, submit it, render
// the ranked results, then offer rating/clearing until the user exits.
func runChat(_ *cobra.Command) {
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

	fs := afero.NewOsFs()
	dir := stateDir(config)

	sessions := chat.NewSessionStore(fs, dir, zlog)
	conversation := chat.NewLog(fs, dir, zlog)

	zlog = logger.WithSession(zlog, sessions.GetOrCreate())

	if conversation.Len() > 0 {
		zlog.Info("restored conversation", zap.Int("messages", conversation.Len()))
	}

	orch := chat.NewOrchestrator(client, sessions, conversation, zlog, viper.GetInt("search.top-k"))
	recorder := chat.NewRecorder(client, sessions, conversation, client.UserAgent, zlog)

	zlog.Info("starting the scout chat", zap.String("version", version), zap.String("backend", client.APIURL))

	input := promptui.Prompt{Label: "search"}

	for {
		utterance, err := input.Run()
		if err != nil {
			zlog.Info("exiting", zap.Error(err))
			return
		}

		if utterance == "" {
			if err := handleAction(conversation, recorder, zlog); err != nil {
				if errors.Is(err, errExit) {
					return
				}
				zlog.Fatal("exiting", zap.Error(err))
			}
			continue
		}

		outcome, err := orch.Submit(utterance)
		if err != nil {
			zlog.Warn("search failed", zap.Error(err))
			continue
		}

		printOutcome(outcome)
	}
}

func handleAction(conversation *chat.Log, recorder *chat.Recorder, zlog *zap.Logger) error {
	_, action, err := actionPrompt.Run()
	if err != nil {
		return err
	}

	switch action {
	case PromptContinue:
		return nil
	case PromptRate:
		return rateResult(conversation, recorder)
	case PromptClear:
		if err := conversation.Clear(); err != nil {
			return fmt.Errorf("clearing conversation: %w", err)
		}
		zlog.Info("conversation cleared", zap.String("note", "session id is kept"))
		return nil
	case PromptExit:
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// rateResult lets the user pick one result from the latest response and
// submit a like/dislike for it.
func rateResult(conversation *chat.Log, recorder *chat.Recorder) error {
	results := lastResults(conversation)
	if len(results) == 0 {
		fmt.Println("nothing to rate yet")
		return nil
	}

	items := make([]string, 0, len(results)+1)
	for i, result := range results {
		items = append(items, fmt.Sprintf("%d. %s (%s)", i+1, result.Profile.Name(), displayScore(result.Score)))
	}

	resultPrompt := promptui.Select{
		Label: "Choose a result and press ENTER",
		Items: append(items, PromptBack),
	}

	idx, selected, err := resultPrompt.Run()
	if err != nil {
		return err
	}

	if selected == PromptBack {
		return nil
	}

	judgmentPrompt := promptui.Select{
		Label: "Your judgment",
		Items: []string{PromptLike, PromptDislike},
	}

	_, judgment, err := judgmentPrompt.Run()
	if err != nil {
		return err
	}

	feedbackType := talent.FeedbackLike
	if judgment == PromptDislike {
		feedbackType = talent.FeedbackDislike
	}

	result := results[idx]
	if err := recorder.Record(result.Profile.ProfileID, result.FeedbackID, feedbackType); err != nil {
		// Feedback is fire-and-forget; a failed submit must not end the chat.
		fmt.Println("feedback could not be submitted, please try again")
		return nil
	}

	fmt.Println("thanks for the feedback!")
	return nil
}

// lastResults returns the result list of the most recent response message.
func lastResults(conversation *chat.Log) []talent.ResultItem {
	messages := conversation.Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Kind == chat.KindResponse && len(messages[i].Results) > 0 {
			return messages[i].Results
		}
	}

	return nil
}

func printOutcome(outcome *chat.Outcome) {
	resp := outcome.Response

	fmt.Println()
	if resp.Message != "" {
		fmt.Println(resp.Message)
	}
	if resp.GeneratedSummary != "" {
		fmt.Println(resp.GeneratedSummary)
	}

	for i, result := range resp.Results {
		fmt.Printf("%2d. %s  score=%s\n", i+1, result.Profile.Name(), displayScore(result.Score))
		if result.Explanation != "" {
			fmt.Printf("    %s\n", util.TruncateForLog(result.Explanation, maxExplanation))
		}
	}

	if len(resp.Results) == 0 {
		fmt.Println("no matching profiles")
	}
	fmt.Println()
}

// displayScore clamps the relevance score for display only. The raw value is
// whatever the ranker produced and may fall outside [0, 1].
func displayScore(score float64) string {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return fmt.Sprintf("%.0f%%", score*100)
}
