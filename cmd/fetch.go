package cmd

import (
	"context"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"careertracker/internal/logger"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run a single aggregation pass over the configured sources",
	Run: func(cmd *cobra.Command, _ []string) {
		runFetch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation before running the pass")
}

func runFetch(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the careertracker", zap.String("version", version))

	if cmd.Flag("yes").Value.String() == "false" {
		prompt := promptui.Select{
			Label: "Run a fetch pass against all configured sources?",
			Items: []string{PromptYes, PromptNo},
		}
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if action == PromptNo {
			logger.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}
	}

	app, err := buildApplication(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the application", zap.Error(err))
	}
	defer app.close()

	summary, err := app.runner.Run(ctx)
	if err != nil {
		logger.Fatal("fetch pass failed", zap.Error(err))
	}

	logger.Info("done", zap.Int("new_postings", summary.NewPostings))
}
