package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zhouzirui/emotion-detector/internal/config"
	handlerEmotion "github.com/zhouzirui/emotion-detector/internal/handler/emotion"
	model "github.com/zhouzirui/emotion-detector/internal/model/emotion"
	emotionservice "github.com/zhouzirui/emotion-detector/internal/service/emotion"
)

type analyzeFunc func(ctx context.Context, text string) (model.Scores, error)

type analyzeOptions struct {
	jsonOutput bool
	timeout    time.Duration
	url        string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "emotioncli",
		Short:         "Run emotion detection from the command line.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newAnalyzeCmd(nil))
	return root
}

// newAnalyzeCmd builds the analyze command. A nil analyze builds a provider from the environment.
func newAnalyzeCmd(analyze analyzeFunc) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Score a piece of text on anger, disgust, fear, joy and sadness.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")

			run := analyze
			if run == nil {
				svc, err := serviceFromEnv(cmd.Context(), opts)
				if err != nil {
					return err
				}
				run = svc.Analyze
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			scores, err := run(ctx, text)
			if err != nil {
				_, message := handlerEmotion.StatusFor(err)
				return fmt.Errorf("%s (%w)", message, err)
			}

			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), scores)
			}
			return printTable(cmd.OutOrStdout(), scores)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "print the raw score record as JSON")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "override EMOTION_TIMEOUT")
	cmd.Flags().StringVar(&opts.url, "url", "", "override EMOTION_BASE_URL")
	return cmd
}

func serviceFromEnv(ctx context.Context, opts *analyzeOptions) (*emotionservice.Service, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	v := config.NewViper()
	if opts.url != "" {
		v.Set("EMOTION_BASE_URL", opts.url)
	}
	if opts.timeout > 0 {
		v.Set("EMOTION_TIMEOUT", int((opts.timeout+time.Second-1)/time.Second))
	}

	cfg, err := config.LoadFrom(v)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	provider, err := emotionservice.NewProviderFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return emotionservice.NewService(provider, emotionservice.Config{Timeout: cfg.Provider.Timeout}, zap.NewNop().Sugar(), nil), nil
}
