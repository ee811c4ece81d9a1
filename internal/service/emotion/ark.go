package emotion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	model "github.com/zhouzirui/emotion-detector/internal/model/emotion"
)

type classifier interface {
	Invoke(ctx context.Context, input map[string]any, opts ...compose.Option) (*schema.Message, error)
}

// ArkProvider 使用 Ark 大模型对文本进行五维情绪打分。
type ArkProvider struct {
	classifier classifier
}

// NewArkProvider compiles the prompt + chat model chain once; the result is safe for concurrent use.
func NewArkProvider(ctx context.Context, chatModel einomodel.ChatModel) (*ArkProvider, error) {
	if chatModel == nil {
		return nil, errors.New("ark provider requires a chat model")
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(emotionSystemPrompt),
		schema.UserMessage(emotionUserPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile emotion classifier chain: %w", err)
	}

	return &ArkProvider{classifier: runnable}, nil
}

func (p *ArkProvider) Name() string { return "ark" }

// Predict asks the model for the five scores and parses its JSON answer.
func (p *ArkProvider) Predict(ctx context.Context, text string) (model.Scores, error) {
	msg, err := p.classifier.Invoke(ctx, map[string]any{"text": text})
	if err != nil {
		return model.Scores{}, networkFailure(err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return model.Scores{}, malformedFailure(errors.New("empty classifier output"))
	}

	return parseClassifierOutput(msg.Content)
}

// parseClassifierOutput 解析大模型返回的 JSON，允许前后带有多余文本。
func parseClassifierOutput(content string) (model.Scores, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return model.Scores{}, malformedFailure(errors.New("missing json object"))
	}

	payload := map[string]float64{}
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &payload); err != nil {
		return model.Scores{}, malformedFailure(err)
	}

	for key, val := range payload {
		payload[key] = clampScore(val)
	}
	return model.FromMap(payload), nil
}

func clampScore(val float64) float64 {
	if val < 0 {
		return 0
	}
	if val > 1 {
		return 1
	}
	return val
}

const emotionSystemPrompt = "You are an emotion classifier. Score the user's text on five emotions: anger, disgust, fear, joy and sadness. " +
	"Each score is a number between 0 and 1. Reply with a single JSON object whose keys are exactly the five emotion names and whose values are the scores. Do not output any other text."

const emotionUserPrompt = "Text:\n{text}"
