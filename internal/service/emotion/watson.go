package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	model "github.com/zhouzirui/emotion-detector/internal/model/emotion"
)

const (
	watsonModelHeader = "grpc-metadata-mm-model-id"
	maxResponseBytes  = 1 << 20
)

// WatsonConfig describes the Watson NLP EmotionPredict endpoint.
type WatsonConfig struct {
	URL     string
	ModelID string
	APIKey  string
}

// WatsonProvider calls the Watson NLP EmotionPredict REST endpoint.
type WatsonProvider struct {
	url     string
	modelID string
	apiKey  string
	client  *http.Client
}

// NewWatsonProvider creates a provider. A nil client falls back to http.DefaultClient;
// the per-call timeout is applied by Service through the request context.
func NewWatsonProvider(cfg WatsonConfig, client *http.Client) *WatsonProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &WatsonProvider{
		url:     strings.TrimSpace(cfg.URL),
		modelID: strings.TrimSpace(cfg.ModelID),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		client:  client,
	}
}

func (p *WatsonProvider) Name() string { return "watson" }

type watsonRequest struct {
	RawDocument watsonDocument `json:"raw_document"`
}

type watsonDocument struct {
	Text string `json:"text"`
}

type watsonResponse struct {
	EmotionPredictions []struct {
		Emotion map[string]float64 `json:"emotion"`
	} `json:"emotionPredictions"`
}

// Predict sends text to Watson and normalizes the first prediction.
func (p *WatsonProvider) Predict(ctx context.Context, text string) (model.Scores, error) {
	body, err := json.Marshal(watsonRequest{RawDocument: watsonDocument{Text: text}})
	if err != nil {
		return model.Scores{}, fmt.Errorf("encode watson request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return model.Scores{}, networkFailure(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if p.modelID != "" {
		req.Header.Set(watsonModelHeader, p.modelID)
	}
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return model.Scores{}, networkFailure(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return model.Scores{}, networkFailure(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return model.Scores{}, providerFailure(resp.StatusCode, nil)
	}

	return parseWatsonResponse(payload)
}

func parseWatsonResponse(payload []byte) (model.Scores, error) {
	var decoded watsonResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return model.Scores{}, malformedFailure(err)
	}
	if len(decoded.EmotionPredictions) == 0 {
		return model.Scores{}, malformedFailure(errors.New("missing emotionPredictions"))
	}

	emotion := decoded.EmotionPredictions[0].Emotion
	if emotion == nil {
		return model.Scores{}, malformedFailure(errors.New("missing emotion scores"))
	}

	return model.FromMap(emotion), nil
}
