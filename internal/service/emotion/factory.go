package emotion

import (
	"context"
	"net/http"

	"github.com/zhouzirui/emotion-detector/internal/config"
)

// NewProviderFromConfig builds the provider selected by EMOTION_PROVIDER.
func NewProviderFromConfig(ctx context.Context, cfg *config.Config) (Provider, error) {
	if cfg.Provider.Name == config.ProviderArk {
		chatModel, err := cfg.Ark.NewChatModel(ctx)
		if err != nil {
			return nil, err
		}
		return NewArkProvider(ctx, chatModel)
	}

	return NewWatsonProvider(WatsonConfig{
		URL:     cfg.Provider.BaseURL,
		ModelID: cfg.Provider.ModelID,
		APIKey:  cfg.Provider.APIKey,
	}, &http.Client{Timeout: cfg.Provider.Timeout}), nil
}
