package emotion

import (
	"context"

	model "github.com/zhouzirui/emotion-detector/internal/model/emotion"
)

// Provider performs one emotion prediction against a remote service.
// Implementations return *Failure values for every error.
type Provider interface {
	Name() string
	Predict(ctx context.Context, text string) (model.Scores, error)
}
