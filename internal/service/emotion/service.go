package emotion

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zhouzirui/emotion-detector/internal/metrics"
	model "github.com/zhouzirui/emotion-detector/internal/model/emotion"
)

const defaultTimeout = 10 * time.Second

// Config 控制情绪分析服务的行为。
type Config struct {
	Timeout time.Duration
}

// Service validates input, calls the provider exactly once and reports the outcome.
type Service struct {
	provider Provider
	timeout  time.Duration
	log      *zap.SugaredLogger
	metrics  *metrics.Metrics
}

// NewService 创建情绪分析服务。log and m may be nil.
func NewService(provider Provider, cfg Config, log *zap.SugaredLogger, m *metrics.Metrics) *Service {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{
		provider: provider,
		timeout:  timeout,
		log:      log,
		metrics:  m,
	}
}

// Provider returns the name of the configured provider.
func (s *Service) Provider() string {
	return s.provider.Name()
}

// Analyze returns the five emotion scores for text. Blank text fails with
// KindEmptyInput before any network call; every other error is a *Failure.
// On failure the returned record is model.Empty().
func (s *Service) Analyze(ctx context.Context, text string) (model.Scores, error) {
	providerName := s.provider.Name()

	text = strings.TrimSpace(text)
	if text == "" {
		s.metrics.ObserveAnalysis(providerName, KindEmptyInput.String())
		return model.Empty(), &Failure{Kind: KindEmptyInput}
	}

	analysisID := uuid.NewString()
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	scores, err := s.provider.Predict(ctx, text)
	elapsed := time.Since(started)
	s.metrics.ObserveProviderCall(providerName, elapsed)

	if err != nil {
		failure, ok := AsFailure(err)
		if !ok {
			failure = networkFailure(err)
		}
		s.metrics.ObserveAnalysis(providerName, failure.Kind.String())
		s.log.Warnw("[emotion] analysis failed",
			"analysis_id", analysisID,
			"provider", providerName,
			"kind", failure.Kind.String(),
			"status", failure.StatusCode,
			"elapsed", elapsed,
			"error", err,
		)
		return model.Empty(), failure
	}

	s.metrics.ObserveAnalysis(providerName, metrics.OutcomeSuccess)
	s.metrics.ObserveDominant(scores.DominantEmotion)
	s.log.Infow("[emotion] analysis completed",
		"analysis_id", analysisID,
		"provider", providerName,
		"dominant", scores.DominantEmotion,
		"chars", len(text),
		"elapsed", elapsed,
	)
	return scores, nil
}
