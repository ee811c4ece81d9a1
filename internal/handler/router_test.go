package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/zhouzirui/emotion-detector/internal/metrics"
	model "github.com/zhouzirui/emotion-detector/internal/model/emotion"
)

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(context.Context, string) (model.Scores, error) {
	return model.New(0.1, 0.2, 0.3, 0.4, 0.5), nil
}

func newTestRouter() http.Handler {
	reg := prometheus.NewRegistry()
	m := metrics.MustNew(reg)
	m.ObserveAnalysis("watson", metrics.OutcomeSuccess)
	return NewRouter(stubAnalyzer{}, "watson", reg, nil)
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouterServesHomePage(t *testing.T) {
	rec := get(newTestRouter(), "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Emotion Detector</title>")
	assert.Contains(t, rec.Body.String(), "/static/mywebscript.js")
}

func TestRouterServesStaticScript(t *testing.T) {
	rec := get(newTestRouter(), "/static/mywebscript.js")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "function RunSentimentAnalysis")
}

func TestRouterEmotionDetector(t *testing.T) {
	rec := get(newTestRouter(), "/emotionDetector?textToAnalyze=hello")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "The dominant emotion is sadness.")
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterHealthAndMetrics(t *testing.T) {
	r := newTestRouter()

	health := get(r, "/healthz")
	assert.Equal(t, http.StatusOK, health.Code)
	assert.JSONEq(t, `{"status":"ok","provider":"watson"}`, health.Body.String())

	m := get(r, "/metrics")
	assert.Equal(t, http.StatusOK, m.Code)
	assert.Contains(t, m.Body.String(), `emotion_detector_analyses_total{outcome="success",provider="watson"} 1`)
}
