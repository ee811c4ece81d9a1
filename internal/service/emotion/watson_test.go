package emotion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const joyfulResponse = `{"emotionPredictions":[{"emotion":{"anger":0.01,"disgust":0.01,"fear":0.02,"joy":0.9,"sadness":0.01},"target":"","emotionMentions":[]}],"producerId":{"name":"Ensemble Aggregated Emotion Workflow","version":"0.0.1"}}`

func newWatsonServer(t *testing.T, status int, body string) (*httptest.Server, *[]watsonRequest) {
	t.Helper()
	var seen []watsonRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "emotion_aggregated-workflow_lang_en_stock", r.Header.Get(watsonModelHeader))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		var req watsonRequest
		assert.NoError(t, json.Unmarshal(raw, &req))
		seen = append(seen, req)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(func() {
		srv.Client().CloseIdleConnections()
		srv.Close()
	})
	return srv, &seen
}

func newTestWatson(srv *httptest.Server, apiKey string) *WatsonProvider {
	return NewWatsonProvider(WatsonConfig{
		URL:     srv.URL,
		ModelID: "emotion_aggregated-workflow_lang_en_stock",
		APIKey:  apiKey,
	}, srv.Client())
}

func TestWatsonPredictSuccess(t *testing.T) {
	srv, seen := newWatsonServer(t, http.StatusOK, joyfulResponse)

	scores, err := newTestWatson(srv, "").Predict(context.Background(), "I am so happy today!")
	require.NoError(t, err)

	require.Len(t, *seen, 1)
	assert.Equal(t, "I am so happy today!", (*seen)[0].RawDocument.Text)
	assert.Equal(t, 0.01, scores.Anger)
	assert.Equal(t, 0.01, scores.Disgust)
	assert.Equal(t, 0.02, scores.Fear)
	assert.Equal(t, 0.9, scores.Joy)
	assert.Equal(t, 0.01, scores.Sadness)
	assert.Equal(t, "joy", scores.DominantEmotion)
}

func TestWatsonPredictSendsAPIKey(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, joyfulResponse)
	}))
	defer srv.Close()
	defer srv.Client().CloseIdleConnections()

	_, err := newTestWatson(srv, "token-123").Predict(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-123", auth)
}

func TestWatsonPredictStatusError(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError} {
		srv, _ := newWatsonServer(t, status, `{"code":3,"message":"invalid input"}`)

		_, err := newTestWatson(srv, "").Predict(context.Background(), "text")
		require.Error(t, err)

		failure, ok := AsFailure(err)
		require.True(t, ok)
		assert.Equal(t, KindProviderError, failure.Kind)
		assert.Equal(t, status, failure.StatusCode)
		assert.ErrorIs(t, err, ErrProvider)
		assert.NotContains(t, err.Error(), "invalid input")
	}
}

func TestWatsonPredictMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":            `<html>oops</html>`,
		"no predictions":      `{"producerId":{}}`,
		"empty predictions":   `{"emotionPredictions":[]}`,
		"missing emotion":     `{"emotionPredictions":[{"target":""}]}`,
		"non numeric emotion": `{"emotionPredictions":[{"emotion":{"joy":"high"}}]}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv, _ := newWatsonServer(t, http.StatusOK, body)

			_, err := newTestWatson(srv, "").Predict(context.Background(), "text")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestWatsonPredictMissingKeysDefaultToZero(t *testing.T) {
	srv, _ := newWatsonServer(t, http.StatusOK, `{"emotionPredictions":[{"emotion":{"sadness":0.4}}]}`)

	scores, err := newTestWatson(srv, "").Predict(context.Background(), "text")
	require.NoError(t, err)
	assert.Zero(t, scores.Anger)
	assert.Zero(t, scores.Joy)
	assert.Equal(t, 0.4, scores.Sadness)
	assert.Equal(t, "sadness", scores.DominantEmotion)
}

func TestWatsonPredictNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	provider := NewWatsonProvider(WatsonConfig{URL: url}, &http.Client{})
	_, err := provider.Predict(context.Background(), "text")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
}
