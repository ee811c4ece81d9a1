package emotion

import (
	"fmt"
	"net/http"
	"strconv"

	model "github.com/zhouzirui/emotion-detector/internal/model/emotion"
	emotionservice "github.com/zhouzirui/emotion-detector/internal/service/emotion"
)

const (
	MsgInvalidText   = "Invalid text! Please try again!"
	MsgUnreachable   = "Emotion provider is unreachable. Please try again later."
	MsgProviderError = "Emotion provider returned an error. Please try again later."
	MsgMalformed     = "Emotion provider returned an unexpected response. Please try again later."
	MsgUnexpected    = "Emotion analysis failed. Please try again later."
)

// FormatMessage renders the user-facing sentence with all five scores and the dominant emotion.
func FormatMessage(s model.Scores) string {
	return fmt.Sprintf(
		"For the given statement, the system response is 'anger': %s, 'disgust': %s, 'fear': %s, 'joy': %s, and 'sadness': %s. The dominant emotion is %s.",
		formatScore(s.Anger),
		formatScore(s.Disgust),
		formatScore(s.Fear),
		formatScore(s.Joy),
		formatScore(s.Sadness),
		s.DominantEmotion,
	)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// StatusFor maps an analysis error to the HTTP status and message shown to the user.
// Input problems are 400; provider and transport problems are 500.
func StatusFor(err error) (int, string) {
	failure, ok := emotionservice.AsFailure(err)
	if !ok {
		return http.StatusInternalServerError, MsgUnexpected
	}

	switch failure.Kind {
	case emotionservice.KindEmptyInput:
		return http.StatusBadRequest, MsgInvalidText
	case emotionservice.KindNetworkError:
		return http.StatusInternalServerError, MsgUnreachable
	case emotionservice.KindProviderError:
		return http.StatusInternalServerError, MsgProviderError
	case emotionservice.KindMalformedResponse:
		return http.StatusInternalServerError, MsgMalformed
	default:
		return http.StatusInternalServerError, MsgUnexpected
	}
}
