package emotion

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	model "github.com/zhouzirui/emotion-detector/internal/model/emotion"
	"github.com/zhouzirui/emotion-detector/pkg/utils"
)

// Analyzer is the part of the emotion service the handlers depend on.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (model.Scores, error)
}

// Handler 情绪检测的HTTP处理器
type Handler struct {
	analyzer Analyzer
	log      *zap.SugaredLogger
	upgrader websocket.Upgrader
}

// New 创建情绪检测处理器
func New(analyzer Analyzer, log *zap.SugaredLogger) *Handler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Handler{
		analyzer: analyzer,
		log:      log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册情绪检测相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/emotionDetector", h.handleDetect)
	r.Get("/ws/emotionDetector", h.handleWebSocket)
}

// handleDetect serves GET /emotionDetector?textToAnalyze=...
func (h *Handler) handleDetect(w http.ResponseWriter, r *http.Request) {
	text := strings.TrimSpace(r.URL.Query().Get("textToAnalyze"))
	if text == "" {
		utils.RespondMessage(w, http.StatusBadRequest, MsgInvalidText)
		return
	}

	scores, err := h.analyzer.Analyze(r.Context(), text)
	if err != nil {
		status, message := StatusFor(err)
		h.log.Infow("[emotion] request failed", "status", status, "error", err)
		utils.RespondMessage(w, status, message)
		return
	}

	utils.RespondMessage(w, http.StatusOK, FormatMessage(scores))
}
