package api

import (
	"net/http"
	"time"

	"StockLens/internal/domain/failure"
	"StockLens/internal/domain/models"
	"StockLens/internal/usecase"
	xhttp "StockLens/pkg/http"
	xlogger "StockLens/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// HeaderSessionID carries the session identifier on every session-scoped call.
const HeaderSessionID = "X-Session-ID"

// AnalysisEchoHandler exposes the session and analysis flows over HTTP.
type AnalysisEchoHandler struct {
	logger   *xlogger.Logger
	sessions *usecase.SessionManager
	registry *usecase.Registry
	orch     *usecase.Orchestrator
	upgrader websocket.Upgrader
}

func NewAnalysisEchoHandler(logger *xlogger.Logger, sessions *usecase.SessionManager, registry *usecase.Registry, orch *usecase.Orchestrator) *AnalysisEchoHandler {
	return &AnalysisEchoHandler{
		logger:   logger,
		sessions: sessions,
		registry: registry,
		orch:     orch,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (h *AnalysisEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/modules", h.Modules)
	g.POST("/session/credential", h.SubmitCredential)
	g.POST("/session/module", h.SelectModule)
	g.POST("/session/override", h.GrantOverride)
	g.DELETE("/session", h.Reset)
	g.POST("/analyze", h.Analyze)
	g.GET("/analyze/ws", h.AnalyzeStream)
}

func (h *AnalysisEchoHandler) Modules(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.registry.List())
}

func (h *AnalysisEchoHandler) SubmitCredential(c echo.Context) error {
	req := &models.CredentialRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	sid := sessionID(c)
	if sid == "" {
		sid = h.sessions.NewSession()
	}

	cred, err := h.sessions.SubmitCredential(c.Request().Context(), sid, req.APIKey, req.AdminCode)
	if err != nil {
		h.logger.Warn("submit credential failed", xlogger.String("kind", string(failure.KindOf(err))))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	c.Response().Header().Set(HeaderSessionID, sid)
	return xhttp.CreatedResponse(c, models.SessionResponse{
		SessionID:       sid,
		UnlimitedAccess: cred.UnlimitedAccess,
		ExpiresAt:       cred.ExpiresAt,
	})
}

func (h *AnalysisEchoHandler) SelectModule(c echo.Context) error {
	req := &models.ModuleRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	sid := sessionID(c)

	sel, err := h.sessions.SelectModule(c.Request().Context(), sid, req.ModuleID, req.AdminCode)
	if err != nil {
		h.logger.Warn("select module failed",
			xlogger.String("module", req.ModuleID),
			xlogger.String("kind", string(failure.KindOf(err))),
		)
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, models.SessionResponse{
		SessionID:       sid,
		UnlimitedAccess: sel.UnlimitedAccess,
		ExpiresAt:       sel.Credential.ExpiresAt,
		ModuleID:        sel.Module.ID,
	})
}

func (h *AnalysisEchoHandler) GrantOverride(c echo.Context) error {
	req := &models.OverrideRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	sid := sessionID(c)

	cred, err := h.sessions.GrantOverride(sid, req.AdminCode)
	if err != nil {
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, models.SessionResponse{
		SessionID:       sid,
		UnlimitedAccess: cred.UnlimitedAccess,
		ExpiresAt:       cred.ExpiresAt,
	})
}

func (h *AnalysisEchoHandler) Reset(c echo.Context) error {
	if sid := sessionID(c); sid != "" {
		h.sessions.Reset(sid)
	}
	return xhttp.NoContentResponse(c)
}

func (h *AnalysisEchoHandler) Analyze(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	sel, err := h.sessions.Active(sessionID(c))
	if err != nil {
		return xhttp.AppErrorResponse(c, toAppError(err))
	}

	progress := &models.ProgressRecorder{}
	res, err := h.orch.AnalyzeSelected(c.Request().Context(), req.Symbol, sel, progress)
	if err != nil {
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, models.AnalyzeResponse{
		Summary:  res.Summary,
		Analysis: res.Analysis,
		Context:  res.SerializedContext,
		Progress: progress.Events,
	})
}

// AnalyzeStream runs one analysis and pushes every progress event, then the
// result or the error, as JSON frames over a websocket.
func (h *AnalysisEchoHandler) AnalyzeStream(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	sel, err := h.sessions.Active(sessionID(c))
	if err != nil {
		return xhttp.AppErrorResponse(c, toAppError(err))
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	stream := &frameWriter{conn: conn, logger: h.logger}
	res, err := h.orch.AnalyzeSelected(c.Request().Context(), req.Symbol, sel, stream)
	if err != nil {
		stream.write(models.StreamFrame{Type: "error", Error: streamError(err)})
	} else {
		stream.write(models.StreamFrame{Type: "result", Result: &res})
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return nil
}

// frameWriter forwards progress events to the socket. A failed write only
// stops further writes; the pipeline keeps running to completion.
type frameWriter struct {
	conn   *websocket.Conn
	logger *xlogger.Logger
	broken bool
}

func (w *frameWriter) OnProgress(ev models.ProgressEvent) {
	w.write(models.StreamFrame{Type: "progress", Progress: &ev})
}

func (w *frameWriter) write(f models.StreamFrame) {
	if w.broken {
		return
	}
	_ = w.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := w.conn.WriteJSON(f); err != nil {
		w.broken = true
		w.logger.Debug("websocket write failed", xlogger.Error(err))
	}
}

func sessionID(c echo.Context) string {
	if sid := c.Request().Header.Get(HeaderSessionID); sid != "" {
		return sid
	}
	return c.QueryParam("session")
}
