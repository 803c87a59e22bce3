package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"StayPulse/internal/domain/models"
	icache "StayPulse/internal/service/cache"
	dashmetrics "StayPulse/internal/service/metrics"
	"StayPulse/internal/service/ratelimit"
	"StayPulse/internal/service/stream"
	"StayPulse/internal/usecase"
	xhttp "StayPulse/pkg/http"
	xlogger "StayPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardEchoHandler exposes the dashboard over Echo.
type DashboardEchoHandler struct {
	logger   *xlogger.Logger
	dash     *usecase.Dashboard
	hub      *stream.Hub
	cache    icache.BytesCache
	cacheTTL time.Duration
	rl       *ratelimit.Limiter
}

func NewDashboardEchoHandler(logger *xlogger.Logger, dash *usecase.Dashboard, hub *stream.Hub) *DashboardEchoHandler {
	dashmetrics.Register()
	return &DashboardEchoHandler{
		logger:   logger,
		dash:     dash,
		hub:      hub,
		cacheTTL: time.Minute,
		rl:       ratelimit.New(),
	}
}

// SetCache enables per-filter snapshot caching for read-only queries.
func (h *DashboardEchoHandler) SetCache(c icache.BytesCache, ttl time.Duration) {
	h.cache = c
	if ttl > 0 {
		h.cacheTTL = ttl
	}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/dashboard", h.Dashboard)
	g.GET("/neighbourhoods", h.Neighbourhoods)
	g.POST("/filter", h.ApplyFilter)
	g.PUT("/viewport", h.Viewport)
	e.GET("/ws", h.WS)
	e.GET("/healthz", h.Health)
}

// Dashboard returns a snapshot. Without a neighbourhood parameter it serves
// the currently published snapshot; with one it renders that subset without
// moving the filter state machine.
func (h *DashboardEchoHandler) Dashboard(c echo.Context) error {
	start := time.Now()
	defer func() {
		dashmetrics.DashboardLatency.WithLabelValues("dashboard").Observe(time.Since(start).Seconds())
	}()

	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if req.Neighbourhood == "" {
		if snap := h.dash.Current(); snap != nil {
			return xhttp.SuccessResponse(c, snap)
		}
	}

	cacheKey := "snapshot:" + req.Neighbourhood
	if h.cache != nil {
		if b, ok, err := h.cache.GetBytes(cacheKey); err != nil {
			h.logger.Warn("snapshot cache get failed", xlogger.Error(err))
		} else if ok {
			return c.JSONBlob(http.StatusOK, b)
		}
	}

	snap, err := h.dash.Compute(req.Neighbourhood)
	if err != nil {
		return h.filterError(c, "dashboard", err)
	}

	if h.cache != nil {
		if b, err := json.Marshal(xhttp.APIResponse{
			Status:  http.StatusOK,
			Message: http.StatusText(http.StatusOK),
			Data:    snap,
		}); err == nil {
			if err := h.cache.SetBytes(cacheKey, b, h.cacheTTL); err != nil {
				h.logger.Warn("snapshot cache set failed", xlogger.Error(err))
			}
		}
	}
	return xhttp.SuccessResponse(c, snap)
}

// Neighbourhoods returns the dropdown options.
func (h *DashboardEchoHandler) Neighbourhoods(c echo.Context) error {
	opts := h.dash.Neighbourhoods()
	return xhttp.ListResponse(c, opts.Neighbourhoods, int64(opts.TotalListings))
}

// ApplyFilter transitions the filter state machine and broadcasts the new
// snapshot to every subscriber.
func (h *DashboardEchoHandler) ApplyFilter(c echo.Context) error {
	start := time.Now()
	defer func() {
		dashmetrics.DashboardLatency.WithLabelValues("filter").Observe(time.Since(start).Seconds())
	}()

	req := &models.FilterRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if !h.rl.Allow(c.RealIP()+":filter", 5, 2) {
		h.logger.Warn("filter rate_limited", xlogger.String("remote", c.RealIP()))
		return xhttp.TooManyRequestsResponse(c)
	}

	snap, err := h.dash.Apply(c.Request().Context(), req.Neighbourhood)
	if err != nil {
		return h.filterError(c, "filter", err)
	}
	return xhttp.SuccessResponse(c, snap)
}

// Viewport stores the client-reported map camera so it survives later
// filter changes.
func (h *DashboardEchoHandler) Viewport(c echo.Context) error {
	var vp models.Viewport
	if err := c.Bind(&vp); err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}
	h.dash.SetViewport(vp)
	return xhttp.SuccessResponse(c, vp)
}

// WS upgrades the connection and registers a dashboard subscriber.
func (h *DashboardEchoHandler) WS(c echo.Context) error {
	return h.hub.HandleWS(c.Response(), c.Request())
}

// Health reports liveness.
func (h *DashboardEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *DashboardEchoHandler) filterError(c echo.Context, endpoint string, err error) error {
	if errors.Is(err, usecase.ErrUnknownNeighbourhood) {
		return xhttp.NotFoundResponse(c, err.Error())
	}
	dashmetrics.DashboardErrors.WithLabelValues(endpoint).Inc()
	h.logger.Error("dashboard usecase error", xlogger.Error(err))
	return xhttp.AppErrorResponse(c, err)
}
