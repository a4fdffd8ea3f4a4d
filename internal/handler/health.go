package handler // declare the package name; contains HTTP handlers

import (
    "net/http" // net/http provides status codes and response helpers

    "github.com/labstack/echo/v4" // echo is the web framework used for this project

    "github.com/iliyamo/greeting-service/internal/readiness"
)

// Health is the liveness probe.  It answers "OK" with 200 and touches no
// external resource, so it only fails when the process itself is gone.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "OK")
}

// ReadyHandler serves the readiness probe over a set of dependency checks.
type ReadyHandler struct {
    probe *readiness.Probe
}

func NewReadyHandler(p *readiness.Probe) *ReadyHandler {
    return &ReadyHandler{probe: p}
}

// Ready answers 200 "OK" when every configured backend responds and 503
// with the failing backends otherwise.
func (h *ReadyHandler) Ready(c echo.Context) error {
    rep := h.probe.Run(c.Request().Context())
    if !rep.Ready() {
        return c.String(http.StatusServiceUnavailable, rep.String())
    }
    return c.String(http.StatusOK, rep.String())
}
