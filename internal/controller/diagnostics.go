package controller

import (
	"net/http"

	"github.com/cs23b1093/gigflow/internal/service"

	"github.com/labstack/echo"
)

type diagnosticRoutesHandler struct {
	diagnosticsService service.Diagnostics
}

func newDiagnosticRoutesHandler(outer *echo.Group, services *service.Services) *diagnosticRoutesHandler {
	h := &diagnosticRoutesHandler{diagnosticsService: services.Diagnostics}
	outer.GET("/ping", h.Ping)

	return h
}

// /ping
func (h *diagnosticRoutesHandler) Ping(c echo.Context) error {
	if err := h.diagnosticsService.Ping(); err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{"Database is not reachable"})
	}

	return c.String(http.StatusOK, "ok")
}
