package controller

import (
	"github.com/cs23b1093/gigflow/internal/notify"
	"github.com/cs23b1093/gigflow/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services, hub *notify.Hub) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	handler.Use(requestLogger)

	identity := newIdentityMiddleware(services.User)

	api := handler.Group("/api")
	newDiagnosticRoutesHandler(api, services)
	newAuthRoutesHandler(api, services, validate, identity)
	newGigRoutesHandler(api, services, validate, identity)
	newBidRoutesHandler(api, services, validate, identity)

	newRealtimeHandler(handler, hub, identity)
}
