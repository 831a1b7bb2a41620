package controller

import (
	"net/http"

	"github.com/cs23b1093/gigflow/internal/entity"
	"github.com/cs23b1093/gigflow/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type authRoutesHandler struct {
	userService service.User
	validate    *validator.Validate
}

func newAuthRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate, identity echo.MiddlewareFunc) *authRoutesHandler {
	h := &authRoutesHandler{userService: services.User, validate: v}
	outer.POST("/auth/register", h.Register)
	outer.GET("/auth/me", h.Me, identity)

	return h
}

type registerInput struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email,max=255"`
	Role  string `json:"role" validate:"omitempty,oneof=client freelancer"`
}

// /auth/register
func (h *authRoutesHandler) Register(c echo.Context) error {
	var input registerInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	user, err := h.userService.Register(c.Request().Context(), &entity.RegisterUserInput{
		Name: input.Name, Email: input.Email, Role: input.Role,
	})
	if err == nil {
		return c.JSON(http.StatusCreated, user)
	}

	switch err {
	case service.ErrEmailAlreadyRegistered:
		return c.JSON(http.StatusConflict, errorResponse{"User with this email already exists"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}
}

// /auth/me
func (h *authRoutesHandler) Me(c echo.Context) error {
	user, err := h.userService.GetUserById(c.Request().Context(), callerId(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}

	return c.JSON(http.StatusOK, user)
}
