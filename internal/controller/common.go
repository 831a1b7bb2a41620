package controller

import (
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/cs23b1093/gigflow/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 50

	identityHeader = "X-User-Id"
	callerIdKey    = "callerId"
	callerNameKey  = "callerName"
)

type errorResponse struct {
	Reason string `json:"reason"`
}

type paginationOutput struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Total       int `json:"total"`
	Limit       int `json:"limit"`
}

func newPaginationOutput(page, limit, total int) paginationOutput {
	totalPages := (total + limit - 1) / limit

	return paginationOutput{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		Limit:       limit,
	}
}

// newIdentityMiddleware resolves the authenticated principal. Session
// issuance is external: requests present the principal's id in the
// X-User-Id header and the middleware verifies it against the user store.
func newIdentityMiddleware(users service.User) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(identityHeader)
			if id == "" {
				return c.JSON(http.StatusUnauthorized, errorResponse{"Authentication required: pass your user id in the " + identityHeader + " header"})
			}

			user, err := users.GetUserById(c.Request().Context(), id)
			if err != nil {
				if err == service.ErrUserNotFound {
					return c.JSON(http.StatusUnauthorized, errorResponse{"Unknown user"})
				}

				return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
			}

			c.Set(callerIdKey, user.Id)
			c.Set(callerNameKey, user.Name)

			return next(c)
		}
	}
}

func callerId(c echo.Context) string {
	id, _ := c.Get(callerIdKey).(string)
	return id
}

// requestLogger logs basic request details and latency.
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		log.Printf(
			"request method=%s path=%s status=%d duration=%s",
			c.Request().Method,
			c.Request().URL.Path,
			c.Response().Status,
			time.Since(start),
		)

		return err
	}
}

func getAllErrorMessages(err error) string {
	var builder strings.Builder
	for _, fe := range err.(validator.ValidationErrors) {
		message := fmt.Sprintf("'%s': %s\n", fe.Field(), getMessage(fe))
		builder.WriteString(message)
	}

	return builder.String()
}

func getMessage(fe validator.FieldError) string {
	s, f := "", float64(0)
	if fe.Type() == reflect.TypeOf(s) {
		return getMessageForString(fe)
	}

	if fe.Type() == reflect.TypeOf(f) || fe.Type() == reflect.TypeOf(0) || fe.Type() == reflect.TypeOf(int32(0)) {
		return getMessageForNumber(fe)
	}

	return "incorrect value passed"
}

func getMessageForNumber(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "should be less or equal than " + fe.Param()
	case "gte", "min":
		return "should be greater or equal than " + fe.Param()
	case "gt":
		return "should be greater than " + fe.Param()
	}

	return "incorrect value passed"
}

func getMessageForString(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "length should be less or equal than " + fe.Param()
	case "gte", "min":
		return "length should be greater or equal than " + fe.Param()
	case "oneof":
		return "should have value in: " + fe.Param()
	case "email":
		return "should be a valid email address"
	}

	return "incorrect value passed"
}
