package controller

import (
	"net/http"

	"github.com/cs23b1093/gigflow/internal/entity"
	"github.com/cs23b1093/gigflow/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type gigRoutesHandler struct {
	gigService service.Gig
	validate   *validator.Validate
}

func newGigRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate, identity echo.MiddlewareFunc) *gigRoutesHandler {
	h := &gigRoutesHandler{gigService: services.Gig, validate: v}

	gigs := outer.Group("/gigs", identity)
	gigs.POST("", h.PostGig)
	gigs.GET("", h.GetOpenGigs)
	gigs.GET("/my-gigs", h.GetMyGigs)
	gigs.GET("/:id", h.GetGig)
	gigs.PUT("/:id", h.UpdateGig)
	gigs.DELETE("/:id", h.DeleteGig)

	return h
}

type postGigInput struct {
	Title       string  `json:"title" validate:"required,min=5,max=100"`
	Description string  `json:"description" validate:"required,min=20,max=2000"`
	Budget      float64 `json:"budget" validate:"required,gt=0,lte=1000000"`
}

// /gigs
func (h *gigRoutesHandler) PostGig(c echo.Context) error {
	var input postGigInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	gig, err := h.gigService.CreateGig(c.Request().Context(), &entity.CreateGigInput{
		Title: input.Title, Description: input.Description, Budget: input.Budget,
		OwnerId: callerId(c),
	})
	if err == nil {
		return c.JSON(http.StatusCreated, gig)
	}

	return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
}

type getOpenGigsInput struct {
	Search    string `query:"search" validate:"max=100"`
	Page      int    `query:"page" validate:"gte=1"`
	Limit     int    `query:"limit" validate:"gte=1,lte=50"`
	SortBy    string `query:"sortBy" validate:"omitempty,oneof=createdAt budget"`
	SortOrder string `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

// /gigs
func (h *gigRoutesHandler) GetOpenGigs(c echo.Context) error {
	input := getOpenGigsInput{Page: defaultPage, Limit: defaultLimit, SortBy: "createdAt", SortOrder: "desc"}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	sortColumn := "created_at"
	if input.SortBy == "budget" {
		sortColumn = "budget"
	}

	pg := entity.NewPaginationInput(input.Limit, (input.Page-1)*input.Limit)
	gigs, err := h.gigService.GetOpenGigs(c.Request().Context(), input.Search, pg,
		entity.NewSortInput(sortColumn, input.SortOrder))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}

	return c.JSON(http.StatusOK, gigs)
}

type getMyGigsInput struct {
	Page   int    `query:"page" validate:"gte=1"`
	Limit  int    `query:"limit" validate:"gte=1,lte=50"`
	Status string `query:"status" validate:"omitempty,oneof=open assigned"`
}

// /gigs/my-gigs
func (h *gigRoutesHandler) GetMyGigs(c echo.Context) error {
	input := getMyGigsInput{Page: defaultPage, Limit: defaultLimit}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	pg := entity.NewPaginationInput(input.Limit, (input.Page-1)*input.Limit)
	gigs, err := h.gigService.GetUserGigs(c.Request().Context(), callerId(c), input.Status, pg)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}

	return c.JSON(http.StatusOK, gigs)
}

// /gigs/:id
func (h *gigRoutesHandler) GetGig(c echo.Context) error {
	gig, err := h.gigService.GetGigById(c.Request().Context(), c.Param("id"))
	if err == nil {
		return c.JSON(http.StatusOK, gig)
	}

	switch err {
	case service.ErrGigNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{"There is no gig with given id"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}
}

type updateGigInput struct {
	Title       string  `json:"title" validate:"omitempty,min=5,max=100"`
	Description string  `json:"description" validate:"omitempty,min=20,max=2000"`
	Budget      float64 `json:"budget" validate:"omitempty,gt=0,lte=1000000"`
}

// /gigs/:id
func (h *gigRoutesHandler) UpdateGig(c echo.Context) error {
	var input updateGigInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	gig, err := h.gigService.UpdateGigById(c.Request().Context(), c.Param("id"), callerId(c), &entity.UpdateGigInput{
		Title: input.Title, Description: input.Description, Budget: input.Budget,
	})
	if err == nil {
		return c.JSON(http.StatusOK, gig)
	}

	switch err {
	case service.ErrGigNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{"There is no gig with given id"})
	case service.ErrNotGigOwner:
		return c.JSON(http.StatusForbidden, errorResponse{"You can only update your own gigs"})
	case service.ErrGigNotOpen:
		return c.JSON(http.StatusBadRequest, errorResponse{"Cannot update assigned gigs"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}
}

// /gigs/:id
func (h *gigRoutesHandler) DeleteGig(c echo.Context) error {
	err := h.gigService.DeleteGigById(c.Request().Context(), c.Param("id"), callerId(c))
	if err == nil {
		return c.JSON(http.StatusOK, map[string]string{"message": "Gig deleted successfully"})
	}

	switch err {
	case service.ErrGigNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{"There is no gig with given id"})
	case service.ErrNotGigOwner:
		return c.JSON(http.StatusForbidden, errorResponse{"You can only delete your own gigs"})
	case service.ErrGigNotOpen:
		return c.JSON(http.StatusBadRequest, errorResponse{"Cannot delete assigned gigs"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}
}
