package controller

import (
	"net/http"

	"github.com/cs23b1093/gigflow/internal/entity"
	"github.com/cs23b1093/gigflow/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type bidRoutesHandler struct {
	bidService    service.Bid
	hiringService service.Hiring
	validate      *validator.Validate
}

func newBidRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate, identity echo.MiddlewareFunc) *bidRoutesHandler {
	h := &bidRoutesHandler{bidService: services.Bid, hiringService: services.Hiring, validate: v}

	bids := outer.Group("/bids", identity)
	bids.POST("", h.PostBid)
	bids.GET("/my-bids", h.GetMyBids)
	bids.GET("/bid/:bidId", h.GetBid)
	bids.GET("/:gigId", h.GetGigBids)
	bids.PATCH("/:bidId/hire", h.HireBid)

	return h
}

type postBidInput struct {
	GigId   string  `json:"gigId" validate:"required,max=100"`
	Message string  `json:"message" validate:"required,min=10,max=1000"`
	Price   float64 `json:"price" validate:"required,gt=0,lte=1000000"`
}

// /bids
func (h *bidRoutesHandler) PostBid(c echo.Context) error {
	var input postBidInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	bid, err := h.bidService.SubmitBid(c.Request().Context(), &entity.CreateBidInput{
		GigId: input.GigId, FreelancerId: callerId(c),
		Message: input.Message, Price: input.Price,
	})
	if err == nil {
		return c.JSON(http.StatusCreated, bid)
	}

	switch err {
	case service.ErrGigNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{"There is no gig with given id"})
	case service.ErrGigNotOpen:
		return c.JSON(http.StatusBadRequest, errorResponse{"Cannot bid on assigned gigs"})
	case service.ErrOwnGigBid:
		return c.JSON(http.StatusBadRequest, errorResponse{"You cannot bid on your own gig"})
	case service.ErrDuplicateBid:
		return c.JSON(http.StatusConflict, errorResponse{"You have already submitted a bid for this gig"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}
}

type getMyBidsInput struct {
	Page   int    `query:"page" validate:"gte=1"`
	Limit  int    `query:"limit" validate:"gte=1,lte=50"`
	Status string `query:"status" validate:"omitempty,oneof=pending hired rejected"`
}

type myBidsOutput struct {
	Bids       []entity.BidOutputModel `json:"bids"`
	Pagination paginationOutput        `json:"pagination"`
}

// /bids/my-bids
func (h *bidRoutesHandler) GetMyBids(c echo.Context) error {
	input := getMyBidsInput{Page: defaultPage, Limit: defaultLimit}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	pg := entity.NewPaginationInput(input.Limit, (input.Page-1)*input.Limit)
	bids, total, err := h.bidService.GetUserBids(c.Request().Context(), callerId(c), input.Status, pg)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}

	return c.JSON(http.StatusOK, myBidsOutput{
		Bids:       bids,
		Pagination: newPaginationOutput(input.Page, input.Limit, total),
	})
}

// /bids/:gigId
func (h *bidRoutesHandler) GetGigBids(c echo.Context) error {
	pg := entity.NewPaginationInput(maxLimit, 0)
	bids, err := h.bidService.GetGigBids(c.Request().Context(), c.Param("gigId"), callerId(c), pg)
	if err == nil {
		return c.JSON(http.StatusOK, bids)
	}

	switch err {
	case service.ErrGigNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{"There is no gig with given id"})
	case service.ErrNotGigOwner:
		return c.JSON(http.StatusForbidden, errorResponse{"You can only view bids for your own gigs"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}
}

// /bids/bid/:bidId
func (h *bidRoutesHandler) GetBid(c echo.Context) error {
	bid, err := h.bidService.GetBidById(c.Request().Context(), c.Param("bidId"), callerId(c))
	if err == nil {
		return c.JSON(http.StatusOK, bid)
	}

	switch err {
	case service.ErrBidNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{"There is no bid with given id"})
	case service.ErrNoAccessToBid:
		return c.JSON(http.StatusForbidden, errorResponse{"You can only view your own bids or bids on your gigs"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}
}

// /bids/:bidId/hire
func (h *bidRoutesHandler) HireBid(c echo.Context) error {
	result, err := h.hiringService.Hire(c.Request().Context(), c.Param("bidId"), callerId(c))
	if err == nil {
		return c.JSON(http.StatusOK, result.Bid)
	}

	switch err {
	case service.ErrBidNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{"There is no bid with given id"})
	case service.ErrGigNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{"There is no gig for this bid"})
	case service.ErrNotGigOwner:
		return c.JSON(http.StatusForbidden, errorResponse{"You can only hire for your own gigs"})
	case service.ErrGigAlreadyAssigned:
		return c.JSON(http.StatusConflict, errorResponse{"This gig is no longer available for hiring"})
	case service.ErrBidNotAvailable:
		return c.JSON(http.StatusConflict, errorResponse{"This bid is no longer available"})
	case service.ErrHireContention:
		return c.JSON(http.StatusConflict, errorResponse{"Could not complete the hire due to contention, please try again"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}
}
