package swap

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DhavalSuthar-24/skillswap/internal/common"
	"github.com/DhavalSuthar-24/skillswap/internal/middleware"
	"github.com/DhavalSuthar-24/skillswap/internal/rating"
	"github.com/DhavalSuthar-24/skillswap/internal/validation"
	"github.com/DhavalSuthar-24/skillswap/pkg/responses"
	"github.com/DhavalSuthar-24/skillswap/pkg/validator"
)

// SwapController exposes the swap lifecycle over HTTP.
type SwapController struct {
	service *Service
}

func NewSwapController(service *Service) *SwapController {
	return &SwapController{service: service}
}

// sendServiceError maps lifecycle errors onto status codes.
func sendServiceError(c *gin.Context, err error, fallback string) {
	var invalid *InvalidRatingError
	switch {
	case errors.As(err, &invalid):
		responses.SendValidationError(c, invalid.Fields)
	case errors.Is(err, ErrSwapNotFound):
		responses.NotFound(c, "Swap request")
	case errors.Is(err, ErrProviderNotFound):
		responses.SendError(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, ErrSkillNotFound):
		responses.SendError(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, ErrSelfRequest):
		responses.SendError(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, ErrWrongRole):
		responses.Forbidden(c, err.Error())
	case errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrStaleStatus),
		errors.Is(err, rating.ErrDuplicateRating):
		responses.SendError(c, http.StatusConflict, err.Error(), nil)
	default:
		responses.SendError(c, http.StatusInternalServerError, fallback, err.Error())
	}
}

// CreateSwapRequest godoc
// @Summary Send a swap request
// @Tags Swaps
// @Accept json
// @Produce json
// @Param request body validation.SwapRequestInput true "Swap request"
// @Success 201 {object} responses.SuccessResponse{data=SwapRequest}
// @Failure 400 {object} responses.ErrorResponse "Validation failed"
// @Failure 404 {object} responses.ErrorResponse "Provider or skill not found"
// @Router /swap-request [post]
// @Security BearerAuth
func (sc *SwapController) CreateSwapRequest(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	var req validation.SwapRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	created, err := sc.service.Create(c.Request.Context(), identity.UserID, req)
	if err != nil {
		sendServiceError(c, err, "Failed to create swap request")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Swap request sent successfully", created)
}

// SwapRequestOptions godoc
// @Summary Skills available for a request to a provider
// @Tags Swaps
// @Produce json
// @Param provider query string true "Provider ID"
// @Success 200 {object} responses.SuccessResponse{data=Options}
// @Failure 404 {object} responses.ErrorResponse "Provider not found"
// @Router /swap-request/options [get]
// @Security BearerAuth
func (sc *SwapController) SwapRequestOptions(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	providerID, err := uuid.Parse(c.Query("provider"))
	if err != nil {
		responses.SendValidationError(c, map[string]string{"provider": "Provider must be a valid id"})
		return
	}

	opts, err := sc.service.Options(c.Request.Context(), identity.UserID, providerID)
	if err != nil {
		sendServiceError(c, err, "Failed to load swap options")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Swap options retrieved successfully", opts)
}

// ListMySwaps godoc
// @Summary List my swap requests
// @Tags Swaps
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]SwapRequest}
// @Router /my-swaps [get]
// @Security BearerAuth
func (sc *SwapController) ListMySwaps(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	swaps, err := sc.service.ListMine(c.Request.Context(), identity.UserID)
	if err != nil {
		sendServiceError(c, err, "Failed to retrieve swap requests")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Swap requests retrieved successfully", swaps)
}

// GetSwap godoc
// @Summary Get one of my swap requests
// @Tags Swaps
// @Produce json
// @Param id path string true "Swap request ID"
// @Success 200 {object} responses.SuccessResponse{data=SwapRequest}
// @Failure 404 {object} responses.ErrorResponse "Swap request not found"
// @Router /my-swaps/{id} [get]
// @Security BearerAuth
func (sc *SwapController) GetSwap(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	id, ok := common.ParamUUID(c, "id", "swap request")
	if !ok {
		return
	}

	req, err := sc.service.Get(c.Request.Context(), identity.UserID, id)
	if err != nil {
		sendServiceError(c, err, "Failed to retrieve swap request")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Swap request retrieved successfully", req)
}

// respond builds the accept, reject and cancel handlers.
func (sc *SwapController) respond(action Action, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.RequireIdentity(c)
		if !ok {
			return
		}
		id, ok := common.ParamUUID(c, "id", "swap request")
		if !ok {
			return
		}

		swaps, err := sc.service.Respond(c.Request.Context(), identity.UserID, id, action)
		if err != nil {
			sendServiceError(c, err, "Failed to update swap request")
			return
		}
		responses.SendSuccess(c, http.StatusOK, message, swaps)
	}
}

// AcceptSwap godoc
// @Summary Accept a pending request (provider)
// @Tags Swaps
// @Produce json
// @Param id path string true "Swap request ID"
// @Success 200 {object} responses.SuccessResponse{data=[]SwapRequest}
// @Failure 403 {object} responses.ErrorResponse "Not the provider"
// @Failure 409 {object} responses.ErrorResponse "Not pending"
// @Router /my-swaps/{id}/accept [post]
// @Security BearerAuth
func (sc *SwapController) AcceptSwap(c *gin.Context) {
	sc.respond(ActionAccept, "Swap request accepted")(c)
}

// RejectSwap godoc
// @Summary Reject a pending request (provider)
// @Tags Swaps
// @Produce json
// @Param id path string true "Swap request ID"
// @Success 200 {object} responses.SuccessResponse{data=[]SwapRequest}
// @Router /my-swaps/{id}/reject [post]
// @Security BearerAuth
func (sc *SwapController) RejectSwap(c *gin.Context) {
	sc.respond(ActionReject, "Swap request rejected")(c)
}

// CancelSwap godoc
// @Summary Cancel a pending request (requester)
// @Tags Swaps
// @Produce json
// @Param id path string true "Swap request ID"
// @Success 200 {object} responses.SuccessResponse{data=[]SwapRequest}
// @Router /my-swaps/{id}/cancel [post]
// @Security BearerAuth
func (sc *SwapController) CancelSwap(c *gin.Context) {
	sc.respond(ActionCancel, "Swap request cancelled")(c)
}

// SubmitFeedback godoc
// @Summary Rate the other participant and complete the swap
// @Tags Swaps
// @Accept json
// @Produce json
// @Param id path string true "Swap request ID"
// @Param feedback body validation.FeedbackInput true "Rating"
// @Success 200 {object} responses.SuccessResponse{data=[]SwapRequest}
// @Failure 400 {object} responses.ErrorResponse "Validation failed"
// @Failure 409 {object} responses.ErrorResponse "Already rated"
// @Router /my-swaps/{id}/feedback [post]
// @Security BearerAuth
func (sc *SwapController) SubmitFeedback(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	id, ok := common.ParamUUID(c, "id", "swap request")
	if !ok {
		return
	}

	var req validation.FeedbackInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	swaps, err := sc.service.SubmitFeedback(c.Request.Context(), identity.UserID, id, req)
	if err != nil {
		sendServiceError(c, err, "Failed to submit feedback")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Feedback submitted successfully", swaps)
}
