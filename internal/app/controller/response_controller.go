package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aiautoreview/aiautoreview-backend/internal/app/model"
	"github.com/aiautoreview/aiautoreview-backend/internal/app/service"
	apperrors "github.com/aiautoreview/aiautoreview-backend/internal/errors"
	"github.com/aiautoreview/aiautoreview-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ResponseController struct {
	responseService service.ResponseService
}

func NewResponseController(responseService service.ResponseService) *ResponseController {
	return &ResponseController{
		responseService: responseService,
	}
}

type UpdateResponseRequest struct {
	ResponseText string `json:"response_text" binding:"required"`
}

func serializeResponse(response *model.Response) gin.H {
	return gin.H{
		"id":            response.ID,
		"response_text": response.ResponseText,
		"status":        response.Status,
	}
}

// ListPending returns the caller's pending responses with their parent
// review summaries
// GET /api/v1/responses/pending
func (ctrl *ResponseController) ListPending(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	businessID, exists := middleware.GetBusinessID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	responses, err := ctrl.responseService.ListPending(businessID)
	if err != nil {
		log.Error("Failed to list pending responses", err, map[string]interface{}{
			"business_id": businessID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list pending responses")
		return
	}

	items := make([]gin.H, 0, len(responses))
	for i := range responses {
		item := serializeResponse(&responses[i])
		if review := responses[i].Review; review != nil {
			item["review"] = gin.H{
				"id":            review.ID,
				"platform":      review.Platform,
				"customer_name": review.CustomerName,
				"rating":        review.Rating,
			}
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   items,
	})
}

// UpdateResponse overwrites the response text without touching its status
// PUT /api/v1/responses/:id
func (ctrl *ResponseController) UpdateResponse(c *gin.Context) {
	ctrl.mutate(c, "Response updated", func(businessID, responseID uint) (*model.Response, error) {
		var req UpdateResponseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, errInvalidBody
		}
		return ctrl.responseService.UpdateText(businessID, responseID, req.ResponseText)
	})
}

// ApproveResponse marks the response approved
// POST /api/v1/responses/:id/approve
func (ctrl *ResponseController) ApproveResponse(c *gin.Context) {
	ctrl.mutate(c, "Response approved", func(businessID, responseID uint) (*model.Response, error) {
		return ctrl.responseService.Approve(businessID, responseID)
	})
}

// PostResponse marks the response posted
// POST /api/v1/responses/:id/post
func (ctrl *ResponseController) PostResponse(c *gin.Context) {
	ctrl.mutate(c, "Response posted", func(businessID, responseID uint) (*model.Response, error) {
		return ctrl.responseService.Post(businessID, responseID)
	})
}

var errInvalidBody = errors.New("invalid request body")

func (ctrl *ResponseController) mutate(c *gin.Context, message string, fn func(businessID, responseID uint) (*model.Response, error)) {
	log := middleware.GetLoggerFromContext(c)

	businessID, exists := middleware.GetBusinessID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	responseID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid response id")
		return
	}

	response, err := fn(businessID, uint(responseID))
	if err != nil {
		switch {
		case errors.Is(err, errInvalidBody):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request payload")
		case errors.Is(err, service.ErrResponseNotFound):
			apperrors.NotFound(c, apperrors.ResponseNotFound, "Response not found")
		default:
			log.Error("Response mutation failed", err, map[string]interface{}{
				"business_id": businessID,
				"response_id": responseID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update response")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": message,
		"data":    serializeResponse(response),
	})
}
