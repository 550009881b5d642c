package controller

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/aiautoreview/aiautoreview-backend/internal/app/model"
	"github.com/aiautoreview/aiautoreview-backend/internal/app/repository"
	"github.com/aiautoreview/aiautoreview-backend/internal/app/service"
	apperrors "github.com/aiautoreview/aiautoreview-backend/internal/errors"
	"github.com/aiautoreview/aiautoreview-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	reviewService   service.ReviewService
	responseService service.ResponseService
}

func NewReviewController(reviewService service.ReviewService, responseService service.ResponseService) *ReviewController {
	return &ReviewController{
		reviewService:   reviewService,
		responseService: responseService,
	}
}

type GenerateRequest struct {
	BusinessName string `json:"business_name"`
}

func serializeReview(review *model.Review) gin.H {
	var response gin.H
	if review.Response != nil {
		response = gin.H{
			"id":            review.Response.ID,
			"response_text": review.Response.ResponseText,
			"status":        review.Response.Status,
		}
	}

	return gin.H{
		"id":            review.ID,
		"platform":      review.Platform,
		"customer_name": review.CustomerName,
		"rating":        review.Rating,
		"sentiment":     review.Sentiment,
		"content":       review.Content,
		"review_date":   review.ReviewDate,
		"response":      response,
	}
}

// ListReviews returns one page of the caller's reviews
// GET /api/v1/reviews?page&platform&rating&sentiment&response_status
func (ctrl *ReviewController) ListReviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	businessID, exists := middleware.GetBusinessID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Page must be a positive integer")
		return
	}

	filter := repository.ReviewFilter{
		Platform:       c.Query("platform"),
		Sentiment:      c.Query("sentiment"),
		ResponseStatus: c.Query("response_status"),
	}

	if ratingStr := c.Query("rating"); ratingStr != "" {
		rating, err := strconv.Atoi(ratingStr)
		if err != nil || rating < 1 || rating > 5 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Rating must be between 1 and 5")
			return
		}
		filter.Rating = &rating
	}

	result, err := ctrl.reviewService.List(businessID, page, filter)
	if err != nil {
		log.Error("Failed to list reviews", err, map[string]interface{}{
			"business_id": businessID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list reviews")
		return
	}

	reviews := make([]gin.H, 0, len(result.Reviews))
	for i := range result.Reviews {
		reviews = append(reviews, serializeReview(&result.Reviews[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"reviews":    reviews,
			"pagination": result.Pagination,
		},
	})
}

// GetStats returns the caller's review aggregates
// GET /api/v1/reviews/stats
func (ctrl *ReviewController) GetStats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	businessID, exists := middleware.GetBusinessID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	stats, err := ctrl.reviewService.Stats(businessID)
	if err != nil {
		log.Error("Failed to compute review stats", err, map[string]interface{}{
			"business_id": businessID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "review stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   stats,
	})
}

// SyncReviews ingests a batch of synthetic reviews for the caller
// POST /api/v1/reviews/sync
func (ctrl *ReviewController) SyncReviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	businessID, exists := middleware.GetBusinessID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	synced, err := ctrl.reviewService.Sync(businessID)
	if err != nil {
		log.Error("Review sync failed", err, map[string]interface{}{
			"business_id": businessID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "sync reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Reviews synced",
		"data": gin.H{
			"synced": synced,
		},
	})
}

// GenerateResponse drafts (or regenerates) the templated response for a review
// POST /api/v1/reviews/:id/generate
func (ctrl *ReviewController) GenerateResponse(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	businessID, exists := middleware.GetBusinessID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid review id")
		return
	}

	// Body is optional; only business_name may be supplied
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request payload")
		return
	}

	response, err := ctrl.responseService.Generate(businessID, uint(reviewID), req.BusinessName)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
			return
		}
		log.Error("Failed to generate response", err, map[string]interface{}{
			"business_id": businessID,
			"review_id":   reviewID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "generate response")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Response generated",
		"data": gin.H{
			"id":            response.ID,
			"response_text": response.ResponseText,
			"status":        response.Status,
		},
	})
}
