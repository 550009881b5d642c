package service

import (
	"errors"
	"fmt"

	"github.com/aiautoreview/aiautoreview-backend/internal/app/model"
	"github.com/aiautoreview/aiautoreview-backend/internal/app/repository"
	"github.com/aiautoreview/aiautoreview-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound   = errors.New("review not found")
	ErrResponseNotFound = errors.New("response not found")
)

const defaultBusinessName = "our business"

type ResponseService interface {
	Generate(businessID, reviewID uint, businessName string) (*model.Response, error)
	UpdateText(businessID, responseID uint, text string) (*model.Response, error)
	Approve(businessID, responseID uint) (*model.Response, error)
	Post(businessID, responseID uint) (*model.Response, error)
	ListPending(businessID uint) ([]model.Response, error)
}

type responseService struct {
	reviewRepo   repository.ReviewRepository
	responseRepo repository.ResponseRepository
}

func NewResponseService(
	reviewRepo repository.ReviewRepository,
	responseRepo repository.ResponseRepository,
) ResponseService {
	return &responseService{
		reviewRepo:   reviewRepo,
		responseRepo: responseRepo,
	}
}

// Generate drafts a templated reply for the review. A regeneration overwrites
// the existing response's text and forces it back to pending; a review never
// accumulates a second response row.
func (s *responseService) Generate(businessID, reviewID uint, businessName string) (*model.Response, error) {
	review, err := s.reviewRepo.FindByIDForBusiness(reviewID, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Generate failed: review not found", map[string]interface{}{
				"business_id": businessID,
				"review_id":   reviewID,
			})
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	if businessName == "" {
		businessName = defaultBusinessName
	}
	responseText := fmt.Sprintf(
		"Thank you for your feedback, %s. We appreciate you reviewing %s and will keep improving your experience.",
		review.CustomerName, businessName,
	)

	existing, err := s.responseRepo.FindByReviewID(review.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.ResponseText = responseText
		existing.Status = model.StatusPending
		if err := s.responseRepo.Save(existing); err != nil {
			return nil, err
		}
		logger.Info("Response regenerated", map[string]interface{}{
			"business_id": businessID,
			"review_id":   review.ID,
			"response_id": existing.ID,
		})
		return existing, nil
	}

	response := &model.Response{
		ReviewID:     review.ID,
		ResponseText: responseText,
		Status:       model.StatusPending,
	}
	if err := s.responseRepo.Create(response); err != nil {
		return nil, err
	}

	logger.Info("Response generated", map[string]interface{}{
		"business_id": businessID,
		"review_id":   review.ID,
		"response_id": response.ID,
	})

	return response, nil
}

func (s *responseService) UpdateText(businessID, responseID uint, text string) (*model.Response, error) {
	response, err := s.findScoped(businessID, responseID)
	if err != nil {
		return nil, err
	}

	response.ResponseText = text
	if err := s.responseRepo.Save(response); err != nil {
		return nil, err
	}

	return response, nil
}

// Approve marks the response approved regardless of its current state.
// The lifecycle is deliberately permissive; see Post for the same semantics.
func (s *responseService) Approve(businessID, responseID uint) (*model.Response, error) {
	return s.setStatus(businessID, responseID, model.StatusApproved)
}

// Post marks the response posted regardless of its current state
func (s *responseService) Post(businessID, responseID uint) (*model.Response, error) {
	return s.setStatus(businessID, responseID, model.StatusPosted)
}

func (s *responseService) setStatus(businessID, responseID uint, status model.ResponseStatus) (*model.Response, error) {
	response, err := s.findScoped(businessID, responseID)
	if err != nil {
		return nil, err
	}

	response.Status = status
	if err := s.responseRepo.Save(response); err != nil {
		return nil, err
	}

	logger.Info("Response status updated", map[string]interface{}{
		"business_id": businessID,
		"response_id": responseID,
		"status":      status,
	})

	return response, nil
}

func (s *responseService) ListPending(businessID uint) ([]model.Response, error) {
	return s.responseRepo.FindPendingByBusiness(businessID)
}

func (s *responseService) findScoped(businessID, responseID uint) (*model.Response, error) {
	response, err := s.responseRepo.FindByIDForBusiness(responseID, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Response not found", map[string]interface{}{
				"business_id": businessID,
				"response_id": responseID,
			})
			return nil, ErrResponseNotFound
		}
		return nil, err
	}
	return response, nil
}
