package repository

import (
	"github.com/aiautoreview/aiautoreview-backend/internal/app/model"
	"github.com/aiautoreview/aiautoreview-backend/pkg/logger"
	"gorm.io/gorm"
)

type ResponseRepository interface {
	Create(response *model.Response) error
	Save(response *model.Response) error
	FindByReviewID(reviewID uint) (*model.Response, error)
	FindByIDForBusiness(id, businessID uint) (*model.Response, error)
	FindPendingByBusiness(businessID uint) ([]model.Response, error)
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) Create(response *model.Response) error {
	logger.Debug("Creating response in database", map[string]interface{}{
		"review_id": response.ReviewID,
	})

	if err := r.db.Create(response).Error; err != nil {
		logger.Error("Failed to create response in database", err, map[string]interface{}{
			"review_id": response.ReviewID,
		})
		return err
	}

	return nil
}

func (r *responseRepository) Save(response *model.Response) error {
	if err := r.db.Save(response).Error; err != nil {
		logger.Error("Failed to save response in database", err, map[string]interface{}{
			"response_id": response.ID,
		})
		return err
	}
	return nil
}

func (r *responseRepository) FindByReviewID(reviewID uint) (*model.Response, error) {
	var response model.Response
	if err := r.db.Where("review_id = ?", reviewID).First(&response).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

// FindByIDForBusiness scopes the lookup through the parent review so a
// response from another tenant is indistinguishable from a missing one.
func (r *responseRepository) FindByIDForBusiness(id, businessID uint) (*model.Response, error) {
	var response model.Response
	err := r.db.
		Joins("JOIN reviews ON reviews.id = responses.review_id").
		Where("responses.id = ? AND reviews.business_id = ?", id, businessID).
		First(&response).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) FindPendingByBusiness(businessID uint) ([]model.Response, error) {
	var responses []model.Response
	err := r.db.
		Joins("JOIN reviews ON reviews.id = responses.review_id").
		Where("reviews.business_id = ? AND responses.status = ?", businessID, model.StatusPending).
		Preload("Review").
		Find(&responses).Error
	if err != nil {
		logger.Error("Failed to find pending responses", err, map[string]interface{}{
			"business_id": businessID,
		})
		return nil, err
	}
	return responses, nil
}
