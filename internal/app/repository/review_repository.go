package repository

import (
	"github.com/aiautoreview/aiautoreview-backend/internal/app/model"
	"github.com/aiautoreview/aiautoreview-backend/pkg/logger"
	"gorm.io/gorm"
)

// ReviewFilter narrows a tenant's review listing. Zero values mean "no filter".
type ReviewFilter struct {
	Platform       string
	Rating         *int
	Sentiment      string
	ResponseStatus string
	Limit          int
	Offset         int
}

// ReviewStats are the per-tenant aggregates for the dashboard
type ReviewStats struct {
	TotalReviews     int64   `json:"total_reviews"`
	AverageRating    float64 `json:"average_rating"`
	RespondedReviews int64   `json:"responded_reviews"`
	PendingResponses int64   `json:"pending_responses"`
}

type ReviewRepository interface {
	CreateBatch(tx *gorm.DB, reviews []model.Review) error
	FindByIDForBusiness(id, businessID uint) (*model.Review, error)
	FindWithFilter(businessID uint, filter ReviewFilter) ([]model.Review, error)
	CountWithFilter(businessID uint, filter ReviewFilter) (int64, error)
	Stats(businessID uint) (*ReviewStats, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// CreateBatch inserts reviews on the given transaction handle so the whole
// batch commits or rolls back together with the caller's other writes.
func (r *reviewRepository) CreateBatch(tx *gorm.DB, reviews []model.Review) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.Create(&reviews).Error; err != nil {
		logger.Error("Failed to batch insert reviews", err, map[string]interface{}{
			"count": len(reviews),
		})
		return err
	}
	return nil
}

func (r *reviewRepository) FindByIDForBusiness(id, businessID uint) (*model.Review, error) {
	var review model.Review
	err := r.db.
		Where("id = ? AND business_id = ?", id, businessID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) filteredQuery(businessID uint, filter ReviewFilter) *gorm.DB {
	query := r.db.Model(&model.Review{}).Where("reviews.business_id = ?", businessID)

	if filter.Platform != "" {
		query = query.Where("reviews.platform = ?", filter.Platform)
	}
	if filter.Rating != nil {
		query = query.Where("reviews.rating = ?", *filter.Rating)
	}
	if filter.Sentiment != "" {
		query = query.Where("reviews.sentiment = ?", filter.Sentiment)
	}
	if filter.ResponseStatus != "" {
		query = query.
			Joins("JOIN responses ON responses.review_id = reviews.id").
			Where("responses.status = ?", filter.ResponseStatus)
	}

	return query
}

func (r *reviewRepository) FindWithFilter(businessID uint, filter ReviewFilter) ([]model.Review, error) {
	logger.Debug("Finding reviews with filter", map[string]interface{}{
		"business_id":     businessID,
		"platform":        filter.Platform,
		"rating":          filter.Rating,
		"sentiment":       filter.Sentiment,
		"response_status": filter.ResponseStatus,
		"limit":           filter.Limit,
		"offset":          filter.Offset,
	})

	query := r.filteredQuery(businessID, filter).Preload("Response")

	// Newest first; id breaks review_date ties so pages are stable
	query = query.Order("reviews.review_date DESC").Order("reviews.id DESC")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var reviews []model.Review
	if err := query.Find(&reviews).Error; err != nil {
		logger.Error("Failed to find reviews", err, map[string]interface{}{
			"business_id": businessID,
		})
		return nil, err
	}

	return reviews, nil
}

func (r *reviewRepository) CountWithFilter(businessID uint, filter ReviewFilter) (int64, error) {
	var total int64
	if err := r.filteredQuery(businessID, filter).Count(&total).Error; err != nil {
		logger.Error("Failed to count reviews", err, map[string]interface{}{
			"business_id": businessID,
		})
		return 0, err
	}
	return total, nil
}

func (r *reviewRepository) Stats(businessID uint) (*ReviewStats, error) {
	stats := &ReviewStats{}

	if err := r.db.Model(&model.Review{}).
		Where("business_id = ?", businessID).
		Count(&stats.TotalReviews).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Review{}).
		Where("business_id = ?", businessID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&stats.AverageRating).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Response{}).
		Joins("JOIN reviews ON reviews.id = responses.review_id").
		Where("reviews.business_id = ? AND responses.status IN ?", businessID,
			[]model.ResponseStatus{model.StatusApproved, model.StatusPosted}).
		Count(&stats.RespondedReviews).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Response{}).
		Joins("JOIN reviews ON reviews.id = responses.review_id").
		Where("reviews.business_id = ? AND responses.status = ?", businessID, model.StatusPending).
		Count(&stats.PendingResponses).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
