package service

import (
	"fmt"
	"time"

	"github.com/aiautoreview/aiautoreview-backend/internal/app/model"
	"github.com/aiautoreview/aiautoreview-backend/internal/app/repository"
	"github.com/aiautoreview/aiautoreview-backend/pkg/logger"
	"github.com/aiautoreview/aiautoreview-backend/pkg/util"
	"gorm.io/gorm"
)

// PageSize is the fixed review listing page size
const PageSize = 10

// SyncBatchSize is how many synthetic reviews one sync call ingests
const SyncBatchSize = 5

var syncPlatforms = []string{"google", "facebook", "yelp"}

var sampleReviews = []string{
	"Amazing service and very friendly staff!",
	"The experience was okay, room for improvement.",
	"I had a disappointing experience with the support team.",
	"Fast service, clean location, and fair price.",
	"Great quality and excellent communication.",
}

// Pagination is the listing metadata returned alongside every page
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	Total       int64 `json:"total"`
}

// ReviewPage is one page of a tenant's reviews
type ReviewPage struct {
	Reviews    []model.Review `json:"reviews"`
	Pagination Pagination     `json:"pagination"`
}

type ReviewService interface {
	List(businessID uint, page int, filter repository.ReviewFilter) (*ReviewPage, error)
	Stats(businessID uint) (*repository.ReviewStats, error)
	Sync(businessID uint) (int, error)
}

type reviewService struct {
	db         *gorm.DB
	reviewRepo repository.ReviewRepository
}

func NewReviewService(db *gorm.DB, reviewRepo repository.ReviewRepository) ReviewService {
	return &reviewService{
		db:         db,
		reviewRepo: reviewRepo,
	}
}

func (s *reviewService) List(businessID uint, page int, filter repository.ReviewFilter) (*ReviewPage, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.reviewRepo.CountWithFilter(businessID, filter)
	if err != nil {
		return nil, err
	}

	filter.Limit = PageSize
	filter.Offset = (page - 1) * PageSize

	reviews, err := s.reviewRepo.FindWithFilter(businessID, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}

	return &ReviewPage{
		Reviews: reviews,
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			Total:       total,
		},
	}, nil
}

func (s *reviewService) Stats(businessID uint) (*repository.ReviewStats, error) {
	return s.reviewRepo.Stats(businessID)
}

// Sync ingests a batch of synthetic reviews for the tenant. This stands in
// for a future platform ingestion pipeline; there is no deduplication.
func (s *reviewService) Sync(businessID uint) (int, error) {
	logger.Info("Syncing reviews", map[string]interface{}{
		"business_id": businessID,
		"count":       SyncBatchSize,
	})

	now := time.Now().UTC()
	reviews := make([]model.Review, 0, SyncBatchSize)
	for i := 0; i < SyncBatchSize; i++ {
		rating := util.GenerateRandomNumber(1, 5)
		reviews = append(reviews, model.Review{
			BusinessID:   businessID,
			Platform:     util.PickRandom(syncPlatforms),
			CustomerName: fmt.Sprintf("Customer %d", util.GenerateRandomNumber(100, 999)),
			Rating:       rating,
			Sentiment:    model.SentimentForRating(rating),
			Content:      util.PickRandom(sampleReviews),
			ReviewDate:   now.Add(-time.Duration(i) * time.Hour),
		})
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during review sync, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"business_id": businessID,
			})
		}
	}()

	if err := s.reviewRepo.CreateBatch(tx, reviews); err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit review sync", err, map[string]interface{}{
			"business_id": businessID,
		})
		return 0, err
	}

	logger.Info("Reviews synced successfully", map[string]interface{}{
		"business_id": businessID,
		"synced":      len(reviews),
	})

	return len(reviews), nil
}
