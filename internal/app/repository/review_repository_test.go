package repository

import (
	"testing"
	"time"

	"github.com/aiautoreview/aiautoreview-backend/internal/app/model"
	"github.com/aiautoreview/aiautoreview-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReviewRepoTest(t *testing.T) (*gorm.DB, ReviewRepository) {
	gormDB, err := db.SetupTestDB()
	require.NoError(t, err)
	return gormDB, NewReviewRepository(gormDB)
}

func createTestBusiness(t *testing.T, gormDB *gorm.DB, name string) *model.Business {
	business := &model.Business{Name: name}
	require.NoError(t, gormDB.Create(business).Error)
	return business
}

func createTestReview(t *testing.T, gormDB *gorm.DB, businessID uint, platform string, rating int, reviewDate time.Time) *model.Review {
	review := &model.Review{
		BusinessID:   businessID,
		Platform:     platform,
		CustomerName: "Customer 123",
		Rating:       rating,
		Sentiment:    model.SentimentForRating(rating),
		Content:      "Test review content",
		ReviewDate:   reviewDate,
	}
	require.NoError(t, gormDB.Create(review).Error)
	return review
}

func TestReviewRepository_CreateBatch(t *testing.T) {
	gormDB, repo := setupReviewRepoTest(t)
	defer db.CleanupTestDB(gormDB)

	business := createTestBusiness(t, gormDB, "Batch Cafe")

	now := time.Now().UTC()
	reviews := []model.Review{
		{BusinessID: business.ID, Platform: "google", CustomerName: "Customer 101", Rating: 5, Sentiment: model.SentimentPositive, Content: "Great!", ReviewDate: now},
		{BusinessID: business.ID, Platform: "yelp", CustomerName: "Customer 102", Rating: 2, Sentiment: model.SentimentNegative, Content: "Not great.", ReviewDate: now.Add(-time.Hour)},
	}

	err := repo.CreateBatch(nil, reviews)
	require.NoError(t, err)

	var count int64
	gormDB.Model(&model.Review{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestReviewRepository_FindByIDForBusiness(t *testing.T) {
	gormDB, repo := setupReviewRepoTest(t)
	defer db.CleanupTestDB(gormDB)

	business := createTestBusiness(t, gormDB, "Scoped Cafe")
	other := createTestBusiness(t, gormDB, "Other Cafe")
	review := createTestReview(t, gormDB, business.ID, "google", 4, time.Now().UTC())

	found, err := repo.FindByIDForBusiness(review.ID, business.ID)
	require.NoError(t, err)
	assert.Equal(t, review.ID, found.ID)

	// A review from another tenant looks missing, not forbidden
	_, err = repo.FindByIDForBusiness(review.ID, other.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindByIDForBusiness(99999, business.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestReviewRepository_FindWithFilter_Ordering(t *testing.T) {
	gormDB, repo := setupReviewRepoTest(t)
	defer db.CleanupTestDB(gormDB)

	business := createTestBusiness(t, gormDB, "Ordered Cafe")
	now := time.Now().UTC()

	oldest := createTestReview(t, gormDB, business.ID, "google", 3, now.Add(-3*time.Hour))
	newest := createTestReview(t, gormDB, business.ID, "yelp", 5, now)
	middle := createTestReview(t, gormDB, business.ID, "facebook", 1, now.Add(-time.Hour))

	reviews, err := repo.FindWithFilter(business.ID, ReviewFilter{})
	require.NoError(t, err)
	require.Len(t, reviews, 3)

	assert.Equal(t, newest.ID, reviews[0].ID)
	assert.Equal(t, middle.ID, reviews[1].ID)
	assert.Equal(t, oldest.ID, reviews[2].ID)
}

func TestReviewRepository_FindWithFilter_Filters(t *testing.T) {
	gormDB, repo := setupReviewRepoTest(t)
	defer db.CleanupTestDB(gormDB)

	business := createTestBusiness(t, gormDB, "Filtered Cafe")
	other := createTestBusiness(t, gormDB, "Noise Cafe")
	now := time.Now().UTC()

	googleFive := createTestReview(t, gormDB, business.ID, "google", 5, now)
	yelpTwo := createTestReview(t, gormDB, business.ID, "yelp", 2, now.Add(-time.Hour))
	createTestReview(t, gormDB, other.ID, "google", 5, now)

	t.Run("By platform", func(t *testing.T) {
		reviews, err := repo.FindWithFilter(business.ID, ReviewFilter{Platform: "google"})
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, googleFive.ID, reviews[0].ID)
	})

	t.Run("By rating", func(t *testing.T) {
		rating := 2
		reviews, err := repo.FindWithFilter(business.ID, ReviewFilter{Rating: &rating})
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, yelpTwo.ID, reviews[0].ID)
	})

	t.Run("By sentiment", func(t *testing.T) {
		reviews, err := repo.FindWithFilter(business.ID, ReviewFilter{Sentiment: "positive"})
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, googleFive.ID, reviews[0].ID)
	})

	t.Run("By response status", func(t *testing.T) {
		response := &model.Response{ReviewID: googleFive.ID, ResponseText: "Thanks!", Status: model.StatusPending}
		require.NoError(t, gormDB.Create(response).Error)

		reviews, err := repo.FindWithFilter(business.ID, ReviewFilter{ResponseStatus: "pending"})
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, googleFive.ID, reviews[0].ID)
		require.NotNil(t, reviews[0].Response)
		assert.Equal(t, model.StatusPending, reviews[0].Response.Status)

		reviews, err = repo.FindWithFilter(business.ID, ReviewFilter{ResponseStatus: "approved"})
		require.NoError(t, err)
		assert.Empty(t, reviews)
	})
}

func TestReviewRepository_CountWithFilter(t *testing.T) {
	gormDB, repo := setupReviewRepoTest(t)
	defer db.CleanupTestDB(gormDB)

	business := createTestBusiness(t, gormDB, "Counted Cafe")
	now := time.Now().UTC()

	createTestReview(t, gormDB, business.ID, "google", 5, now)
	createTestReview(t, gormDB, business.ID, "google", 4, now.Add(-time.Hour))
	createTestReview(t, gormDB, business.ID, "yelp", 1, now.Add(-2*time.Hour))

	total, err := repo.CountWithFilter(business.ID, ReviewFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	total, err = repo.CountWithFilter(business.ID, ReviewFilter{Platform: "google"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	total, err = repo.CountWithFilter(99999, ReviewFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestReviewRepository_Stats(t *testing.T) {
	gormDB, repo := setupReviewRepoTest(t)
	defer db.CleanupTestDB(gormDB)

	business := createTestBusiness(t, gormDB, "Stats Cafe")
	now := time.Now().UTC()

	r1 := createTestReview(t, gormDB, business.ID, "google", 5, now)
	r2 := createTestReview(t, gormDB, business.ID, "yelp", 3, now.Add(-time.Hour))
	createTestReview(t, gormDB, business.ID, "facebook", 1, now.Add(-2*time.Hour))

	require.NoError(t, gormDB.Create(&model.Response{ReviewID: r1.ID, ResponseText: "a", Status: model.StatusApproved}).Error)
	require.NoError(t, gormDB.Create(&model.Response{ReviewID: r2.ID, ResponseText: "b", Status: model.StatusPending}).Error)

	stats, err := repo.Stats(business.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalReviews)
	assert.InDelta(t, 3.0, stats.AverageRating, 0.001)
	assert.Equal(t, int64(1), stats.RespondedReviews)
	assert.Equal(t, int64(1), stats.PendingResponses)
}

func TestReviewRepository_Stats_Empty(t *testing.T) {
	gormDB, repo := setupReviewRepoTest(t)
	defer db.CleanupTestDB(gormDB)

	business := createTestBusiness(t, gormDB, "Empty Cafe")

	stats, err := repo.Stats(business.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.TotalReviews)
	assert.Equal(t, float64(0), stats.AverageRating)
	assert.Equal(t, int64(0), stats.RespondedReviews)
	assert.Equal(t, int64(0), stats.PendingResponses)
}
