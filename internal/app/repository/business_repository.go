package repository

import (
	"github.com/aiautoreview/aiautoreview-backend/internal/app/model"
	"gorm.io/gorm"
)

type BusinessRepository interface {
	Create(business *model.Business) error
	FindByID(id uint) (*model.Business, error)
	FindByName(name string) (*model.Business, error)
}

type businessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Create(business *model.Business) error {
	return r.db.Create(business).Error
}

func (r *businessRepository) FindByID(id uint) (*model.Business, error) {
	var business model.Business
	if err := r.db.First(&business, id).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) FindByName(name string) (*model.Business, error) {
	var business model.Business
	if err := r.db.Where("name = ?", name).First(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}
