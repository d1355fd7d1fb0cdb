package repository

import (
	"bergerie_backend/internal/model"

	"gorm.io/gorm"
)

type CityRepository struct {
	DB *gorm.DB
}

func NewCityRepository(db *gorm.DB) *CityRepository {
	return &CityRepository{DB: db}
}

func (r *CityRepository) Create(city *model.City) error {
	return r.DB.Create(city).Error
}

func (r *CityRepository) Update(city *model.City) error {
	return r.DB.Save(city).Error
}

func (r *CityRepository) FindByID(id uint) (*model.City, error) {
	var city model.City
	err := r.DB.First(&city, id).Error
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *CityRepository) FindByName(name string) (*model.City, error) {
	var city model.City
	err := r.DB.Where("name = ?", name).First(&city).Error
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *CityRepository) FindAll(enabledOnly bool) ([]model.City, error) {
	var cities []model.City
	query := r.DB.Order("name")
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}
	err := query.Find(&cities).Error
	return cities, err
}
