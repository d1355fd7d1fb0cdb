package repository

import (
	"bergerie_backend/internal/model"

	"gorm.io/gorm"
)

type BergerieRepository struct {
	DB *gorm.DB
}

func NewBergerieRepository(db *gorm.DB) *BergerieRepository {
	return &BergerieRepository{DB: db}
}

func (r *BergerieRepository) Create(bergerie *model.Bergerie) error {
	return r.DB.Create(bergerie).Error
}

func (r *BergerieRepository) Update(bergerie *model.Bergerie) error {
	return r.DB.Save(bergerie).Error
}

func (r *BergerieRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Bergerie{}, id).Error
}

func (r *BergerieRepository) FindByID(id uint) (*model.Bergerie, error) {
	var bergerie model.Bergerie
	err := r.DB.First(&bergerie, id).Error
	if err != nil {
		return nil, err
	}
	return &bergerie, nil
}

// Find lists bergeries, optionally narrowed to a city and/or monthly cohort.
func (r *BergerieRepository) Find(cityID uint, cohort string) ([]model.Bergerie, error) {
	var bergeries []model.Bergerie
	query := r.DB.Order("name")
	if cityID != 0 {
		query = query.Where("city_id = ?", cityID)
	}
	if cohort != "" {
		query = query.Where("cohort = ?", cohort)
	}
	err := query.Find(&bergeries).Error
	return bergeries, err
}

func (r *BergerieRepository) FindByLeader(leaderID uint) ([]model.Bergerie, error) {
	var bergeries []model.Bergerie
	err := r.DB.Where("leader_id = ?", leaderID).Order("name").Find(&bergeries).Error
	return bergeries, err
}
