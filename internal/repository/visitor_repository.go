package repository

import (
	"bergerie_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

// VisitorFilter narrows visitor listings.
type VisitorFilter struct {
	CityID     uint
	BergerieID uint
	Status     model.VisitorStatus
	Search     string
	StartDate  time.Time
	EndDate    time.Time
}

type VisitorRepository struct {
	DB *gorm.DB
}

func NewVisitorRepository(db *gorm.DB) *VisitorRepository {
	return &VisitorRepository{DB: db}
}

func (r *VisitorRepository) Create(visitor *model.Visitor) error {
	return r.DB.Create(visitor).Error
}

func (r *VisitorRepository) Update(visitor *model.Visitor) error {
	return r.DB.Save(visitor).Error
}

func (r *VisitorRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Visitor{}, id).Error
}

func (r *VisitorRepository) FindByID(id uint) (*model.Visitor, error) {
	var visitor model.Visitor
	err := r.DB.First(&visitor, id).Error
	if err != nil {
		return nil, err
	}
	return &visitor, nil
}

// Find lists visitors matching the filter, paginated newest first.
func (r *VisitorRepository) Find(filter VisitorFilter, page, limit int) ([]model.Visitor, int64, error) {
	var visitors []model.Visitor
	var total int64

	query := r.DB.Model(&model.Visitor{})

	if filter.CityID != 0 {
		query = query.Where("city_id = ?", filter.CityID)
	}
	if filter.BergerieID != 0 {
		query = query.Where("bergerie_id = ?", filter.BergerieID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		searchTerm := "%" + filter.Search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR phone LIKE ?", searchTerm, searchTerm, searchTerm)
	}
	if !filter.StartDate.IsZero() {
		query = query.Where("arrival_date >= ?", filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query = query.Where("arrival_date <= ?", filter.EndDate)
	}

	query.Count(&total)

	offset := (page - 1) * limit
	err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&visitors).Error

	return visitors, total, err
}

func (r *VisitorRepository) FindByBergerie(bergerieID uint) ([]model.Visitor, error) {
	var visitors []model.Visitor
	err := r.DB.Where("bergerie_id = ?", bergerieID).Order("last_name, first_name").Find(&visitors).Error
	return visitors, err
}

// FindByCity lists a city's visitors; cityID 0 lists every city.
func (r *VisitorRepository) FindByCity(cityID uint) ([]model.Visitor, error) {
	var visitors []model.Visitor
	query := r.DB.Order("last_name, first_name")
	if cityID != 0 {
		query = query.Where("city_id = ?", cityID)
	}
	err := query.Find(&visitors).Error
	return visitors, err
}

func (r *VisitorRepository) CountByStatus(cityID uint) (map[model.VisitorStatus]int64, error) {
	type row struct {
		Status model.VisitorStatus
		Count  int64
	}
	var rows []row
	query := r.DB.Model(&model.Visitor{}).Select("status, count(*) as count").Group("status")
	if cityID != 0 {
		query = query.Where("city_id = ?", cityID)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[model.VisitorStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *VisitorRepository) FindRecent(cityID uint, limit int) ([]model.Visitor, error) {
	var visitors []model.Visitor
	query := r.DB.Order("arrival_date DESC").Limit(limit)
	if cityID != 0 {
		query = query.Where("city_id = ?", cityID)
	}
	err := query.Find(&visitors).Error
	return visitors, err
}
