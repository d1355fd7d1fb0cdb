package repository

import (
	"bergerie_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KPIRepository struct {
	DB *gorm.DB
}

func NewKPIRepository(db *gorm.DB) *KPIRepository {
	return &KPIRepository{DB: db}
}

// Upsert saves one record per (visitor, period): re-saving the same period
// overwrites the previous selections instead of duplicating the row.
func (r *KPIRepository) Upsert(record *model.KPIRecord) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "visitor_id"}, {Name: "period"}},
		DoUpdates: clause.AssignmentColumns([]string{"values", "comment", "score", "level", "updated_at"}),
	}).Create(record).Error
}

func (r *KPIRepository) FindByVisitorAndPeriod(visitorID uint, period string) (*model.KPIRecord, error) {
	var record model.KPIRecord
	err := r.DB.Where("visitor_id = ? AND period = ?", visitorID, period).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByVisitor returns the full scoring history, oldest period first.
func (r *KPIRepository) FindByVisitor(visitorID uint) ([]model.KPIRecord, error) {
	var records []model.KPIRecord
	err := r.DB.Where("visitor_id = ?", visitorID).Order("period").Find(&records).Error
	return records, err
}

func (r *KPIRepository) FindByVisitors(visitorIDs []uint) ([]model.KPIRecord, error) {
	var records []model.KPIRecord
	if len(visitorIDs) == 0 {
		return records, nil
	}
	err := r.DB.Where("visitor_id IN ?", visitorIDs).Order("visitor_id, period").Find(&records).Error
	return records, err
}
