package repository

import (
	"bergerie_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PresenceRepository struct {
	DB *gorm.DB
}

func NewPresenceRepository(db *gorm.DB) *PresenceRepository {
	return &PresenceRepository{DB: db}
}

// Upsert saves one record per (visitor, date, category); re-saving the same
// occasion overwrites it.
func (r *PresenceRepository) Upsert(record *model.PresenceRecord) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "visitor_id"}, {Name: "date"}, {Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"present", "comment", "updated_at"}),
	}).Create(record).Error
}

// FindByVisitor returns all records of one visitor, optionally narrowed to a
// category, ordered by date.
func (r *PresenceRepository) FindByVisitor(visitorID uint, category model.PresenceCategory) ([]model.PresenceRecord, error) {
	var records []model.PresenceRecord
	query := r.DB.Where("visitor_id = ?", visitorID).Order("date")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Find(&records).Error
	return records, err
}

// FindByVisitors returns records of a whole cohort within an optional window,
// both categories merged.
func (r *PresenceRepository) FindByVisitors(visitorIDs []uint, from, to time.Time) ([]model.PresenceRecord, error) {
	var records []model.PresenceRecord
	if len(visitorIDs) == 0 {
		return records, nil
	}
	query := r.DB.Where("visitor_id IN ?", visitorIDs)
	if !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("date <= ?", to)
	}
	err := query.Order("visitor_id, date").Find(&records).Error
	return records, err
}
