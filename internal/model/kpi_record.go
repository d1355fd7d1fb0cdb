package model

// PeriodFormat is the layout of KPIRecord.Period.
const PeriodFormat = "2006-01"

// KPIRecord is one scoring snapshot per (visitor, period). Values holds one
// integer selection per indicator key; Score and Level are derived at save
// time from the active scoring table. A visitor has at most one record per
// period (upsert on re-save).
// swagger:model KPIRecord
type KPIRecord struct {
	BaseModel
	VisitorID uint           `gorm:"index:idx_visitor_period,unique;not null" json:"visitorId"`
	Period    string         `gorm:"size:7;index:idx_visitor_period,unique;not null" json:"period"`
	Values    map[string]int `gorm:"serializer:json;type:json" json:"values"`
	Comment   string         `gorm:"type:text" json:"comment"`
	Score     int            `gorm:"not null" json:"score"`
	Level     string         `gorm:"size:50" json:"level"`
}

func (KPIRecord) TableName() string {
	return "kpi_records"
}
