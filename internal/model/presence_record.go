package model

import "time"

type PresenceCategory string

const (
	PresenceCulte    PresenceCategory = "culte"    // Sunday service stream
	PresenceBergerie PresenceCategory = "bergerie" // Thursday group stream
)

// PresenceRecord is one attendance outcome for a visitor on a given date in
// one of the two tracked streams. A (visitor, date, category) triple is
// unique; re-saving the same occasion overwrites it.
// swagger:model PresenceRecord
type PresenceRecord struct {
	BaseModel
	VisitorID uint             `gorm:"index:idx_visitor_presence,unique;not null" json:"visitorId"`
	Date      time.Time        `gorm:"index:idx_visitor_presence,unique;not null" json:"date"`
	Category  PresenceCategory `gorm:"type:enum('culte','bergerie');index:idx_visitor_presence,unique;not null" json:"category"`
	Present   bool             `gorm:"not null" json:"present"`
	Comment   string           `gorm:"size:255" json:"comment"`
}

func (PresenceRecord) TableName() string {
	return "presence_records"
}
