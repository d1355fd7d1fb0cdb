package model

// Bergerie is a small shepherding group, tracked per city and per monthly
// cohort (Cohort is the YYYY-MM the group was opened for).
// swagger:model Bergerie
type Bergerie struct {
	BaseModel
	Name       string `gorm:"size:100;not null" json:"name"`
	CityID     uint   `gorm:"index;not null" json:"cityId"`
	Cohort     string `gorm:"size:7;index" json:"cohort"`
	LeaderID   *uint  `gorm:"index" json:"leaderId"`
	MeetingDay string `gorm:"size:20" json:"meetingDay"`
	Location   string `gorm:"size:255" json:"location"`
	Active     bool   `gorm:"default:true" json:"active"`
}

func (Bergerie) TableName() string {
	return "bergeries"
}
