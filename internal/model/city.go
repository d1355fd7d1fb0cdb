package model

// City is the reference table behind every per-city view. The source kept the
// selected city in browser storage; here it is explicit data.
// swagger:model City
type City struct {
	BaseModel
	Name    string `gorm:"size:100;unique;not null" json:"name"`
	Enabled bool   `gorm:"default:true" json:"enabled"`
}

func (City) TableName() string {
	return "cities"
}
