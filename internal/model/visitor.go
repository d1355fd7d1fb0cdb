package model

import "time"

type VisitorStatus string

const (
	StatusVisiteur VisitorStatus = "visiteur"
	StatusConverti VisitorStatus = "nouveau_converti"
	StatusDisciple VisitorStatus = "disciple"
	StatusMembre   VisitorStatus = "membre"
)

type RegistrationSource string

const (
	SourceManuelle   RegistrationSource = "manuelle"   // entered by a berger
	SourceFormulaire RegistrationSource = "formulaire" // public self-registration form
)

// Visitor is a tracked individual (visitor, convert or group member) whose
// formation progress is scored.
// swagger:model Visitor
type Visitor struct {
	BaseModel
	FirstName   string             `gorm:"size:100;not null" json:"firstName"`
	LastName    string             `gorm:"size:100;not null" json:"lastName"`
	Phone       string             `gorm:"size:30" json:"phone"`
	Email       string             `gorm:"size:100" json:"email"`
	Address     string             `gorm:"size:255" json:"address"`
	CityID      uint               `gorm:"index;not null" json:"cityId"`
	BergerieID  *uint              `gorm:"index" json:"bergerieId"`
	Status      VisitorStatus      `gorm:"type:enum('visiteur','nouveau_converti','disciple','membre');default:'visiteur'" json:"status"`
	// ManualStatus overrides the computed status for display. It is attached
	// to the person, never to a scoring period.
	ManualStatus string             `gorm:"size:50" json:"manualStatus"`
	InvitedBy    string             `gorm:"size:100" json:"invitedBy"`
	Source       RegistrationSource `gorm:"type:enum('manuelle','formulaire');default:'manuelle'" json:"source"`
	ArrivalDate  time.Time          `json:"arrivalDate"`
	Photo        string             `gorm:"size:255" json:"photo"`
	Comment      string             `gorm:"type:text" json:"comment"`
}

func (Visitor) TableName() string {
	return "visitors"
}
