package service

import (
	"bergerie_backend/internal/fidelity"
	"bergerie_backend/internal/model"
	"bergerie_backend/internal/util"
	"time"
)

type presenceStore interface {
	Upsert(record *model.PresenceRecord) error
	FindByVisitor(visitorID uint, category model.PresenceCategory) ([]model.PresenceRecord, error)
	FindByVisitors(visitorIDs []uint, from, to time.Time) ([]model.PresenceRecord, error)
}

type presenceCohortStore interface {
	FindByID(id uint) (*model.Visitor, error)
	FindByBergerie(bergerieID uint) ([]model.Visitor, error)
	FindByCity(cityID uint) ([]model.Visitor, error)
}

// VisitorPresences groups one visitor's records by stream.
// swagger:model VisitorPresences
type VisitorPresences struct {
	Culte    []model.PresenceRecord `json:"culte"`
	Bergerie []model.PresenceRecord `json:"bergerie"`
}

// FidelityReport is the cohort aggregate served to the presence views.
// swagger:model FidelityReport
type FidelityReport struct {
	Rate              int    `json:"rate"`
	CohortSize        int    `json:"cohortSize"`
	RetainedSubjects  []uint `json:"retainedSubjects"`
	ExpectedOccasions int    `json:"expectedOccasions"`
}

type PresenceService struct {
	Presences presenceStore
	Visitors  presenceCohortStore
	Calc      fidelity.Calculator
}

func NewPresenceService(presences presenceStore, visitors presenceCohortStore, calc fidelity.Calculator) *PresenceService {
	return &PresenceService{
		Presences: presences,
		Visitors:  visitors,
		Calc:      calc,
	}
}

// Save upserts one attendance outcome.
func (s *PresenceService) Save(visitorID uint, dateStr string, category model.PresenceCategory, present bool, comment string) (*model.PresenceRecord, error) {
	date, err := util.ParseDate(dateStr)
	if err != nil {
		return nil, util.ErrInvalidDate
	}
	if _, err := s.Visitors.FindByID(visitorID); err != nil {
		return nil, util.ErrVisitorNotFound
	}

	record := &model.PresenceRecord{
		VisitorID: visitorID,
		Date:      date,
		Category:  category,
		Present:   present,
		Comment:   comment,
	}
	if err := s.Presences.Upsert(record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListByVisitor returns the visitor's records split by stream.
func (s *PresenceService) ListByVisitor(visitorID uint) (*VisitorPresences, error) {
	culte, err := s.Presences.FindByVisitor(visitorID, model.PresenceCulte)
	if err != nil {
		return nil, err
	}
	bergerie, err := s.Presences.FindByVisitor(visitorID, model.PresenceBergerie)
	if err != nil {
		return nil, err
	}
	return &VisitorPresences{Culte: culte, Bergerie: bergerie}, nil
}

// FidelityReport aggregates a cohort (one bergerie, or a whole city) into a
// participation rate. Both streams are merged per subject. When a date is
// given, the cohort is first narrowed to the subjects matching the presence
// filter on that date.
func (s *PresenceService) FidelityReport(cityID, bergerieID uint, from, to time.Time, date string, filter fidelity.PresenceFilter) (*FidelityReport, error) {
	var cohort []model.Visitor
	var err error
	switch {
	case bergerieID != 0:
		cohort, err = s.Visitors.FindByBergerie(bergerieID)
	case cityID != 0:
		cohort, err = s.Visitors.FindByCity(cityID)
	default:
		cohort, err = s.Visitors.FindByCity(0)
	}
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(cohort))
	for _, v := range cohort {
		ids = append(ids, v.ID)
	}

	records, err := s.Presences.FindByVisitors(ids, from, to)
	if err != nil {
		return nil, err
	}

	bySubject := make(map[uint][]fidelity.Record, len(ids))
	for _, id := range ids {
		bySubject[id] = nil
	}
	for _, r := range records {
		bySubject[r.VisitorID] = append(bySubject[r.VisitorID], fidelity.Record{
			Date:    r.Date.Format(fidelity.DateFormat),
			Present: r.Present,
		})
	}

	retained := fidelity.FilterByDate(ids, bySubject, date, filter)
	retainedRecords := make(map[uint][]fidelity.Record, len(retained))
	for _, id := range retained {
		retainedRecords[id] = bySubject[id]
	}

	return &FidelityReport{
		Rate:              s.Calc.Rate(retainedRecords),
		CohortSize:        len(ids),
		RetainedSubjects:  retained,
		ExpectedOccasions: s.Calc.ExpectedOccasions,
	}, nil
}
