package service

import (
	"bergerie_backend/internal/model"
	"bergerie_backend/internal/scoring"
	"bergerie_backend/internal/util"
	"bergerie_backend/pkg/monitoring"
	"math"

	"gorm.io/gorm"
)

// kpiStore is the slice of the KPI repository the service depends on.
type kpiStore interface {
	Upsert(record *model.KPIRecord) error
	FindByVisitorAndPeriod(visitorID uint, period string) (*model.KPIRecord, error)
	FindByVisitor(visitorID uint) ([]model.KPIRecord, error)
}

type kpiVisitorStore interface {
	FindByID(id uint) (*model.Visitor, error)
}

// NoDataLabel is shown when a subject has no scoring history yet.
const NoDataLabel = "Non classé"

// KPIPreview is the live score shown while a form is being filled.
// swagger:model KPIPreview
type KPIPreview struct {
	Score int               `json:"score"`
	Level scoring.LevelBand `json:"level"`
}

// KPISummary aggregates a subject's whole scoring history.
// swagger:model KPISummary
type KPISummary struct {
	History      []model.KPIRecord       `json:"history"`
	AverageScore float64                 `json:"averageScore"`
	AverageLevel string                  `json:"averageLevel"`
	Status       scoring.DisplayedStatus `json:"status"`
}

type KPIService struct {
	Records  kpiStore
	Visitors kpiVisitorStore
	Scoring  *scoring.Table
}

func NewKPIService(records kpiStore, visitors kpiVisitorStore, table *scoring.Table) *KPIService {
	return &KPIService{
		Records:  records,
		Visitors: visitors,
		Scoring:  table,
	}
}

// Preview scores a set of selections without persisting anything.
func (s *KPIService) Preview(values map[string]int) KPIPreview {
	cfg := s.Scoring.Current()
	score := scoring.ComputeScore(values, cfg.Indicators)
	return KPIPreview{
		Score: score,
		Level: scoring.ClassifyLevel(score, cfg.Bands),
	}
}

// GetRecord returns the record of a (visitor, period), or a record filled
// with neutral defaults when none was saved yet. A missing period is not an
// error for the caller.
func (s *KPIService) GetRecord(visitorID uint, period string) (*model.KPIRecord, error) {
	if !util.ValidPeriod(period) {
		return nil, util.ErrInvalidPeriod
	}

	record, err := s.Records.FindByVisitorAndPeriod(visitorID, period)
	if err == gorm.ErrRecordNotFound {
		return s.defaultRecord(visitorID, period), nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *KPIService) defaultRecord(visitorID uint, period string) *model.KPIRecord {
	cfg := s.Scoring.Current()
	values := make(map[string]int, len(cfg.Indicators))
	for _, ind := range cfg.Indicators {
		values[ind.Key] = 0
	}
	return &model.KPIRecord{
		VisitorID: visitorID,
		Period:    period,
		Values:    values,
		Score:     0,
		Level:     scoring.ClassifyLevel(0, cfg.Bands).Label,
	}
}

// Save upserts the record of a (visitor, period), deriving score and level
// from the active scoring table.
func (s *KPIService) Save(visitorID uint, period string, values map[string]int, comment string) (*model.KPIRecord, error) {
	if !util.ValidPeriod(period) {
		return nil, util.ErrInvalidPeriod
	}
	if _, err := s.Visitors.FindByID(visitorID); err != nil {
		return nil, util.ErrVisitorNotFound
	}

	cfg := s.Scoring.Current()
	score := scoring.ComputeScore(values, cfg.Indicators)
	record := &model.KPIRecord{
		VisitorID: visitorID,
		Period:    period,
		Values:    values,
		Comment:   comment,
		Score:     score,
		Level:     scoring.ClassifyLevel(score, cfg.Bands).Label,
	}

	if err := s.Records.Upsert(record); err != nil {
		monitoring.KPISaves.WithLabelValues("error").Inc()
		return nil, err
	}
	monitoring.KPISaves.WithLabelValues("ok").Inc()
	return record, nil
}

// History returns the full per-period history, oldest first.
func (s *KPIService) History(visitorID uint) ([]model.KPIRecord, error) {
	return s.Records.FindByVisitor(visitorID)
}

// Summary computes the historical average and resolves the displayed status.
// The manual override on the visitor, when set, wins over the computed level;
// the resolution is re-run on every call, never cached.
func (s *KPIService) Summary(visitorID uint) (*KPISummary, error) {
	visitor, err := s.Visitors.FindByID(visitorID)
	if err != nil {
		return nil, util.ErrVisitorNotFound
	}

	history, err := s.Records.FindByVisitor(visitorID)
	if err != nil {
		return nil, err
	}

	avgScore := 0.0
	avgLabel := NoDataLabel
	if len(history) > 0 {
		total := 0
		for _, r := range history {
			total += r.Score
		}
		avgScore = float64(total) / float64(len(history))
		avgLabel = scoring.ClassifyLevel(int(math.Round(avgScore)), s.Scoring.Current().Bands).Label
	}

	return &KPISummary{
		History:      history,
		AverageScore: avgScore,
		AverageLevel: avgLabel,
		Status:       scoring.ResolveDisplayedStatus(visitor.ManualStatus, avgLabel, avgScore),
	}, nil
}
