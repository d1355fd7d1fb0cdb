package service

import (
	"bergerie_backend/internal/fidelity"
	"bergerie_backend/internal/model"
	"bergerie_backend/internal/repository"
	"bergerie_backend/internal/util"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const bergerieStatsTTL = 5 * time.Minute

// BergerieStats is the per-group aggregate shown on the bergerie card.
// swagger:model BergerieStats
type BergerieStats struct {
	BergerieID   uint    `json:"bergerieId"`
	MemberCount  int     `json:"memberCount"`
	FidelityRate int     `json:"fidelityRate"`
	AverageScore float64 `json:"averageScore"`
}

type BergerieService struct {
	BergerieRepo *repository.BergerieRepository
	VisitorRepo  *repository.VisitorRepository
	KPIRepo      *repository.KPIRepository
	Presence     *PresenceService
	Redis        *redis.Client
}

func NewBergerieService(bergerieRepo *repository.BergerieRepository, visitorRepo *repository.VisitorRepository, kpiRepo *repository.KPIRepository, presence *PresenceService, rdb *redis.Client) *BergerieService {
	return &BergerieService{
		BergerieRepo: bergerieRepo,
		VisitorRepo:  visitorRepo,
		KPIRepo:      kpiRepo,
		Presence:     presence,
		Redis:        rdb,
	}
}

func (s *BergerieService) GetBergeries(cityID uint, cohort string) ([]model.Bergerie, error) {
	return s.BergerieRepo.Find(cityID, cohort)
}

func (s *BergerieService) GetBergerieByID(id uint) (*model.Bergerie, error) {
	bergerie, err := s.BergerieRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrBergerieNotFound
	}
	return bergerie, nil
}

func (s *BergerieService) CreateBergerie(bergerie *model.Bergerie) error {
	return s.BergerieRepo.Create(bergerie)
}

func (s *BergerieService) UpdateBergerie(bergerie *model.Bergerie) error {
	existing, err := s.BergerieRepo.FindByID(bergerie.ID)
	if err != nil {
		return util.ErrBergerieNotFound
	}

	existing.Name = bergerie.Name
	existing.CityID = bergerie.CityID
	existing.Cohort = bergerie.Cohort
	existing.LeaderID = bergerie.LeaderID
	existing.MeetingDay = bergerie.MeetingDay
	existing.Location = bergerie.Location
	existing.Active = bergerie.Active
	existing.UpdatedAt = time.Now()

	return s.BergerieRepo.Update(existing)
}

func (s *BergerieService) DeleteBergerie(id uint) error {
	if _, err := s.BergerieRepo.FindByID(id); err != nil {
		return util.ErrBergerieNotFound
	}
	return s.BergerieRepo.Delete(id)
}

func (s *BergerieService) GetMembers(id uint) ([]model.Visitor, error) {
	if _, err := s.BergerieRepo.FindByID(id); err != nil {
		return nil, util.ErrBergerieNotFound
	}
	return s.VisitorRepo.FindByBergerie(id)
}

// GetStats aggregates member count, fidelity rate and the average of each
// member's latest period score. Results are cached briefly in Redis since
// the group cards poll them.
func (s *BergerieService) GetStats(ctx context.Context, id uint) (*BergerieStats, error) {
	cacheKey := fmt.Sprintf("bergerie:stats:%d", id)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var stats BergerieStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	members, err := s.GetMembers(id)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}

	report, err := s.Presence.FidelityReport(0, id, time.Time{}, time.Time{}, "", fidelity.FilterAll)
	if err != nil {
		return nil, err
	}

	records, err := s.KPIRepo.FindByVisitors(ids)
	if err != nil {
		return nil, err
	}
	// records are ordered by (visitor, period); keep the last period per member
	latest := make(map[uint]int, len(ids))
	for _, r := range records {
		latest[r.VisitorID] = r.Score
	}
	avgScore := 0.0
	if len(latest) > 0 {
		total := 0
		for _, score := range latest {
			total += score
		}
		avgScore = float64(total) / float64(len(latest))
	}

	stats := &BergerieStats{
		BergerieID:   id,
		MemberCount:  len(members),
		FidelityRate: report.Rate,
		AverageScore: avgScore,
	}

	if s.Redis != nil {
		if data, err := json.Marshal(stats); err == nil {
			s.Redis.Set(ctx, cacheKey, data, bergerieStatsTTL)
		}
	}
	return stats, nil
}
