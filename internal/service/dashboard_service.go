package service

import (
	"bergerie_backend/internal/fidelity"
	"bergerie_backend/internal/model"
	"bergerie_backend/internal/repository"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const dashboardTTL = 60 * time.Second

// DashboardSummary is the landing-page aggregate for one city (or all cities
// when cityID is 0).
// swagger:model DashboardSummary
type DashboardSummary struct {
	CityID         uint                          `json:"cityId"`
	StatusCounts   map[model.VisitorStatus]int64 `json:"statusCounts"`
	TotalVisitors  int64                         `json:"totalVisitors"`
	BergerieCount  int                           `json:"bergerieCount"`
	FidelityRate   int                           `json:"fidelityRate"`
	RecentVisitors []model.Visitor               `json:"recentVisitors"`
}

type DashboardService struct {
	VisitorRepo  *repository.VisitorRepository
	BergerieRepo *repository.BergerieRepository
	Presence     *PresenceService
	Redis        *redis.Client
}

func NewDashboardService(visitorRepo *repository.VisitorRepository, bergerieRepo *repository.BergerieRepository, presence *PresenceService, rdb *redis.Client) *DashboardService {
	return &DashboardService{
		VisitorRepo:  visitorRepo,
		BergerieRepo: bergerieRepo,
		Presence:     presence,
		Redis:        rdb,
	}
}

// GetSummary builds the dashboard aggregate. Cached for a minute since every
// logged-in berger lands on it.
func (s *DashboardService) GetSummary(ctx context.Context, cityID uint) (*DashboardSummary, error) {
	cacheKey := fmt.Sprintf("dashboard:summary:%d", cityID)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var summary DashboardSummary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				return &summary, nil
			}
		}
	}

	counts, err := s.VisitorRepo.CountByStatus(cityID)
	if err != nil {
		return nil, err
	}
	total := int64(0)
	for _, c := range counts {
		total += c
	}

	bergeries, err := s.BergerieRepo.Find(cityID, "")
	if err != nil {
		return nil, err
	}

	report, err := s.Presence.FidelityReport(cityID, 0, time.Time{}, time.Time{}, "", fidelity.FilterAll)
	if err != nil {
		return nil, err
	}

	recent, err := s.VisitorRepo.FindRecent(cityID, 5)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		CityID:         cityID,
		StatusCounts:   counts,
		TotalVisitors:  total,
		BergerieCount:  len(bergeries),
		FidelityRate:   report.Rate,
		RecentVisitors: recent,
	}

	if s.Redis != nil {
		if data, err := json.Marshal(summary); err == nil {
			s.Redis.Set(ctx, cacheKey, data, dashboardTTL)
		}
	}
	return summary, nil
}
