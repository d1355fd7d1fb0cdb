package service

import (
	"bergerie_backend/internal/model"
	"bergerie_backend/internal/repository"
	"bergerie_backend/internal/util"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const guestSessionTTL = 30 * time.Minute

// GuestContext is attached to a self-registration link: the berger opens a
// session carrying the city and their own name, so the public form only asks
// the guest for personal details.
// swagger:model GuestContext
type GuestContext struct {
	CityID    uint   `json:"cityId"`
	CityName  string `json:"cityName"`
	InvitedBy string `json:"invitedBy"`
}

// GuestSubmission is what the public form posts back.
type GuestSubmission struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Comment   string `json:"comment"`
}

type RegistrationService struct {
	VisitorRepo *repository.VisitorRepository
	CityRepo    *repository.CityRepository
	Redis       *redis.Client
}

func NewRegistrationService(visitorRepo *repository.VisitorRepository, cityRepo *repository.CityRepository, rdb *redis.Client) *RegistrationService {
	return &RegistrationService{VisitorRepo: visitorRepo, CityRepo: cityRepo, Redis: rdb}
}

func sessionKey(token string) string {
	return "registration:session:" + token
}

// StartSession stores the guest context in Redis and returns the opaque token
// embedded in the shared form link. Sessions expire on their own.
func (s *RegistrationService) StartSession(ctx context.Context, cityID uint, invitedBy string) (string, *GuestContext, error) {
	city, err := s.CityRepo.FindByID(cityID)
	if err != nil {
		return "", nil, util.ErrCityNotFound
	}

	guest := &GuestContext{CityID: city.ID, CityName: city.Name, InvitedBy: invitedBy}
	data, err := json.Marshal(guest)
	if err != nil {
		return "", nil, err
	}

	token := uuid.NewString()
	if err := s.Redis.Set(ctx, sessionKey(token), data, guestSessionTTL).Err(); err != nil {
		return "", nil, fmt.Errorf("store guest session: %w", err)
	}
	return token, guest, nil
}

func (s *RegistrationService) GetSession(ctx context.Context, token string) (*GuestContext, error) {
	data, err := s.Redis.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var guest GuestContext
	if err := json.Unmarshal([]byte(data), &guest); err != nil {
		return nil, util.ErrSessionNotFound
	}
	return &guest, nil
}

// Submit turns a guest session plus the posted form into a visitor record.
// The session is consumed so a link cannot register twice.
func (s *RegistrationService) Submit(ctx context.Context, token string, submission *GuestSubmission) (*model.Visitor, error) {
	guest, err := s.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}

	visitor := &model.Visitor{
		FirstName:   submission.FirstName,
		LastName:    submission.LastName,
		Phone:       submission.Phone,
		Email:       submission.Email,
		Address:     submission.Address,
		Comment:     submission.Comment,
		CityID:      guest.CityID,
		InvitedBy:   guest.InvitedBy,
		Status:      model.StatusVisiteur,
		Source:      model.SourceFormulaire,
		ArrivalDate: time.Now(),
	}
	if err := s.VisitorRepo.Create(visitor); err != nil {
		return nil, err
	}

	s.Redis.Del(ctx, sessionKey(token))
	return visitor, nil
}
