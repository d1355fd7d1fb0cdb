package service

import (
	"bergerie_backend/internal/model"
	"bergerie_backend/internal/repository"
	"bergerie_backend/internal/util"
	"time"
)

type VisitorService struct {
	VisitorRepo  *repository.VisitorRepository
	BergerieRepo *repository.BergerieRepository
	CityRepo     *repository.CityRepository
}

func NewVisitorService(visitorRepo *repository.VisitorRepository, bergerieRepo *repository.BergerieRepository, cityRepo *repository.CityRepository) *VisitorService {
	return &VisitorService{
		VisitorRepo:  visitorRepo,
		BergerieRepo: bergerieRepo,
		CityRepo:     cityRepo,
	}
}

func (s *VisitorService) GetVisitors(page, limit int, filter repository.VisitorFilter) ([]model.Visitor, int64, error) {
	return s.VisitorRepo.Find(filter, page, limit)
}

func (s *VisitorService) GetVisitorByID(id uint) (*model.Visitor, error) {
	visitor, err := s.VisitorRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrVisitorNotFound
	}
	return visitor, nil
}

func (s *VisitorService) CreateVisitor(visitor *model.Visitor) error {
	if _, err := s.CityRepo.FindByID(visitor.CityID); err != nil {
		return util.ErrCityNotFound
	}
	if visitor.ArrivalDate.IsZero() {
		visitor.ArrivalDate = time.Now()
	}
	if visitor.Status == "" {
		visitor.Status = model.StatusVisiteur
	}
	if visitor.Source == "" {
		visitor.Source = model.SourceManuelle
	}
	return s.VisitorRepo.Create(visitor)
}

func (s *VisitorService) UpdateVisitor(visitor *model.Visitor) error {
	existing, err := s.VisitorRepo.FindByID(visitor.ID)
	if err != nil {
		return util.ErrVisitorNotFound
	}

	existing.FirstName = visitor.FirstName
	existing.LastName = visitor.LastName
	existing.Phone = visitor.Phone
	existing.Email = visitor.Email
	existing.Address = visitor.Address
	existing.CityID = visitor.CityID
	existing.Status = visitor.Status
	existing.InvitedBy = visitor.InvitedBy
	existing.ArrivalDate = visitor.ArrivalDate
	existing.Comment = visitor.Comment
	existing.UpdatedAt = time.Now()

	return s.VisitorRepo.Update(existing)
}

func (s *VisitorService) DeleteVisitor(id uint) error {
	if _, err := s.VisitorRepo.FindByID(id); err != nil {
		return util.ErrVisitorNotFound
	}
	return s.VisitorRepo.Delete(id)
}

// SetManualStatus sets or clears the display override. An empty label clears
// it, letting the computed average level show again.
func (s *VisitorService) SetManualStatus(id uint, label string) error {
	visitor, err := s.VisitorRepo.FindByID(id)
	if err != nil {
		return util.ErrVisitorNotFound
	}
	visitor.ManualStatus = label
	visitor.UpdatedAt = time.Now()
	return s.VisitorRepo.Update(visitor)
}

// AssignBergerie moves the visitor into a bergerie; bergerieID 0 removes the
// assignment.
func (s *VisitorService) AssignBergerie(id, bergerieID uint) error {
	visitor, err := s.VisitorRepo.FindByID(id)
	if err != nil {
		return util.ErrVisitorNotFound
	}

	if bergerieID == 0 {
		visitor.BergerieID = nil
	} else {
		if _, err := s.BergerieRepo.FindByID(bergerieID); err != nil {
			return util.ErrBergerieNotFound
		}
		visitor.BergerieID = &bergerieID
	}
	visitor.UpdatedAt = time.Now()
	return s.VisitorRepo.Update(visitor)
}

// SetPhoto stores the uploaded photo URL.
func (s *VisitorService) SetPhoto(id uint, url string) error {
	visitor, err := s.VisitorRepo.FindByID(id)
	if err != nil {
		return util.ErrVisitorNotFound
	}
	visitor.Photo = url
	visitor.UpdatedAt = time.Now()
	return s.VisitorRepo.Update(visitor)
}
