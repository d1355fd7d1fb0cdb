package service

import (
	"bergerie_backend/internal/model"
	"bergerie_backend/internal/repository"
	"bergerie_backend/internal/util"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// UserFilter narrows the admin user listing.
// swagger:model UserFilter
type UserFilter struct {
	Role   string
	Status string
	Search string
	CityID uint
}

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{
		UserRepo: userRepo,
	}
}

// GetUsers lists accounts with pagination and filters.
func (s *UserService) GetUsers(page, pageSize int, filter UserFilter) ([]model.User, int, error) {
	var users []model.User
	var total int64

	query := s.UserRepo.DB.Model(&model.User{})

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}

	if filter.Status == "online" {
		query = query.Where("last_login > ?", time.Now().Add(-24*time.Hour))
	} else if filter.Status == "offline" {
		query = query.Where("last_login <= ?", time.Now().Add(-24*time.Hour))
	} else if filter.Status == "disabled" {
		query = query.Where("disabled = ?", true)
	}

	if filter.Search != "" {
		searchTerm := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", searchTerm, searchTerm)
	}

	if filter.CityID != 0 {
		query = query.Where("city_id = ?", filter.CityID)
	}

	query.Count(&total)

	offset := (page - 1) * pageSize
	query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&users)

	return users, int(total), nil
}

func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	return s.UserRepo.FindByID(id)
}

func (s *UserService) UpdateUser(user *model.User) error {
	existingUser, err := s.UserRepo.FindByID(user.ID)
	if err != nil {
		return util.ErrUserNotFound
	}

	existingUser.Name = user.Name
	existingUser.Email = user.Email
	existingUser.Role = user.Role
	existingUser.CityID = user.CityID
	existingUser.Phone = user.Phone
	existingUser.Disabled = user.Disabled
	existingUser.UpdatedAt = time.Now()

	return s.UserRepo.Update(existingUser)
}

// ResetPassword assigns a temporary password and returns it in clear so the
// admin can hand it over.
func (s *UserService) ResetPassword(userID uint) (string, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return "", util.ErrUserNotFound
	}

	tempPassword := generateTempPassword()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user.Password = string(hashedPassword)
	user.UpdatedAt = time.Now()

	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}

	return tempPassword, nil
}

func (s *UserService) DeleteUser(id uint) error {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return util.ErrUserNotFound
	}

	return s.UserRepo.DB.Delete(user).Error
}

func (s *UserService) DisableUser(id uint, disable bool) error {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return util.ErrUserNotFound
	}

	user.Disabled = disable
	user.UpdatedAt = time.Now()

	return s.UserRepo.Update(user)
}

func generateTempPassword() string {
	return fmt.Sprintf("temp%d", time.Now().UnixNano()%100000000)
}
