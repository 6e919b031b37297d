package service

import (
	"errors"

	"campusmart/config"
	"campusmart/internal/auth"
	"campusmart/internal/models"
	"campusmart/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminAuthService struct {
	cfg       *config.Config
	adminRepo *repository.AdminRepository
}

func NewAdminAuthService(cfg *config.Config, adminRepo *repository.AdminRepository) *AdminAuthService {
	return &AdminAuthService{cfg: cfg, adminRepo: adminRepo}
}

// Login authenticates a console account and returns it with a signed
// admin token. Deactivated accounts cannot log in regardless of role.
func (s *AdminAuthService) Login(email, password string) (*models.AdminAccount, string, error) {
	a, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCreds
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCreds
	}
	if !a.IsActive {
		return nil, "", ErrAccountInactive
	}
	_ = s.adminRepo.TouchLastLogin(a.ID)
	token, err := auth.GenerateAdminToken(&s.cfg.JWT, a.ID, a.Email, a.Role)
	if err != nil {
		return nil, "", err
	}
	return a, token, nil
}
