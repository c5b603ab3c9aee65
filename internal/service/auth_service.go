package service

import (
	"fmt"

	"github.com/swiftbus/swiftbus-backend/internal/models"
	"github.com/swiftbus/swiftbus-backend/internal/repository"
	"github.com/swiftbus/swiftbus-backend/pkg/bcrypt"
	"github.com/swiftbus/swiftbus-backend/pkg/email"
	jwtPkg "github.com/swiftbus/swiftbus-backend/pkg/jwt"
)

type AuthService struct {
	userRepo     *repository.UserRepository
	emailService *email.EmailService
}

func NewAuthService(userRepo *repository.UserRepository, emailService *email.EmailService) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		emailService: emailService,
	}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	exists, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: hashedPassword,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := jwtPkg.GenerateToken(user.Email, user.ID, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	go s.emailService.SendWelcomeEmail(user.Email, user.FullName)

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidLogin
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, ErrInvalidLogin
	}

	token, err := jwtPkg.GenerateToken(user.Email, user.ID, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %v", err)
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}
