package auth

import (
	"context"
	"errors"

	"homecare/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

type tokenIssuer interface {
	GenerateToken(adminID int64, role string) (string, error)
}

type Service struct {
	admins AdminRepository
	jwt    tokenIssuer
}

func NewService(admins AdminRepository, jwt tokenIssuer) *Service {
	return &Service{admins: admins, jwt: jwt}
}

type LoginResult struct {
	Admin *domain.Admin
	Token string
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(admin.ID, string(admin.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResult{Admin: admin, Token: token}, nil
}
