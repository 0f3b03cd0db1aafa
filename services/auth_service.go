package services

import (
	"errors"
	"time"

	"backend/entity"
	"backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	DB        *gorm.DB
	JWTSecret string
	JWTTTL    time.Duration
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration) *AuthService {
	return &AuthService{DB: db, JWTSecret: secret, JWTTTL: ttl}
}

type AdminView struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginRes struct {
	Token     string    `json:"token"`
	ExpiresIn int       `json:"expires_in"` // seconds
	User      AdminView `json:"user"`
}

func (s *AuthService) Login(username, password string) (*LoginRes, error) {
	var admin entity.Admin
	if err := s.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, persistence(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(admin.ID, "admin", s.JWTSecret, s.JWTTTL)
	if err != nil {
		return nil, err
	}

	return &LoginRes{
		Token:     token,
		ExpiresIn: int(s.JWTTTL.Seconds()),
		User:      AdminView{ID: admin.ID, Username: admin.Username, CreatedAt: admin.CreatedAt},
	}, nil
}

// GetAdmin resolves the authenticated principal from its token claims.
func (s *AuthService) GetAdmin(id uint) (*AdminView, error) {
	var admin entity.Admin
	if err := s.DB.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, persistence(err)
	}
	return &AdminView{ID: admin.ID, Username: admin.Username, CreatedAt: admin.CreatedAt}, nil
}
