package services

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/internal/utils"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	digitPattern    = regexp.MustCompile(`\d`)
)

type AuthService struct {
	db     *gorm.DB
	tokens *utils.TokenManager
}

func NewAuthService(db *gorm.DB, tokens *utils.TokenManager) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token    string       `json:"token"`
	ExpireAt time.Time    `json:"expire_at"`
	User     *models.User `json:"user"`
}

// Signup validates the registration input, rejects duplicate username/email
// and creates the user. Nothing is written when validation fails.
func (s *AuthService) Signup(req *SignupRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := validateSignup(username, email, req.Password); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewBadRequest("username already registered")
	}
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewBadRequest("email already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hash,
		IsActive: true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, signupCreateError(err)
	}

	return &user, nil
}

// signupCreateError maps a unique-index violation to the same 400 the
// duplicate pre-checks produce; a concurrent signup can slip past the counts
// and lose to the index instead.
func signupCreateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return response.NewBadRequest("username or email already registered")
	}
	return err
}

// Login authenticates by email and password and issues a bearer token. The
// same error is returned for unknown email and wrong password.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, response.NewUnauthorized("user is disabled")
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, response.NewUnauthorized("invalid credentials")
	}

	token, expireAt, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:    token,
		ExpireAt: expireAt,
		User:     &user,
	}, nil
}

// GetUserByID retrieves a user by ID.
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func validateSignup(username, email, password string) error {
	if len(username) < 3 || len(username) > 50 {
		return response.NewBadRequest("username must be between 3 and 50 characters")
	}
	if !usernamePattern.MatchString(username) {
		return response.NewBadRequest("username can only contain letters, numbers, and underscores")
	}
	if len(email) < 5 || len(email) > 100 {
		return response.NewBadRequest("email must be between 5 and 100 characters")
	}
	if !emailPattern.MatchString(email) {
		return response.NewBadRequest("invalid email format")
	}
	if !digitPattern.MatchString(password) {
		return response.NewBadRequest("password must contain at least one number")
	}
	return nil
}
