package auth

import (
	"errors"
	"os"
	"time"

	"sellerdesk/pkg/apierr"
	"sellerdesk/pkg/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service handles authentication logic
type Service struct {
	userRepo UserRepository
}

// UserRepository interface for user data access
type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id uuid.UUID) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
}

// NewService creates a new auth service
func NewService(userRepo UserRepository) *Service {
	return &Service{
		userRepo: userRepo,
	}
}

// LoginRequest represents login request data
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents login response data. The refresh token travels
// only as an HttpOnly cookie; it never appears in the JSON body.
type LoginResponse struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"-"`
	User         models.User `json:"user"`
	ExpiresIn    int64       `json:"expires_in"`
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	Type   string    `json:"type"` // access or refresh
	jwt.RegisteredClaims
}

// Login authenticates a user and returns tokens
func (s *Service) Login(req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, apierr.New(apierr.CodeInvalidCredentials, "invalid credentials")
	}

	if !user.IsActive {
		return nil, apierr.New(apierr.CodeForbidden, "user account is disabled")
	}

	if !s.verifyPassword(req.Password, user.Password) {
		return nil, apierr.New(apierr.CodeInvalidCredentials, "invalid credentials")
	}

	// Update last login
	now := time.Now()
	user.LastLoginAt = &now
	s.userRepo.Update(user)

	return s.issueTokens(user)
}

// Refresh validates a refresh token and rotates both tokens. Expired or
// malformed tokens map to REFRESH_TOKEN_EXPIRED so the caller can send the
// user back to login.
func (s *Service) Refresh(refreshToken string) (*LoginResponse, error) {
	claims, err := s.validateToken(refreshToken)
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeRefreshTokenExpired, "session expired, please login again", err)
	}

	if claims.Type != "refresh" {
		return nil, apierr.New(apierr.CodeRefreshTokenExpired, "session expired, please login again")
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, apierr.New(apierr.CodeRefreshTokenExpired, "session expired, please login again")
	}

	if !user.IsActive {
		return nil, apierr.New(apierr.CodeForbidden, "user account is disabled")
	}

	return s.issueTokens(user)
}

func (s *Service) issueTokens(user *models.User) (*LoginResponse, error) {
	accessToken, err := s.generateToken(user, "access", accessDuration())
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateToken(user, "refresh", refreshDuration())
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		User:         *user,
		ExpiresIn:    int64(accessDuration().Seconds()),
	}, nil
}

// ValidateToken validates and parses a JWT token
func (s *Service) ValidateToken(tokenString string) (*TokenClaims, error) {
	return s.validateToken(tokenString)
}

// RefreshCookieMaxAge returns the refresh cookie lifetime in seconds
func (s *Service) RefreshCookieMaxAge() int {
	return int(refreshDuration().Seconds())
}

// HashPassword hashes a password with bcrypt
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GetUser returns a user by ID
func (s *Service) GetUser(userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, apierr.NotFound("user")
	}
	return user, nil
}

// UpdateProfile updates user profile information
func (s *Service) UpdateProfile(userID uuid.UUID, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, apierr.NotFound("user")
	}

	user.Username = req.Username
	user.Email = req.Email

	if err := s.userRepo.Update(user); err != nil {
		return nil, apierr.Wrap(apierr.CodeInternal, "failed to update user profile", err)
	}

	return user, nil
}

// ChangePassword changes user password
func (s *Service) ChangePassword(userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return apierr.NotFound("user")
	}

	if !s.verifyPassword(currentPassword, user.Password) {
		return apierr.Validation("current password is incorrect")
	}

	hashedPassword, err := s.HashPassword(newPassword)
	if err != nil {
		return apierr.Wrap(apierr.CodeInternal, "failed to hash new password", err)
	}

	user.Password = hashedPassword
	if err := s.userRepo.Update(user); err != nil {
		return apierr.Wrap(apierr.CodeInternal, "failed to update password", err)
	}

	return nil
}

// generateToken signs a token of the given type and lifetime
func (s *Service) generateToken(user *models.User, tokenType string, duration time.Duration) (string, error) {
	claims := TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "sellerdesk",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// validateToken validates and parses a JWT token
func (s *Service) validateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// verifyPassword verifies a password against its hash
func (s *Service) verifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func accessDuration() time.Duration {
	d, err := time.ParseDuration(getEnvOrDefault("JWT_ACCESS_DURATION", "15m"))
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

func refreshDuration() time.Duration {
	d, err := time.ParseDuration(getEnvOrDefault("JWT_REFRESH_DURATION", "168h"))
	if err != nil {
		return 168 * time.Hour
	}
	return d
}

// getEnvOrDefault gets an environment variable or returns a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
