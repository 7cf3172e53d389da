package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"nfl-pickem-go/models"
)

const tokenIssuer = "nfl-pickem-go"

// AuthService issues and checks admin tokens
type AuthService struct {
	admin       models.Admin
	jwtSecret   []byte
	tokenExpiry time.Duration
}

// AdminClaims represents the claims in an admin JWT
type AdminClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// NewAuthService creates a new authentication service. A zero expiry defaults to 12 hours.
func NewAuthService(admin models.Admin, jwtSecret string, tokenExpiry time.Duration) *AuthService {
	if tokenExpiry <= 0 {
		tokenExpiry = 12 * time.Hour
	}
	return &AuthService{
		admin:       admin,
		jwtSecret:   []byte(jwtSecret),
		tokenExpiry: tokenExpiry,
	}
}

// Enabled returns true if admin credentials are configured
func (a *AuthService) Enabled() bool {
	return a.admin.Username != "" && a.admin.PasswordHash != "" && len(a.jwtSecret) > 0
}

// Login checks the admin credentials and returns a signed token
func (a *AuthService) Login(username, password string) (*models.AuthResponse, error) {
	if !a.Enabled() || username != a.admin.Username || !a.admin.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(a.tokenExpiry)
	token, err := a.GenerateToken(username, expiresAt)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &models.AuthResponse{
		Username:  username,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// GenerateToken creates a signed admin token
func (a *AuthService) GenerateToken(username string, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		Username: username,
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

// ValidateToken validates a JWT token and returns the claims
func (a *AuthService) ValidateToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return a.jwtSecret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid || claims.Username != a.admin.Username {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
