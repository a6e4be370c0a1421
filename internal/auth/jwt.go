package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/ryyderbros/wellness_server/internal/model"
)

const tokenTTL = 7 * 24 * time.Hour

// Identity is the authenticated caller extracted from a verified token.
type Identity struct {
	UserID int64
	Email  string
	Name   string
	Role   model.Role
}

// Manager issues and verifies the HS256 tokens the API uses as sessions.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Issue signs a token for the user, valid for seven days.
func (m *Manager) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Parse verifies a token string and returns the caller's identity.
func (m *Manager) Parse(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}

	role := model.Role(stringClaim(claims, "role"))
	if !role.Valid() {
		return nil, errors.New("token does not contain a valid 'role' claim")
	}

	return &Identity{
		UserID: int64(sub),
		Email:  stringClaim(claims, "email"),
		Name:   stringClaim(claims, "name"),
		Role:   role,
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	value, _ := claims[key].(string)
	return value
}
