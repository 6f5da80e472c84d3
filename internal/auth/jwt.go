package auth

import (
	"errors"
	"time"

	"github.com/AgentTarik/pizzeria-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// Staff roles of the back office.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleDelivery = "delivery"
)

// Claims carries the staff role next to the registered claims.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type JWTIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

func NewJWTIssuer(cfg config.JWT) (*JWTIssuer, error) {
	if cfg.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &JWTIssuer{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      ttl,
	}, nil
}

func (j *JWTIssuer) Issue(userID, role string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(j.ttl)
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-30 * time.Second)), // small skew
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	if j.audience != "" {
		claims.Audience = jwt.ClaimStrings{j.audience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	return signed, exp, err
}
