// Package authenticating valida os tokens de serviço que protegem os
// endpoints administrativos (execução manual de crons). Não existe cadastro
// de usuários: os tokens são emitidos fora de banda com o segredo da API.
package authenticating

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/wellness-reporting-api/internal/config"
)

var (
	ErrInvalidToken = errors.New("token inválido")
	ErrExpiredToken = errors.New("token expirado")
)

// ServiceClaims identifica o chamador administrativo
type ServiceClaims struct {
	Subject string `json:"sub_name"`
	jwt.RegisteredClaims
}

type Authenticator interface {
	IssueServiceToken(subject string, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*ServiceClaims, error)
}

type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) Authenticator {
	return &Service{cfg: cfg}
}

func (s *Service) IssueServiceToken(subject string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := &ServiceClaims{
		Subject: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.Secret))
}

func (s *Service) ValidateToken(tokenString string) (*ServiceClaims, error) {
	claims := &ServiceClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
