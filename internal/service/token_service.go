package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"postboard/internal/domain"
)

// ErrTokenInvalid es la única falla que Verify expone: firma inválida,
// token malformado y expiración son indistinguibles para el caller.
var ErrTokenInvalid = errors.New("token invalid")

// TokenService emite y valida tokens JWT de identidad.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// Claims son los atributos de identidad embebidos en el token.
// Nunca incluyen el hash de contraseña.
type Claims struct {
	UserID    string `json:"uid"`
	Email     string `json:"email"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	jwt.RegisteredClaims
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "postboard",
	}
}

// TTL devuelve la vigencia configurada de los tokens emitidos.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue firma un token con los atributos durables del usuario y una
// expiración de now+ttl. No hay refresh: el token vale hasta expirar.
func (s *TokenService) Issue(user domain.User) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrTokenInvalid
	}
	now := time.Now().UTC()
	claims := Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify valida firma y expiración y devuelve los claims decodificados.
func (s *TokenService) Verify(tokenString string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}
	if strings.TrimSpace(tokenString) == "" {
		return Claims{}, ErrTokenInvalid
	}
	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return Claims{}, ErrTokenInvalid
	}
	if !s.validClaims(claims) {
		return Claims{}, ErrTokenInvalid
	}
	return claims, nil
}

func (s *TokenService) validClaims(claims Claims) bool {
	// El token puede venir con uid o solo con email; al menos uno es
	// obligatorio para que el resolver encuentre la identidad.
	if strings.TrimSpace(claims.UserID) == "" && strings.TrimSpace(claims.Email) == "" {
		return false
	}
	if claims.UserID != "" && claims.Subject != "" && claims.Subject != claims.UserID {
		return false
	}
	return strings.TrimSpace(claims.Issuer) == s.issuer
}
