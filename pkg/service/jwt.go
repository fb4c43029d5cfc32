package service

import (
	goerrors "errors"
	"time"

	"hrm-system/pkg/constants"
	"hrm-system/pkg/errors"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JwtCustomClaim — полезная нагрузка токена: минимум {subject = id
// пользователя, роль}. Отзыва на сервере нет, сессия живёт до истечения.
type JwtCustomClaim struct {
	Role constants.Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *JwtCustomClaim) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, errors.ErrInvalidToken
	}
	return id, nil
}

type JWTService interface {
	GenerateToken(userID uuid.UUID, role constants.Role) (string, error)
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
	GetAccessTokenTTL() time.Duration
}

type jwtService struct {
	SecretKey      string
	AccessTokenExp time.Duration
}

func NewJWTService(secretKey string, accessTokenExp time.Duration) JWTService {
	return &jwtService{
		SecretKey:      secretKey,
		AccessTokenExp: accessTokenExp,
	}
}

func (service *jwtService) GenerateToken(userID uuid.UUID, role constants.Role) (string, error) {
	now := time.Now()
	claims := &JwtCustomClaim{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(service.AccessTokenExp)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString([]byte(service.SecretKey))
}

func (s *jwtService) GetAccessTokenTTL() time.Duration {
	return s.AccessTokenExp
}

func (service *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaim{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return []byte(service.SecretKey), nil
		default:
			return nil, errors.ErrInvalidSigningMethod
		}
	})
	if err != nil {
		switch {
		case goerrors.Is(err, jwt.ErrTokenExpired):
			return nil, errors.ErrTokenExpired
		case goerrors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, errors.ErrTokenNotYetValid
		case goerrors.Is(err, errors.ErrInvalidSigningMethod):
			return nil, errors.ErrInvalidSigningMethod
		default:
			return nil, errors.ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*JwtCustomClaim)
	if !ok || !token.Valid {
		return nil, errors.ErrInvalidToken
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, errors.ErrTokenExpired
	}

	if claims.IssuedAt != nil && claims.IssuedAt.Time.After(time.Now()) {
		return nil, errors.ErrTokenNotYetValid
	}

	if !claims.Role.IsValid() {
		return nil, errors.ErrInvalidToken
	}

	return claims, nil
}
