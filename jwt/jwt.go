package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"hackacure-backend/entity"
	"hackacure-backend/log"
)

var (
	ErrExpired = errors.New("token expired")
)

const issuer = "hackacure"

type RefreshClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

type AccessClaims struct {
	UserID   string `json:"user_id"`
	TeamName string `json:"team_name"`
	jwt.RegisteredClaims
}

func NewRefreshToken(user *entity.User, key []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &RefreshClaims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24 * 30)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	})

	ss, err := token.SignedString(key)
	if err != nil {
		log.Logger.Error("signing failure", zap.Error(err))
		return "", err
	}

	return ss, nil
}

func NewAccessToken(user *entity.User, key []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &AccessClaims{
		UserID:   user.ID.Hex(),
		TeamName: user.TeamName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	})

	ss, err := token.SignedString(key)
	if err != nil {
		log.Logger.Error("signing failure", zap.Error(err))
		return "", err
	}

	return ss, nil
}

func ValidateRefreshToken(token string, key []byte) (*RefreshClaims, error) {
	c := &RefreshClaims{}
	_, err := jwt.ParseWithClaims(token, c, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil {
		if expired(err) {
			return nil, ErrExpired
		}

		log.Logger.Debug("parse failure", zap.Error(err))
		return nil, err
	}

	return c, nil
}

func ValidateAccessToken(token string, key []byte) (*AccessClaims, error) {
	c := &AccessClaims{}
	_, err := jwt.ParseWithClaims(token, c, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil {
		if expired(err) {
			return nil, ErrExpired
		}

		log.Logger.Debug("parse failure", zap.Error(err))
		return nil, err
	}

	return c, nil
}

func expired(err error) bool {
	var ve *jwt.ValidationError
	return errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0
}
