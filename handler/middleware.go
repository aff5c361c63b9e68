package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hackacure-backend/errs"
	"hackacure-backend/jwt"
	"hackacure-backend/log"
)

const claimsKey = "claims"

// RequestLogger tags every request with an id and logs it on completion.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := uuid.NewString()
		c.Set("request_id", id)

		c.Next()

		log.Logger.Info("request",
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// Auth validates the bearer token and stores the claims on the context.
func Auth(key []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			fail(c, errs.ErrUnauthorized)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			fail(c, errs.ErrUnauthorized)
			return
		}

		claims, err := jwt.ValidateAccessToken(parts[1], key)
		if err != nil {
			if err == jwt.ErrExpired {
				fail(c, errs.ErrTokenExpired)
				return
			}

			fail(c, errs.ErrJWT)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireOwner restricts a /users/:id route to the authenticated identity.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			fail(c, errs.ErrUnauthorized)
			return
		}

		if claims.UserID != c.Param("id") {
			fail(c, errs.ErrForbidden)
			return
		}

		c.Next()
	}
}

func claimsFrom(c *gin.Context) (*jwt.AccessClaims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}

	claims, ok := v.(*jwt.AccessClaims)
	return claims, ok
}
