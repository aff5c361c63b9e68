package handler

import (
	"net/mail"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"hackacure-backend/entity"
	"hackacure-backend/errs"
	"hackacure-backend/jwt"
	"hackacure-backend/log"
	mailer "hackacure-backend/mail"
	"hackacure-backend/store"
)

type AuthHandler struct {
	users  store.Users
	key    []byte
	mailer *mailer.Mailer
}

func NewAuthHandler(users store.Users, key []byte, m *mailer.Mailer) *AuthHandler {
	return &AuthHandler{
		users:  users,
		key:    key,
		mailer: m,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	TeamName string `json:"teamName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	req := signupRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errs.ErrNameRequired)
		return
	}

	if req.Name == "" {
		fail(c, errs.ErrNameRequired)
		return
	}

	if req.TeamName == "" {
		fail(c, errs.ErrTeamNameRequired)
		return
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		fail(c, errs.ErrEmailAddressFormat)
		return
	}

	if req.Password == "" {
		fail(c, errs.ErrPasswordRequired)
		return
	}

	ctx := c.Request.Context()

	// pre-check so the caller learns which field collided; the unique
	// indexes still backstop a race on insert
	if existing, err := h.users.ByTeamNameOrEmail(ctx, req.TeamName, req.Email); err == nil {
		if existing.TeamName == req.TeamName {
			fail(c, errs.ErrTeamAlreadyExists)
			return
		}

		fail(c, errs.ErrEmailAlreadyExists)
		return
	} else if err != errs.ErrNotFound {
		fail(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		log.Logger.Error("failed to generate bcrypt hash", zap.Error(err))
		fail(c, errs.ErrCryptographic)
		return
	}

	now := time.Now()
	u := &entity.User{
		ID:              primitive.NewObjectID(),
		Name:            req.Name,
		Email:           req.Email,
		TeamName:        req.TeamName,
		Password:        string(hash),
		JobIDs:          []string{},
		BestScore:       0,
		SubmissionsLeft: entity.DefaultSubmissions,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := h.users.Insert(ctx, u); err != nil {
		fail(c, err)
		return
	}

	if err := h.mailer.SendWelcome(ctx, u.Email, u.Name, u.TeamName); err != nil {
		log.Logger.Warn("welcome email not sent", zap.String("email", u.Email))
	}

	success(c, 201, gin.H{"user": gin.H{
		"id":       u.ID.Hex(),
		"teamName": u.TeamName,
		"email":    u.Email,
	}})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	req := loginRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errs.ErrEmailRequired)
		return
	}

	if req.Email == "" {
		fail(c, errs.ErrEmailRequired)
		return
	}

	if req.Password == "" {
		fail(c, errs.ErrPasswordRequired)
		return
	}

	u, err := h.users.ByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if err == errs.ErrNotFound {
			fail(c, errs.ErrInvalidEmailOrPassword)
			return
		}

		fail(c, err)
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			log.Logger.Debug("invalid password", zap.Error(err))
			fail(c, errs.ErrInvalidEmailOrPassword)
			return
		}

		fail(c, errs.ErrCryptographic)
		return
	}

	refresh, err := jwt.NewRefreshToken(u, h.key)
	if err != nil {
		fail(c, errs.ErrJWT)
		return
	}

	access, err := jwt.NewAccessToken(u, h.key)
	if err != nil {
		fail(c, errs.ErrJWT)
		return
	}

	success(c, 200, gin.H{
		"accessToken":  access,
		"refreshToken": refresh,
		"user":         u,
	})
}

type refreshRequest struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	req := refreshRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errs.ErrJWT)
		return
	}

	claims, err := jwt.ValidateRefreshToken(req.Token, h.key)
	if err != nil {
		if err == jwt.ErrExpired {
			fail(c, errs.ErrTokenExpired)
			return
		}

		fail(c, errs.ErrJWT)
		return
	}

	u, err := h.users.ByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if err == errs.ErrNotFound {
			fail(c, errs.ErrJWT)
			return
		}

		fail(c, err)
		return
	}

	access, err := jwt.NewAccessToken(u, h.key)
	if err != nil {
		fail(c, errs.ErrJWT)
		return
	}

	success(c, 200, gin.H{"accessToken": access})
}
