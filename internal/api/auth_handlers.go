package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"hakim-livs-backend/internal/apperr"
	"hakim-livs-backend/internal/auth"
	"hakim-livs-backend/internal/models"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Wrap(apperr.ValidationFailed, "Ogiltig förfrågan", err))
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(c, apperr.New(apperr.ValidationFailed, "Användarnamn och lösenord krävs"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.cfg.Auth.BcryptCost)
	if err != nil {
		respondError(c, apperr.Wrap(apperr.StoreError, "Kunde inte skapa användaren", err))
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := h.store.InsertUser(c.Request.Context(), &user); err != nil {
		respondError(c, err)
		return
	}

	user.Password = "" // never sent back
	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Wrap(apperr.ValidationFailed, "Ogiltig förfrågan", err))
		return
	}

	user, err := h.store.FindUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			respondError(c, apperr.New(apperr.Unauthorized, "Fel användarnamn eller lösenord"))
			return
		}
		respondError(c, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		respondError(c, apperr.New(apperr.Unauthorized, "Fel användarnamn eller lösenord"))
		return
	}

	ttl := time.Duration(h.cfg.Auth.TokenTTLHours) * time.Hour
	token, err := auth.Sign(user.ID.Hex(), []byte(h.cfg.Auth.JWTSecret), ttl)
	if err != nil {
		respondError(c, apperr.Wrap(apperr.StoreError, "Kunde inte skapa token", err))
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}
