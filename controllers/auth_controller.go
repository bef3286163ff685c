package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-reservation-backend/middleware"
	"hotel-reservation-backend/services"
	"hotel-reservation-backend/utils"
)

type AuthController struct {
	auth       services.AuthService
	sessionTTL time.Duration
}

func NewAuthController(auth services.AuthService, sessionTTL time.Duration) *AuthController {
	return &AuthController{auth: auth, sessionTTL: sessionTTL}
}

type registerPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	_, err := ac.auth.Register(c.Request.Context(), services.RegisterInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Phone:    payload.Phone,
		Password: payload.Password,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.JSONMessage(c, http.StatusCreated, "Registered successfully")
}

func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	user, token, err := ac.auth.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, int(ac.sessionTTL.Seconds()), "/", "", false, true)

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		_ = ac.auth.Logout(c.Request.Context(), token)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)

	utils.JSONMessage(c, http.StatusOK, "Logged out")
}

// Me returns the profile behind the current session.
func (ac *AuthController) Me(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := ac.auth.UserByID(c.Request.Context(), p.UserID)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"id":       user.ID,
		"fullName": user.FullName,
		"email":    user.Email,
		"phone":    user.Phone,
		"role":     user.Role,
	})
}
