package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-reservation-backend/services"
	"hotel-reservation-backend/utils"
)

// serviceError maps service sentinels onto HTTP responses. Anything unknown is
// a dependency failure: logged with detail, reported without it.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrMissingFields):
		utils.JSONError(c, http.StatusBadRequest, "missing required fields")
	case errors.Is(err, services.ErrInvalidStayDates),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrInvalidRateRange):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		utils.JSONError(c, http.StatusConflict, "email already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
	default:
		log.Printf("internal error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "something went wrong")
	}
}
