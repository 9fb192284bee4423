package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-ordering/middlewares"
	"github.com/yeremiapane/restaurant-ordering/services"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

// Authenticate -> POST /api/auth (register-or-login)
func (ac *AuthController) Authenticate(c *gin.Context) {
	var in services.CustomerAuthInput
	if !bindJSON(c, &in) {
		return
	}

	result, err := ac.Auth.Authenticate(c.Request.Context(), in)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	if result.Created {
		utils.RespondJSON(c, http.StatusCreated, "Customer registered", result)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Login successful", result)
}

// StaffLogin -> POST /api/auth/staff
func (ac *AuthController) StaffLogin(c *gin.Context) {
	var in services.StaffLoginInput
	if !bindJSON(c, &in) {
		return
	}

	result, err := ac.Auth.StaffLogin(in)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Staff login successful", result)
}

// Me -> GET /api/auth/me
func (ac *AuthController) Me(c *gin.Context) {
	if c.GetString(middlewares.CtxRole) != utils.RoleCustomer {
		utils.RespondAppError(c, utils.NewForbiddenError("customer token required"))
		return
	}

	id, _ := c.Get(middlewares.CtxUserID)
	userID, _ := id.(uint)
	customer, err := ac.Auth.Customer(c.Request.Context(), userID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Current customer", customer)
}

// Logout -> POST /api/auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	token := c.GetString(middlewares.CtxToken)
	expiry, _ := c.Get(middlewares.CtxTokenExpiry)
	expiresAt, _ := expiry.(time.Time)

	if err := ac.Auth.Logout(c.Request.Context(), token, expiresAt); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}
