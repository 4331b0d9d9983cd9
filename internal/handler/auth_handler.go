package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edusync-api/internal/middleware"
	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/service"
	"github.com/noah-isme/edusync-api/pkg/response"
)

// CookieConfig describes the session cookie set on login.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service *service.AuthService
	cookie  CookieConfig
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{service: svc, cookie: cookie}
}

// Register godoc
// @Summary Register an account
// @Description Create a student or teacher account. It may await admin approval.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.RegisterRequest true "Registration payload"
// @Success 201 {object} response.Envelope{data=models.RegisterResponse}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := bindJSON(c, &req, "invalid registration payload"); err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// Login godoc
// @Summary Authenticate user
// @Description Authenticate by email and password and open a session
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope{data=models.LoginResponse}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := bindJSON(c, &req, "invalid login payload"); err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.cookie.Name != "" {
		maxAge := int(time.Until(res.ExpiresAt).Seconds())
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(h.cookie.Name, res.Token, maxAge, "/", "", h.cookie.Secure, true)
	}
	response.OK(c, res)
}

// Logout godoc
// @Summary Logout current session
// @Tags Authentication
// @Produce json
// @Security SessionAuth
// @Success 204
// @Failure 401 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Logout(c.Request.Context(), p); err != nil {
		response.Error(c, err)
		return
	}
	if h.cookie.Name != "" {
		c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	}
	response.NoContent(c)
}

// Me godoc
// @Summary Current user
// @Description Return the authenticated user with their student or teacher profile
// @Tags Authentication
// @Produce json
// @Security SessionAuth
// @Success 200 {object} response.Envelope{data=models.Profile}
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	profile, err := h.service.Profile(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, profile)
}

// ChangePassword godoc
// @Summary Change password
// @Tags Authentication
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body models.ChangePasswordRequest true "Password payload"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.ChangePasswordRequest
	if err := bindJSON(c, &req, "invalid password payload"); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.ChangePassword(c.Request.Context(), p, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Pending godoc
// @Summary List accounts awaiting approval
// @Tags Admin
// @Produce json
// @Security SessionAuth
// @Success 200 {object} response.Envelope{data=[]models.User}
// @Failure 403 {object} response.Envelope
// @Router /admin/pending-users [get]
func (h *AuthHandler) Pending(c *gin.Context) {
	users, err := h.service.ListPending(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, users)
}

// Approve godoc
// @Summary Approve an account
// @Tags Admin
// @Produce json
// @Security SessionAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope{data=models.User}
// @Failure 404 {object} response.Envelope
// @Router /admin/approve-user/{id} [post]
func (h *AuthHandler) Approve(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	user, err := h.service.Approve(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

// Reject godoc
// @Summary Reject an account
// @Tags Admin
// @Produce json
// @Security SessionAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope{data=models.User}
// @Failure 404 {object} response.Envelope
// @Router /admin/reject-user/{id} [post]
func (h *AuthHandler) Reject(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	user, err := h.service.Reject(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

// CreateUser godoc
// @Summary Create an account
// @Description Admins create accounts of any role, approved by default
// @Tags Users
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body models.CreateUserRequest true "User payload"
// @Success 201 {object} response.Envelope{data=models.User}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /users [post]
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := bindJSON(c, &req, "invalid user payload"); err != nil {
		response.Error(c, err)
		return
	}
	user, err := h.service.CreateUser(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}
