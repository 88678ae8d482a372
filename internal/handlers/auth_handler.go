package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"rallyround/internal/events"
	"rallyround/internal/models"
	"rallyround/internal/rbac"
	"rallyround/internal/utils"
	"rallyround/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionTTL = 24 * time.Hour

type AuthHandler struct {
	db            *gorm.DB
	roles         *rbac.GormRoleStore
	sessionCookie string
	log           *logger.Logger
}

func NewAuthHandler(db *gorm.DB, sessionCookie string) *AuthHandler {
	return &AuthHandler{
		db:            db,
		roles:         rbac.NewGormRoleStore(db),
		sessionCookie: sessionCookie,
		log:           logger.New("AuthHandler"),
	}
}

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	OrgName   string `json:"org_name" validate:"omitempty,min=2"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyResetCodeRequest struct {
	Code     string `json:"code" validate:"required"`
	Password string `json:"new_password" validate:"required,min=8"`
}

// Register creates a new account. Without a pending invite the user gets a
// personal organization and becomes its owner; with one, they join the
// invite's team instead.
// @Summary Register a new user
// @Description Register a new user with email, password and name details
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} map[string]string "User registered successfully"
// @Failure 400 {object} map[string]string "Validation error or email exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var existing models.User
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "User already exists"})
	}

	var invite models.TeamInvite
	hasInvite := h.db.Where("email = ? AND status = ? AND expires_at > ?",
		req.Email, models.InviteStatusPending, time.Now()).First(&invite).Error == nil

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
	}

	tx := h.db.Begin()
	if tx.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to start transaction"})
	}

	user := models.User{
		Email:     req.Email,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email already exists"})
	}

	if hasInvite {
		if err := h.joinInvitedTeam(tx, &user, &invite); err != nil {
			tx.Rollback()
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to accept invitation"})
		}
	} else {
		orgName := req.OrgName
		if orgName == "" {
			orgName = req.FirstName + "'s Organization"
		}
		if err := h.createPersonalOrg(tx, &user, orgName); err != nil {
			tx.Rollback()
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create organization"})
		}
	}

	if err := tx.Commit().Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to commit transaction"})
	}

	events.Emit("users.created", &user)

	return c.JSON(http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

// createPersonalOrg gives a fresh user their own organization as OWNER,
// which maps onto the org_admin role for access checks.
func (h *AuthHandler) createPersonalOrg(tx *gorm.DB, user *models.User, name string) error {
	suffix, err := utils.GenerateRandomString(6)
	if err != nil {
		return err
	}

	org := models.Organization{
		Name: name,
		Slug: slugify(name) + "-" + strings.ToLower(suffix),
	}
	if err := tx.Create(&org).Error; err != nil {
		return err
	}

	membership := models.OrgMembership{
		OrgID:  org.ID,
		UserID: user.ID,
		Role:   models.MembershipRoleOwner,
	}
	if err := tx.Create(&membership).Error; err != nil {
		return err
	}

	return models.AssignMembershipRole(tx, user.ID, models.MembershipRoleOwner, org.ID, "")
}

// joinInvitedTeam accepts a pending invite inside the registration
// transaction: team membership, org membership and the matching role row.
func (h *AuthHandler) joinInvitedTeam(tx *gorm.DB, user *models.User, invite *models.TeamInvite) error {
	var team models.Team
	if err := tx.First(&team, "id = ?", invite.TeamID).Error; err != nil {
		return err
	}

	teamMembership := models.TeamMembership{
		TeamID: team.ID,
		UserID: user.ID,
		Role:   invite.Role,
	}
	if err := tx.Create(&teamMembership).Error; err != nil {
		return err
	}

	orgMembership := models.OrgMembership{
		OrgID:  team.OrgID,
		UserID: user.ID,
		Role:   models.MembershipRoleMember,
	}
	if err := tx.Create(&orgMembership).Error; err != nil {
		return err
	}

	if err := models.AssignMembershipRole(tx, user.ID, invite.Role, team.OrgID, team.ID); err != nil {
		return err
	}

	invite.Status = models.InviteStatusAccepted
	return tx.Save(invite).Error
}

// Login authenticates the user, persists an auth session and sets the
// session cookie the page guard reads.
// @Summary Login user
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]string "JWT token"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	roles, err := h.roles.GetUserRoles(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load roles"})
	}

	roleNames := make([]string, len(roles))
	for i, r := range roles {
		roleNames[i] = string(r)
	}

	token, err := utils.GenerateJWT(user, roleNames)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}
	refreshToken, err := utils.GenerateRefreshToken(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	session := &models.AuthSession{
		UserID:    user.ID,
		Token:     token,
		Refresh:   refreshToken,
		IPAddress: utils.GetIPAddress(c.Request()),
		UserAgent: c.Request().UserAgent(),
		ExpiresAt: time.Now().Add(sessionTTL),
	}

	if err := h.db.Create(session).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create session"})
	}

	c.SetCookie(&http.Cookie{
		Name:     h.sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, map[string]string{"token": token, "refresh_token": refreshToken})
}

// Logout deletes the auth session referenced by the session cookie or the
// Bearer token and clears the cookie.
// @Summary Logout user
// @Description Invalidate the current session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logged out"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token := ""
	if cookie, err := c.Cookie(h.sessionCookie); err == nil {
		token = cookie.Value
	}
	if token == "" {
		header := c.Request().Header.Get("Authorization")
		token = strings.TrimPrefix(header, "Bearer ")
	}

	if token != "" {
		h.db.Where("token = ?", token).Delete(&models.AuthSession{})
	}

	c.SetCookie(&http.Cookie{
		Name:     h.sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}

// RequestPasswordReset generates a reset code, stores it, and hands it to the
// mailer through the event bus.
// @Summary Request password reset
// @Description Request a password reset code to be sent via email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Email for password reset"
// @Success 200 {object} map[string]string "Reset code sent if email exists"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	// Respond identically whether or not the email exists.
	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.JSON(http.StatusOK, map[string]string{"message": "If the email exists, a reset code will be sent"})
	}

	code, err := utils.GenerateRandomString(10)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate reset code"})
	}

	reset := models.PasswordReset{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}

	if err := h.db.Create(&reset).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create reset code"})
	}

	reset.User = &user
	events.Emit("password.reset", &reset)

	return c.JSON(http.StatusOK, map[string]string{"message": "If the email exists, a reset code will be sent"})
}

// VerifyResetCode checks a reset code, updates the password and invalidates
// every session the account had open.
// @Summary Verify reset code and set new password
// @Description Verify password reset code and update password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyResetCodeRequest true "Reset code verification and new password"
// @Success 200 {object} map[string]string "Password reset successful"
// @Failure 400 {object} map[string]string "Invalid or expired reset code"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/password-reset/verify [post]
func (h *AuthHandler) VerifyResetCode(c echo.Context) error {
	var req VerifyResetCodeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var reset models.PasswordReset
	if err := h.db.Where("code = ? AND used = ? AND expires_at > ?",
		req.Code, false, time.Now()).First(&reset).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid or expired reset code"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
	}

	var user models.User
	if err := h.db.Where("id = ?", reset.UserID).First(&user).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get user"})
	}

	h.db.Model(&user).Update("password", string(hashedPassword))
	h.db.Model(&reset).Update("used", true)
	h.db.Where("user_id = ?", user.ID).Delete(&models.AuthSession{})

	return c.JSON(http.StatusOK, map[string]string{"message": "Password reset successfully"})
}

// RefreshToken issues a new access token against a valid refresh token and
// rotates the stored session.
// @Summary Refresh access token
// @Description Get a new access token using a valid refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh_token body string true "Refresh token"
// @Success 200 {object} map[string]string "New access token"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Invalid refresh token"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}

	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid input"})
	}

	if _, err := utils.ParseRefreshToken(input.RefreshToken); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid refresh token"})
	}

	var session models.AuthSession
	if err := h.db.Where("refresh = ? AND expires_at > ?", input.RefreshToken, time.Now()).First(&session).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid refresh token"})
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", session.UserID).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not found"})
	}

	roles, err := h.roles.GetUserRoles(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load roles"})
	}

	roleNames := make([]string, len(roles))
	for i, r := range roles {
		roleNames[i] = string(r)
	}

	accessToken, err := utils.GenerateJWT(user, roleNames)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate access token"})
	}

	session.Token = accessToken
	session.ExpiresAt = time.Now().Add(sessionTTL)
	if err := h.db.Save(&session).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save access token"})
	}

	return c.JSON(http.StatusOK, map[string]string{"token": accessToken, "exp": "24h"})
}

// GetMe returns the current user
// @Summary Get current user
// @Description Get details of the current authenticated user
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} models.User
// @Router /auth/me [get]
func (h *AuthHandler) GetMe(c echo.Context) error {
	userID, _ := c.Get("userID").(string)

	var user models.User
	if err := h.db.Where("id = ?", userID).
		Preload("Roles").
		Preload("Orgs").
		Preload("Teams").
		First(&user).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}
	return c.JSON(http.StatusOK, user)
}

// ListUsers returns a list of all users
// @Summary List all users
// @Description Get a list of all users (requires member management permission)
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {array} models.User
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/users [get]
func (h *AuthHandler) ListUsers(c echo.Context) error {
	var users []models.User
	if err := h.db.Preload("Roles").Find(&users).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch users"})
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser returns details of a specific user
// @Summary Get user details
// @Description Get details of a specific user (requires member management permission)
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/users/{id} [get]
func (h *AuthHandler) GetUser(c echo.Context) error {
	id := c.Param("id")
	var user models.User
	if err := h.db.Preload("Roles").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch user"})
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser updates a user's profile fields
// @Summary Update user details
// @Description Update details of a specific user (requires member management permission)
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/users/{id} [put]
func (h *AuthHandler) UpdateUser(c echo.Context) error {
	id := c.Param("id")
	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch user"})
	}

	var updateData struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	if err := c.Bind(&updateData); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid input"})
	}

	user.FirstName = updateData.FirstName
	user.LastName = updateData.LastName

	if err := h.db.Save(&user).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update user"})
	}

	return c.JSON(http.StatusOK, user)
}

// DeleteUser deletes a user and their sessions
// @Summary Delete user
// @Description Delete a specific user (requires member management permission)
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string "User deleted successfully"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/users/{id} [delete]
func (h *AuthHandler) DeleteUser(c echo.Context) error {
	id := c.Param("id")
	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch user"})
	}

	if err := h.db.Delete(&user).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete user"})
	}

	h.db.Where("user_id = ?", user.ID).Delete(&models.AuthSession{})

	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// InviteUserRequest is the request body for inviting a user to a team
type InviteUserRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Name   string `json:"name" validate:"required,min=2"`
	TeamID string `json:"team_id" validate:"required,uuid"`
	Role   string `json:"role" default:"MEMBER" validate:"required,oneof=MEMBER MANAGER"`
}

// InviteUser creates a pending invitation to a team
// @Summary Invite a user to join a team
// @Description Send an invitation email to a user to join a team
// @Tags auth
// @Accept json
// @Produce json
// @Param request body InviteUserRequest true "Invitation details"
// @Success 201 {object} map[string]string "Invitation sent successfully"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/invite [post]
func (h *AuthHandler) InviteUser(c echo.Context) error {
	userID, _ := c.Get("userID").(string)

	var request InviteUserRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(request); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	h.log.Info("Inviting %s to team %s", request.Email, request.TeamID)

	code, err := utils.GenerateRandomString(32)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate invite code"})
	}

	invite := models.TeamInvite{
		Code:      code,
		ExpiresAt: time.Now().Add(24 * 7 * time.Hour),
		InviterID: userID,
		TeamID:    request.TeamID,
		Status:    models.InviteStatusPending,
		Role:      models.MembershipRole(request.Role),
		Email:     request.Email,
		Name:      request.Name,
	}

	if err := h.db.Create(&invite).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create invitation"})
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "Invitation sent successfully"})
}

type AcceptInviteRequest struct {
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"omitempty,min=2"`
}

// AcceptInvite redeems an invitation code, creating the account if needed
// @Summary Accept a team invitation
// @Description Accept an invitation to join a team
// @Tags auth
// @Accept json
// @Produce json
// @Param code path string true "Invitation code"
// @Success 200 {object} map[string]string "Invitation accepted successfully"
// @Failure 400 {object} map[string]string "Invalid invitation"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/invite/accept/{code} [post]
func (h *AuthHandler) AcceptInvite(c echo.Context) error {
	code := c.Param("code")

	var req AcceptInviteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var invite models.TeamInvite
	if err := h.db.Where("code = ? AND status = ? AND expires_at > ?",
		code, models.InviteStatusPending, time.Now()).First(&invite).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid or expired invitation"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
	}

	tx := h.db.Begin()
	if tx.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to start transaction"})
	}

	firstName := req.FirstName
	if firstName == "" {
		firstName = invite.Name
	}

	var user models.User
	err = tx.Where("email = ?", invite.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Email:     invite.Email,
			FirstName: firstName,
			Password:  string(hashedPassword),
		}
		if err := tx.Create(&user).Error; err != nil {
			tx.Rollback()
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create user"})
		}
	} else if err != nil {
		tx.Rollback()
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to look up user"})
	}

	if err := h.joinInvitedTeam(tx, &user, &invite); err != nil {
		tx.Rollback()
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to join team"})
	}

	if err := tx.Commit().Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to commit transaction"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Invitation accepted successfully"})
}

// DeleteInvite cancels a pending invitation; only the inviter or the invitee
// may do it
// @Summary Delete a team invitation
// @Description Delete a pending team invitation
// @Tags auth
// @Accept json
// @Produce json
// @Param id path string true "Invitation ID"
// @Success 200 {object} map[string]string "Invitation deleted successfully"
// @Failure 400 {object} map[string]string "Invalid invitation"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/invite/{id} [delete]
func (h *AuthHandler) DeleteInvite(c echo.Context) error {
	userID, _ := c.Get("userID").(string)
	email, _ := c.Get("email").(string)
	inviteID := c.Param("id")

	var invite models.TeamInvite
	if err := h.db.Where("id = ? AND (inviter_id = ? OR email = ?)",
		inviteID, userID, email).First(&invite).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invitation not found"})
	}

	if err := h.db.Delete(&invite).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete invitation"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Invitation deleted successfully"})
}

// slugify lowercases a name and keeps only letters, digits and dashes.
func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = fmt.Sprintf("org-%d", time.Now().Unix())
	}
	return slug
}
