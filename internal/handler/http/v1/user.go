package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Register a new user
// @Description Register a new user account and open a session.
// @Tags Users
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration request"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 409 {object} map[string]string "Email already registered"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input RegisterRequest
	log := h.logger.WithField("method", "register")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// Несовпадение password и password_confirm отклоняется здесь,
	// до какого-либо обращения к хранилищу
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := RegisterRequestToUserModel(input)
	token, err := h.userService.Register(c.Request.Context(), user, input.Password)
	if err != nil {
		log.WithError(err).Warn("Failed to register user")
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		User:    ModelToUserResponse(user),
		Token:   token,
		Message: "User registered successfully",
	})
}

// @Summary Log in
// @Description Authenticate by email and password, open a session.
// @Tags Users
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login request"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	log := h.logger.WithField("method", "login")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.userService.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		log.WithError(err).Warn("Failed to log in")
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		User:    ModelToUserResponse(user),
		Token:   token,
		Message: "Login successful",
	})
}

// @Summary Log out
// @Description Invalidate the current session token. Requires authentication.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "Logout successful"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	log := h.logger.WithField("method", "logout")

	token := extractToken(c)
	if err := h.userService.Logout(c.Request.Context(), token); err != nil {
		log.WithError(err).Warn("Failed to log out")
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// @Summary Get own profile
// @Description Get the authenticated user's profile.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users/me [get]
func (h *Handler) getProfile(c *gin.Context) {
	log := h.logger.WithField("method", "getProfile")

	user, err := h.userService.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		log.WithError(err).Warn("Failed to get profile")
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ModelToUserResponse(user))
}

// @Summary Update own profile
// @Description Update the authenticated user's profile fields.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body UpdateProfileRequest true "Profile update request"
// @Success 200 {object} UserResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users/me [put]
func (h *Handler) updateProfile(c *gin.Context) {
	var input UpdateProfileRequest
	log := h.logger.WithField("method", "updateProfile")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := UpdateProfileRequestToUserModel(input)
	model.ID = currentUserID(c)

	updated, err := h.userService.UpdateProfile(c.Request.Context(), model)
	if err != nil {
		log.WithError(err).Warn("Failed to update profile")
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ModelToUserResponse(updated))
}
