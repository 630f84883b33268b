// Swagger annotations for the HTTP endpoints, grouped by tag.

package docs

// ============================================
// AUTH (@Tags auth)
// ============================================

// Register godoc
// @Summary      Register a new user
// @Description  Register a new driver account and receive an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "User registration details"
// @Success      201 {object} map[string]interface{} "User and access token"
// @Failure      400 {object} map[string]interface{} "Bad request"
// @Failure      409 {object} map[string]interface{} "Email already registered"
// @Failure      422 {object} map[string]interface{} "Validation error"
// @Router       /auth/register [post]

// Login godoc
// @Summary      User login
// @Description  Authenticate user and receive a JWT access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login credentials"
// @Success      200 {object} map[string]interface{} "User and access token"
// @Failure      401 {object} map[string]interface{} "Invalid credentials"
// @Router       /auth/login [post]

// ForgotPassword godoc
// @Summary      Request a password reset
// @Description  Issues a reset token. Responds 202 whether or not the email exists.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.ForgotPasswordRequest true "Account email"
// @Success      202 {object} map[string]interface{} "Reset requested"
// @Router       /auth/forgot-password [post]

// ResetPassword godoc
// @Summary      Reset password with a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.ResetPasswordRequest true "Reset token and new password"
// @Success      200 {object} map[string]interface{} "Password updated"
// @Failure      400 {object} map[string]interface{} "Invalid or expired token"
// @Router       /auth/reset-password [post]

// ============================================
// EMERGENCIES (@Tags emergency)
// ============================================

// Raise godoc
// @Summary      Raise an emergency
// @Description  Creates the caller's active emergency and broadcasts an alert. One active emergency per user.
// @Tags         emergency
// @Accept       json
// @Produce      json
// @Param        request body dto.RaiseEmergencyRequest true "Emergency location"
// @Success      201 {object} map[string]interface{} "Created emergency"
// @Failure      409 {object} map[string]interface{} "Active emergency already exists"
// @Failure      422 {object} map[string]interface{} "Validation error"
// @Security     BearerAuth
// @Router       /emergencies [post]

// Cancel godoc
// @Summary      Cancel own active emergency
// @Tags         emergency
// @Produce      json
// @Success      200 {object} map[string]interface{} "Resolved emergency id"
// @Failure      404 {object} map[string]interface{} "No active emergency"
// @Security     BearerAuth
// @Router       /emergencies/cancel [post]

// Deactivate godoc
// @Summary      Deactivate a specific emergency
// @Description  Resolves the emergency by id. Only the owner may deactivate it.
// @Tags         emergency
// @Produce      json
// @Param        emergency_id path string true "Emergency ID"
// @Success      200 {object} map[string]interface{} "Resolved emergency id"
// @Failure      404 {object} map[string]interface{} "Emergency not found"
// @Security     BearerAuth
// @Router       /emergencies/{emergency_id} [delete]

// Active godoc
// @Summary      Get own active emergency
// @Tags         emergency
// @Produce      json
// @Success      200 {object} map[string]interface{} "Active emergency"
// @Failure      404 {object} map[string]interface{} "No active emergency"
// @Security     BearerAuth
// @Router       /emergencies/active [get]

// Nearby godoc
// @Summary      List nearby active emergencies
// @Description  Active emergencies of other users within the caller's alert radius of the given point.
// @Tags         emergency
// @Produce      json
// @Param        latitude query number true "Observer latitude"
// @Param        longitude query number true "Observer longitude"
// @Success      200 {object} map[string]interface{} "Emergencies with distances"
// @Failure      422 {object} map[string]interface{} "Validation error"
// @Security     BearerAuth
// @Router       /emergencies/nearby [get]

// ============================================
// CHAT (@Tags chat)
// ============================================

// Send godoc
// @Summary      Send a chat message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request body dto.SendMessageRequest true "Message text, location and optional type"
// @Success      201 {object} map[string]interface{} "Created message"
// @Failure      422 {object} map[string]interface{} "Validation error"
// @Security     BearerAuth
// @Router       /chat/messages [post]

// NearbyMessages godoc
// @Summary      List nearby recent messages
// @Description  Messages from the last 24 hours within the caller's alert radius of the given point.
// @Tags         chat
// @Produce      json
// @Param        latitude query number true "Observer latitude"
// @Param        longitude query number true "Observer longitude"
// @Param        limit query integer false "Maximum messages to return (default 50, max 200)"
// @Success      200 {object} map[string]interface{} "Messages with distances"
// @Failure      422 {object} map[string]interface{} "Validation error"
// @Security     BearerAuth
// @Router       /chat/nearby [get]

// DeleteMessage godoc
// @Summary      Delete own chat message
// @Tags         chat
// @Produce      json
// @Param        message_id path string true "Message ID"
// @Success      200 {object} map[string]interface{} "Deleted"
// @Failure      404 {object} map[string]interface{} "Message not found"
// @Security     BearerAuth
// @Router       /chat/messages/{message_id} [delete]

// ============================================
// PROFILE (@Tags profile)
// ============================================

// GetSettings godoc
// @Summary      Get alert settings
// @Tags         profile
// @Produce      json
// @Success      200 {object} map[string]interface{} "Settings, defaults when never saved"
// @Security     BearerAuth
// @Router       /settings [get]

// UpdateSettings godoc
// @Summary      Update alert settings
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request body dto.UpdateSettingsRequest true "Emergency contacts and alert radius"
// @Success      200 {object} map[string]interface{} "Saved settings"
// @Failure      422 {object} map[string]interface{} "Validation error"
// @Security     BearerAuth
// @Router       /settings [post]

// UpdateLocation godoc
// @Summary      Update last known location
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request body dto.UpdateLocationRequest true "Coordinates"
// @Success      200 {object} map[string]interface{} "Saved location"
// @Security     BearerAuth
// @Router       /location [post]

// BindDevice godoc
// @Summary      Bind a device to a subscription
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request body dto.BindDeviceRequest true "Device id and subscription type"
// @Success      200 {object} map[string]interface{} "Binding"
// @Failure      409 {object} map[string]interface{} "Subscription bound to another device"
// @Security     BearerAuth
// @Router       /devices/bind [post]

// CheckDevice godoc
// @Summary      Check device binding
// @Tags         profile
// @Produce      json
// @Param        device_id query string true "Device ID"
// @Success      200 {object} map[string]interface{} "Binding"
// @Failure      404 {object} map[string]interface{} "No binding"
// @Security     BearerAuth
// @Router       /devices/check [get]
