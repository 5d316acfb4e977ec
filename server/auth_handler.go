package server

import (
	"net/http"

	"MusicHub/core/apperror"
	"MusicHub/logger"
)

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler handles POST /register.
func (h *APIHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	user, err := h.identity.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch apperror.KindOf(err) {
		case apperror.KindValidation, apperror.KindConflict:
			logger.Warn("[Register] 注册被拒绝",
				logger.String("email", req.Email),
				logger.String("reason", apperror.Message(err)))
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": apperror.Message(err)})
		default:
			logger.Error("[Register] 创建用户失败", logger.ErrorField(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"message": "Error signing up",
				"error":   apperror.Message(err),
			})
		}
		return
	}

	logger.Info("[Register] 注册成功", logger.String("user_id", user.ID))
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Account created successfully!"})
}

// LoginHandler handles POST /login.
func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	token, err := h.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch apperror.KindOf(err) {
		case apperror.KindValidation, apperror.KindNotFound, apperror.KindAuth:
			logger.Warn("[Login] 登录失败",
				logger.String("email", req.Email),
				logger.String("reason", apperror.Message(err)))
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": apperror.Message(err)})
		default:
			logger.Error("[Login] 登录出错", logger.ErrorField(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"message": "Error logging in",
				"error":   apperror.Message(err),
			})
		}
		return
	}

	logger.Info("[Login] 登录成功", logger.String("email", req.Email))
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Login successful",
		"token":   token,
	})
}

// ProfileHandler handles GET /api/me for an authenticated user.
func (h *APIHandler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return
	}

	user, err := h.identity.Profile(r.Context(), userID)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": apperror.Message(err)})
			return
		}
		logger.Error("[Profile] 获取用户信息失败", logger.ErrorField(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to get user profile"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}
