package server

import (
	"net/http"

	"MusicHub/core/apperror"
	"MusicHub/logger"
)

// StoreTokenRequest is the body of POST /store-token.
type StoreTokenRequest struct {
	Token string `json:"token"`
}

// StoreTokenHandler overwrites the relayed token.
func (h *APIHandler) StoreTokenHandler(w http.ResponseWriter, r *http.Request) {
	var req StoreTokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if err := h.relay.Store(r.Context(), req.Token); err != nil {
		if apperror.Is(err, apperror.KindValidation) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": apperror.Message(err)})
			return
		}
		logger.Error("[Relay] 保存 token 失败", logger.ErrorField(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": apperror.Message(err)})
		return
	}

	// 不记录 token 本身
	logger.Info("[Relay] token stored", logger.Int("length", len(req.Token)))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Token saved successfully!"})
}

// GetTokenHandler returns the relayed token.
func (h *APIHandler) GetTokenHandler(w http.ResponseWriter, r *http.Request) {
	token, err := h.relay.Fetch(r.Context())
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": apperror.Message(err)})
			return
		}
		logger.Error("[Relay] 读取 token 失败", logger.ErrorField(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": apperror.Message(err)})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
