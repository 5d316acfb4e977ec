package server

import (
	"net/http"

	"MusicHub/core/apperror"
	"MusicHub/logger"
)

// UpdateStreamRequest is the body of POST /api/update-stream.
type UpdateStreamRequest struct {
	SongID string `json:"song_id"`
}

// UpdateStreamHandler records one play of a song.
func (h *APIHandler) UpdateStreamHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateStreamRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "Invalid request body"})
		return
	}

	stream, err := h.playcount.Increment(r.Context(), req.SongID)
	if err != nil {
		if apperror.Is(err, apperror.KindValidation) {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": apperror.Message(err)})
			return
		}
		logger.Error("[Stream] 更新播放次数失败", logger.String("song_id", req.SongID), logger.ErrorField(err))
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "error": apperror.Message(err)})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Stream updated",
		"stream":  stream,
	})
}

// GetStreamsHandler lists every play counter.
func (h *APIHandler) GetStreamsHandler(w http.ResponseWriter, r *http.Request) {
	streams, err := h.playcount.ListAll(r.Context())
	if err != nil {
		logger.Error("[Stream] 获取播放次数失败", logger.ErrorField(err))
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "error": apperror.Message(err)})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"streams": streams,
	})
}
