package server

import (
	"MusicHub/core/identity"
	"MusicHub/core/playcount"
	"MusicHub/core/relay"
)

// APIHandler holds the services behind the HTTP endpoints.
type APIHandler struct {
	identity  *identity.Service
	tokens    TokenVerifier
	playcount *playcount.Service
	relay     *relay.Service
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(identitySvc *identity.Service, tokens TokenVerifier, playcountSvc *playcount.Service, relaySvc *relay.Service) *APIHandler {
	return &APIHandler{
		identity:  identitySvc,
		tokens:    tokens,
		playcount: playcountSvc,
		relay:     relaySvc,
	}
}
