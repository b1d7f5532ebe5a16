package session

import (
	"go.uber.org/zap"

	"petiscaria/internal/storage"
)

type Module struct {
	Guard      *Guard
	Manager    *Manager
	Controller *Controller
}

// NewModule needs the token issuer, which is itself built on NewTokens;
// build Tokens first and hand the API client in here.
func NewModule(store storage.Store, issuer TokenIssuer, logger *zap.Logger) *Module {
	guard := NewGuard(store, logger)
	manager := NewManager(store, issuer, logger)
	return &Module{
		Guard:      guard,
		Manager:    manager,
		Controller: NewController(manager, guard, logger),
	}
}
