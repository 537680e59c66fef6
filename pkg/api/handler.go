// Package api exposes the store over HTTP.
package api

import (
	"time"

	"go.uber.org/zap"

	"zoo_management/pkg/store"
)

// Handler holds what every route needs. The store is injected so tests can
// run handlers against an in-memory database.
type Handler struct {
	store store.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewHandler(s store.Store, log *zap.Logger) *Handler {
	SetupValidator()
	return &Handler{store: s, log: log, now: time.Now}
}
