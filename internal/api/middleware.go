// Package api implements the Mimir REST API using chi.
package api

import (
	"net/http"

	"github.com/ogrim/mimir/internal/gate"
)

// RequireUnlocked returns middleware that rejects requests while the tap gate
// is still locked. Gated routes expose maintenance surfaces (export, editing
// helpers) that the plain reading UI hides.
func RequireUnlocked(keeper *gate.Keeper) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !keeper.Unlocked() {
				writeJSON(w, http.StatusForbidden, errorBody("gate is locked"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
