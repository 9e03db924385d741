package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/blob"
	"github.com/aussiebroadwan/nexus/internal/nexus/session"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
	"github.com/aussiebroadwan/nexus/pkg/httpx"
	"github.com/aussiebroadwan/nexus/pkg/nexusapi"
	"golang.org/x/sync/errgroup"
)

const readyCheckTimeout = 2 * time.Second

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the database, the session backend and the upload store in parallel
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	nexusapi.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	nexusapi.HealthResponse	"one or more dependencies are down"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	sessions session.Backend,
	blobs blob.Store,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		checks := &nexusapi.HealthChecks{}

		// Checks report into their own field and never fail the group.
		var g errgroup.Group
		g.Go(func() error {
			checks.Database = checkResult(st.Ping(ctx))
			return nil
		})
		g.Go(func() error {
			checks.Sessions = checkResult(sessions.Ping(ctx))
			return nil
		})
		g.Go(func() error {
			checks.Storage = checkResult(blobs.Ping(ctx))
			return nil
		})
		_ = g.Wait()

		status, code := "ok", http.StatusOK
		if checks.Database != "ok" || checks.Sessions != "ok" || checks.Storage != "ok" {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, nexusapi.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

func checkResult(err error) string {
	if err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
