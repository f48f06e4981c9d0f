package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/pkg/httputil"
)

// Pinger is implemented by backends that can report whether they are reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// pingers collects every backend that supports a health check.
func pingers(backends ...any) []Pinger {
	var p []Pinger
	for _, b := range backends {
		if pinger, ok := b.(Pinger); ok {
			p = append(p, pinger)
		}
	}

	return p
}

// RegisterHealthzRoutes registers the routes for the healthz endpoint.
func (co Controller) RegisterHealthzRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsHealthz)
	r.GET("", co.GetHealthz)
}

// OptionsHealthz returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/healthz [options]
func (co Controller) OptionsHealthz(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetHealthz returns data about the application health
//
//	@Summary		Get health
//	@Description	Returns no content if all storage backends are reachable and an error otherwise
//	@Tags			General
//	@Produce		json
//	@Success		204
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/healthz [get]
func (co Controller) GetHealthz(c *gin.Context) {
	for _, p := range co.pingers {
		if err := p.Ping(c.Request.Context()); err != nil {
			httputil.ErrorHandler(c, err)
			return
		}
	}

	c.Status(http.StatusNoContent)
}
