package handlers

import (
	"net/http"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/services"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/middleware"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	svcs *services.Container,
	pool *pgxpool.Pool,
) {
	registerCustomValidators()

	// Health check route, optionally verifying database reachability
	r.GET("/health", func(c *gin.Context) {
		if cfg.EnableDBCheck && pool != nil {
			if err := pool.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "database unreachable"})
				return
			}
		}
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, svcs)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, svcs *services.Container) {
	// Every v1 operation writes audit fields, so the caller identity header
	// is mandatory on the whole group.
	v1 := r.Group("/api/v1", middleware.ActorIDMiddleware())

	registerAccountRoutes(v1, svcs)
}

// registerCustomValidators installs the binding-level validation rules shared
// by the request DTOs.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// money2dp: a decimal string with at most two fractional digits.
	_ = v.RegisterValidation("money2dp", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return d.Exponent() >= -2
	})
}
