package services

import (
	"context"
	"fmt"
	"time"

	"github.com/localnerve/mparser-center/internal/config"
	"github.com/localnerve/mparser-center/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Listener     string            `json:"listener,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

func (r *HealthCheckResult) fail(message string) {
	r.Status = HealthStatusUnhealthy
	if r.ErrorMessage == "" {
		r.ErrorMessage = message
	} else {
		r.ErrorMessage += "; " + message
	}
}

// HealthCheck pings the database and, when checkListener is set, the API port.
// The listener check is for out-of-process callers such as cmd/healthcheck.
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB, log *logrus.Logger, checkListener bool) HealthCheckResult {
	result := HealthCheckResult{
		Status:  HealthStatusHealthy,
		Details: make(map[string]string),
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.fail(fmt.Sprintf("Database connection error: %v", err))
		log.WithError(err).Error("Health check failed - database connection")
	} else {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		if err := sqlDB.PingContext(pingCtx); err != nil {
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.fail(fmt.Sprintf("Database ping failed: %v", err))
			log.WithError(err).Error("Health check failed - database ping")
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	if checkListener {
		if err := utils.PingListener(cfg.Port); err != nil {
			result.Listener = "unreachable"
			result.Details["listener_error"] = err.Error()
			result.fail(fmt.Sprintf("API listener ping failed: %v", err))
			log.WithError(err).Error("Health check failed - listener ping")
		} else {
			result.Listener = "ok"
		}
	}

	if result.Status == HealthStatusHealthy {
		log.Debug("Health check passed - all systems operational")
	}

	return result
}
