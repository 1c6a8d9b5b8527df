package services

import (
	"fmt"
	"log"

	"github.com/opencertify/certify/internal/config"
	"github.com/opencertify/certify/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	DraftStore   string            `json:"draftStore"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck verifies the database connection and, when the Redis draft
// store is configured, Redis reachability.
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			log.Printf("Health check failed - database ping: %v", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// Check the draft store backend
	if cfg.DraftStore == "redis" {
		if err := utils.PingAddr(cfg.RedisAddr); err != nil {
			result.Status = "unhealthy"
			result.DraftStore = "unreachable"
			result.Details["redis_error"] = err.Error()
			if result.ErrorMessage == "" {
				result.ErrorMessage = fmt.Sprintf("Redis ping failed: %v", err)
			} else {
				result.ErrorMessage += fmt.Sprintf("; Redis ping failed: %v", err)
			}
			log.Printf("Health check failed - redis ping: %v", err)
		} else {
			result.DraftStore = "ok"
			result.Details["redis_addr"] = cfg.RedisAddr
		}
	} else {
		result.DraftStore = "ok"
		result.Details["draft_store"] = "memory"
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}
