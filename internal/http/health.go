package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veenadevi/tn-lms-backend/internal/database"
)

// HealthController reports service liveness and store reachability.
type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Status pings the store and reports overall health.
// GET /health
func (controller *HealthController) Status(c *gin.Context) {
	status := "ok"
	code := http.StatusOK

	sqlDB, err := controller.db.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":  status,
		"version": controller.version,
	})
}
