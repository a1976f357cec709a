package routes

import (
	"errors"
	"net/http"

	"pagebinder-notes/pagebinder/config"
	"pagebinder-notes/pagebinder/database"
	"pagebinder-notes/pagebinder/services"

	"github.com/gin-gonic/gin"
)

func RegisterMaintenanceRoutes(router *gin.Engine, db *database.Database, cfg config.Config, orderService services.OrderServiceInterface, backupService services.BackupServiceInterface) {
	group := router.Group("/api/v1/maintenance")
	{
		group.POST("/normalize", func(c *gin.Context) { NormalizeOrderIndexes(c, db, orderService) })
		group.POST("/backup", func(c *gin.Context) { CreateBackup(c, db, cfg, backupService) })
	}
}

// NormalizeOrderIndexes resequences order_index values into dense per-group
// sequences and reports how many rows moved.
func NormalizeOrderIndexes(c *gin.Context, db *database.Database, orderService services.OrderServiceInterface) {
	changes, err := orderService.NormalizeOrderIndexes(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to normalize order indexes: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order indexes normalized",
		"changes": changes,
		"total":   changes.Total(),
	})
}

// CreateBackup snapshots the database into the configured backup directory.
func CreateBackup(c *gin.Context, db *database.Database, cfg config.Config, backupService services.BackupServiceInterface) {
	path, err := backupService.CreateBackup(db, cfg.DBPath, cfg.BackupDir, cfg.BackupKeep)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Backups are only supported for SQLite databases"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create backup: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Backup created",
		"path":    path,
	})
}
