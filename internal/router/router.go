package router

import (
	"github.com/MehmetDemirkok/yurtsever/internal/config"
	"github.com/MehmetDemirkok/yurtsever/internal/handler"
	"github.com/MehmetDemirkok/yurtsever/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the API surface the presentation layer talks to.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	stayStore := store.NewStayStore(db)

	api := r.Group("/api")

	stayHandler := handler.NewStayHandler(stayStore, cfg.App.PageSize)
	api.POST("/stays", stayHandler.CreateStay)
	api.GET("/stays", stayHandler.ListStays)
	api.GET("/stays/:id", stayHandler.GetStay)
	api.PUT("/stays/:id", stayHandler.UpdateStay)
	api.DELETE("/stays/:id", stayHandler.DeleteStay)
	api.GET("/reports/detailed", stayHandler.DetailedReport)

	ioHandler := handler.NewImportExportHandler(stayStore)
	api.POST("/import", ioHandler.ImportXLSX)
	api.GET("/export/xlsx", ioHandler.ExportXLSX)
	api.GET("/export/csv", ioHandler.ExportCSV)
	api.GET("/reports/xlsx", ioHandler.ReportXLSX)
	api.GET("/template", ioHandler.Template)

	return r
}
