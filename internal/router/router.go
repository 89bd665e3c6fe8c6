package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shakil5281/TallyKhata-sub000/internal/config"
	"github.com/shakil5281/TallyKhata-sub000/internal/handler"
	"github.com/shakil5281/TallyKhata-sub000/internal/middleware"
	"github.com/shakil5281/TallyKhata-sub000/internal/repository"
	"github.com/shakil5281/TallyKhata-sub000/internal/service"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB
func New(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	partyRepo := repository.NewPartyRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	reportRepo := repository.NewReportRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	partySvc := service.NewPartyService(partyRepo, txRepo)
	ledgerSvc := service.NewLedgerService(txRepo, partyRepo)
	reportSvc := service.NewReportService(reportRepo, partyRepo, txRepo)
	adminSvc := service.NewAdminService(db, partyRepo, txRepo, profileRepo)
	exportSvc := service.NewExportService(partyRepo, txRepo, adminSvc, partySvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	parties := handler.NewPartiesHandler(partySvc)
	transactions := handler.NewTransactionsHandler(ledgerSvc)
	reports := handler.NewReportsHandler(reportSvc)
	admin := handler.NewAdminHandler(adminSvc, exportSvc, cfg.StatementDir)
	health := handler.NewHealthHandler(db)

	r.GET("/health", health.Check)

	v1 := r.Group("/v1")
	{
		v1.POST("/parties", parties.Add)
		v1.GET("/parties", parties.List)
		v1.GET("/parties/:id", parties.Get)
		v1.PATCH("/parties/:id", parties.Update)
		v1.DELETE("/parties/:id", parties.Delete)
		v1.POST("/parties/:id/recompute", parties.RecomputeBalance)
		v1.GET("/parties/:id/transactions", transactions.ListForParty)
		v1.GET("/parties/:id/report", reports.PartyReport)
		v1.GET("/parties/:id/statement.pdf", admin.PartyStatementPDF)

		v1.POST("/transactions", transactions.Add)
		v1.GET("/transactions", transactions.List)
		v1.PATCH("/transactions/:id", transactions.Update)
		v1.DELETE("/transactions/:id", transactions.Delete)

		v1.GET("/reports/dashboard", reports.Dashboard)
		v1.GET("/reports/totals", reports.Totals)
		v1.GET("/reports/totals/detailed", reports.DetailedTotals)
		v1.GET("/reports/daily", reports.DailyTotals)
		v1.GET("/reports/top-parties", reports.TopParties)

		v1.GET("/profile", admin.GetProfile)
		v1.PUT("/profile", admin.UpdateProfile)
		v1.GET("/settings", admin.GetSettings)
		v1.PUT("/settings", admin.UpdateSettings)

		v1.GET("/admin/integrity", admin.ValidateIntegrity)
		v1.POST("/admin/reset", admin.Reset)
		v1.GET("/export/snapshot", admin.Snapshot)
		v1.GET("/export/xlsx", admin.ExportXLSX)
	}

	return r
}
