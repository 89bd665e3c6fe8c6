package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shakil5281/TallyKhata-sub000/internal/apierror"
	"github.com/shakil5281/TallyKhata-sub000/internal/service"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler { return &ReportsHandler{svc: svc} }

func (h *ReportsHandler) Dashboard(c *gin.Context) {
	stats, err := h.svc.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *ReportsHandler) Totals(c *gin.Context) {
	sum, err := h.svc.TotalsSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *ReportsHandler) DetailedTotals(c *gin.Context) {
	rows, err := h.svc.DetailedTotals(c.Request.Context(), c.Query("kind"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ReportsHandler) DailyTotals(c *gin.Context) {
	start, end := c.Query("start"), c.Query("end")
	if start == "" || end == "" {
		c.JSON(http.StatusBadRequest, apierror.New("start and end are required (YYYY-MM-DD)"))
		return
	}
	rows, err := h.svc.TotalsByDateRange(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ReportsHandler) TopParties(c *gin.Context) {
	n, _ := strconv.Atoi(c.DefaultQuery("n", "10"))
	parties, err := h.svc.TopParties(c.Request.Context(), n)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, parties)
}

func (h *ReportsHandler) PartyReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	report, err := h.svc.PartyReport(c.Request.Context(), id, c.DefaultQuery("period", service.PeriodAll))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
