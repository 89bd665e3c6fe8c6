package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shakil5281/TallyKhata-sub000/internal/apierror"
	"github.com/shakil5281/TallyKhata-sub000/internal/dto"
	"github.com/shakil5281/TallyKhata-sub000/internal/service"
)

type AdminHandler struct {
	admin   service.AdminService
	exports service.ExportService
	statDir string
}

func NewAdminHandler(admin service.AdminService, exports service.ExportService, statementDir string) *AdminHandler {
	return &AdminHandler{admin: admin, exports: exports, statDir: statementDir}
}

func (h *AdminHandler) ValidateIntegrity(c *gin.Context) {
	report, err := h.admin.ValidateIntegrity(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Reset wipes everything. The confirm=yes guard keeps the destructive path
// behind an explicit client acknowledgement.
func (h *AdminHandler) Reset(c *gin.Context) {
	if c.Query("confirm") != "yes" {
		c.JSON(http.StatusBadRequest, apierror.New("destructive reset requires confirm=yes"))
		return
	}
	if err := h.admin.ResetToFresh(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) GetProfile(c *gin.Context) {
	resp, err := h.admin.GetProfile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) UpdateProfile(c *gin.Context) {
	var req dto.ProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.admin.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) GetSettings(c *gin.Context) {
	resp, err := h.admin.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req dto.SettingsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.admin.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) Snapshot(c *gin.Context) {
	snap, err := h.exports.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *AdminHandler) ExportXLSX(c *gin.Context) {
	f, err := h.exports.ExportXLSX(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "ledger_"+time.Now().Format("20060102")+".xlsx"))
	if err := f.Write(c.Writer); err != nil {
		respondError(c, err)
	}
}

func (h *AdminHandler) PartyStatementPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	path, err := h.exports.PartyStatementPDF(c.Request.Context(), id, h.statDir)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, "statement.pdf")
}
