package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shakil5281/TallyKhata-sub000/internal/apierror"
	"github.com/shakil5281/TallyKhata-sub000/internal/dto"
	"github.com/shakil5281/TallyKhata-sub000/internal/service"
)

type PartiesHandler struct{ svc service.PartyService }

func NewPartiesHandler(svc service.PartyService) *PartiesHandler { return &PartiesHandler{svc: svc} }

func (h *PartiesHandler) Add(c *gin.Context) {
	var req dto.AddPartyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddParty(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PartiesHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.GetParty(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, apierror.New("party not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PartiesHandler) List(c *gin.Context) {
	parties, err := h.svc.ListParties(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, parties)
}

func (h *PartiesHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.UpdatePartyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.UpdateParty(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PartiesHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.DeleteParty(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PartiesHandler) RecomputeBalance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	balance, err := h.svc.RecomputeBalance(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"party_id": id.String(), "total_balance": balance})
}
