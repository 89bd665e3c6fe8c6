package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shakil5281/TallyKhata-sub000/internal/apierror"
	"github.com/shakil5281/TallyKhata-sub000/internal/dto"
	"github.com/shakil5281/TallyKhata-sub000/internal/service"
)

type TransactionsHandler struct{ svc service.LedgerService }

func NewTransactionsHandler(svc service.LedgerService) *TransactionsHandler {
	return &TransactionsHandler{svc: svc}
}

func (h *TransactionsHandler) Add(c *gin.Context) {
	var req dto.AddTransactionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddTransaction(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TransactionsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.DeleteTransaction(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TransactionsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.UpdateTransactionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateTransaction(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TransactionsHandler) ListForParty(c *gin.Context) {
	partyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txs, err := h.svc.ListForParty(c.Request.Context(), partyID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

func (h *TransactionsHandler) List(c *gin.Context) {
	var filter dto.TransactionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid filter: "+err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
