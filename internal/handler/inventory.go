package handler

import (
	"net/http"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/dto"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/middleware"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/service"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// ListStock godoc
// @Summary      List stock rows
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        branchId query string false "Branch filter (admins only)"
// @Success      200 {array} dto.StockRowResponse
// @Router       /v1/stock [get]
func (h *InventoryHandler) ListStock(c *gin.Context) {
	var filter dto.StockFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListStock(c.Request.Context(), middleware.GetPrincipal(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PurchaseEntry godoc
// @Summary      Receive stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body     dto.PurchaseEntryRequest true "Received quantity"
// @Success      201  {object} dto.StockRowResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/stock/purchase [post]
func (h *InventoryHandler) PurchaseEntry(c *gin.Context) {
	var req dto.PurchaseEntryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.PurchaseEntry(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Transfer godoc
// @Summary      Move stock between branches
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body    dto.TransferRequest true "Transfer"
// @Success      200  {array} dto.StockRowResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/stock/transfer [post]
func (h *InventoryHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Transfer(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
