package handler

import (
	"net/http"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/dto"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/middleware"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/service"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct {
	svc     service.SaleService
	reports service.ReportService
}

func NewSalesHandler(svc service.SaleService, reports service.ReportService) *SalesHandler {
	return &SalesHandler{svc: svc, reports: reports}
}

// Checkout godoc
// @Summary      Check out a cart
// @Description  Records a sale and deducts stock at the selling branch. Overselling is allowed and flagged.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body     dto.CheckoutRequest true "Cart"
// @Success      201  {object} dto.SaleResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/sales [post]
func (h *SalesHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Checkout(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List sales and returns
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        branchId query string false "Branch filter (admins only)"
// @Param        type     query string false "SALE or RETURN"
// @Success      200 {array} dto.SaleResponse
// @Router       /v1/sales [get]
func (h *SalesHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), middleware.GetPrincipal(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SalesHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Return godoc
// @Summary      Return a sale
// @Description  Restocks every line at the sale's branch and records a RETURN entry.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id  path     string true "Sale ID"
// @Success      201 {object} dto.SaleResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/sales/{id}/return [post]
func (h *SalesHandler) Return(c *gin.Context) {
	resp, err := h.svc.Return(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Delete reverses the stock effect of a sale or return and removes it.
func (h *SalesHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Invoice streams the printable receipt of a sale or return.
func (h *SalesHandler) Invoice(c *gin.Context) {
	id := c.Param("id")
	data, err := h.reports.InvoicePDF(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="invoice_`+id+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
