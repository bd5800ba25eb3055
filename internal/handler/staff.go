package handler

import (
	"net/http"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/dto"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/middleware"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/service"

	"github.com/gin-gonic/gin"
)

// StaffHandler serves user accounts, staff roles and payroll.
type StaffHandler struct {
	svc     service.StaffService
	reports service.ReportService
}

func NewStaffHandler(svc service.StaffService, reports service.ReportService) *StaffHandler {
	return &StaffHandler{svc: svc, reports: reports}
}

// ── Users ─────────────────────────────────────────────────────────────────────

func (h *StaffHandler) ListUsers(c *gin.Context) {
	resp, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateUser godoc
// @Summary      Create a user account
// @Tags         staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body     dto.CreateUserRequest true "Account"
// @Success      201  {object} dto.UserResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/staff [post]
func (h *StaffHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *StaffHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StaffHandler) DeleteUser(c *gin.Context) {
	if err := h.svc.DeleteUser(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Staff roles ───────────────────────────────────────────────────────────────

func (h *StaffHandler) ListRoles(c *gin.Context) {
	resp, err := h.svc.ListRoles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StaffHandler) CreateRole(c *gin.Context) {
	var req dto.StaffRoleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateRole(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *StaffHandler) UpdateRole(c *gin.Context) {
	var req dto.StaffRoleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateRole(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StaffHandler) DeleteRole(c *gin.Context) {
	if err := h.svc.DeleteRole(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Payroll ───────────────────────────────────────────────────────────────────

// ProcessSalary godoc
// @Summary      Pay a monthly salary
// @Description  Records the payment and a matching Salary expense at the employee's branch.
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body     dto.ProcessSalaryRequest true "Payment"
// @Success      201  {object} dto.SalaryPaymentResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/payroll [post]
func (h *StaffHandler) ProcessSalary(c *gin.Context) {
	var req dto.ProcessSalaryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ProcessSalary(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *StaffHandler) ListPayments(c *gin.Context) {
	var filter dto.PayrollFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListPayments(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StaffHandler) GetPayment(c *gin.Context) {
	resp, err := h.svc.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SalarySlip streams the payslip PDF of a payment.
func (h *StaffHandler) SalarySlip(c *gin.Context) {
	id := c.Param("id")
	data, err := h.reports.SalarySlipPDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="payslip_`+id+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
