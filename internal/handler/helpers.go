package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/apierror"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/ledger"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

// bindQuery is bindAndValidate for query-string filters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid query: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

func validateStruct(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string)
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// ── Error mapping ─────────────────────────────────────────────────────────────

var (
	notFound = []error{
		service.ErrProductNotFound, service.ErrBranchNotFound, service.ErrCategoryNotFound,
		service.ErrUserNotFound, service.ErrRoleNotFound, service.ErrExpenseNotFound,
		service.ErrPaymentNotFound, ledger.ErrSaleNotFound,
	}
	conflict = []error{
		ledger.ErrInsufficientStock, ledger.ErrAlreadyReturned, ledger.ErrNotASale,
		service.ErrDuplicateUsername, service.ErrDuplicateCategory, service.ErrRoleInUse,
		service.ErrBranchInUse, service.ErrWarehouseLocked, service.ErrSelfDelete,
		service.ErrAlreadyPaid,
	}
	unprocessable = []error{
		service.ErrInvalidInput, ledger.ErrInvalidQuantity, ledger.ErrInvalidTransfer,
		service.ErrNoBaseSalary, service.ErrNegativeNetPay,
	}
)

func matches(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// statusFor maps a service rejection onto an HTTP status; 0 means the error
// is unexpected.
func statusFor(err error) int {
	switch {
	case matches(err, notFound):
		return http.StatusNotFound
	case matches(err, conflict):
		return http.StatusConflict
	case matches(err, unprocessable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidCredential):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrInactiveUser), errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	}
	return 0
}

// respondError writes the envelope for a known rejection. Anything else is
// handed to the ErrorHandler middleware, which answers 500.
func respondError(c *gin.Context, err error) {
	if status := statusFor(err); status != 0 {
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	_ = c.Error(err)
}
