package handler

import (
	"errors"
	"net/http"
	"reflect"

	"dinepos/internal/apierror"
	"dinepos/internal/service"

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
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError translates service-layer sentinels into HTTP statuses with
// machine-readable codes. Anything unmatched is a 500 with the detail logged
// by the ErrorHandler middleware, never echoed to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.NewCoded("not_found", err.Error()))
	case errors.Is(err, service.ErrLineNotFound):
		c.JSON(http.StatusNotFound, apierror.NewCoded("line_not_found", err.Error()))
	case errors.Is(err, service.ErrTableOccupied):
		c.JSON(http.StatusConflict, apierror.NewCoded("table_occupied", err.Error()))
	case errors.Is(err, service.ErrOrderNotActive):
		c.JSON(http.StatusConflict, apierror.NewCoded("order_not_active", err.Error()))
	case errors.Is(err, service.ErrCategoryInUse):
		c.JSON(http.StatusConflict, apierror.NewCoded("category_in_use", err.Error()))
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, apierror.NewCoded("invalid_transition", err.Error()))
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewCoded("validation_error", err.Error()))
	case errors.Is(err, service.ErrInvalidQuantity):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewCoded("invalid_quantity", err.Error()))
	case errors.Is(err, service.ErrUnknownProduct):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewCoded("unknown_product", err.Error()))
	case errors.Is(err, service.ErrNothingToPay):
		c.JSON(http.StatusPaymentRequired, apierror.NewCoded("nothing_to_pay", err.Error()))
	case errors.Is(err, service.ErrInsufficientPayment):
		c.JSON(http.StatusPaymentRequired, apierror.NewCoded("insufficient_payment", err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("internal server error"))
	}
}
