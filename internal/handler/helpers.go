package handler

import (
	"errors"
	"net/http"
	"reflect"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/shakil5281/TallyKhata-sub000/internal/apierror"
	"github.com/shakil5281/TallyKhata-sub000/internal/middleware"
	"github.com/shakil5281/TallyKhata-sub000/internal/service"
)

var validate = validator.New()

// mobilePattern is the regional mobile-number shape enforced at the API edge
// only — storage accepts any string.
var mobilePattern = regexp.MustCompile(`^01[3-9]\d{8}$`)

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

	_ = validate.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})
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
		c.JSON(http.StatusUnprocessableEntity, apierror.NewFieldErrors(fields))
		return false
	}
	return true
}

// respondError maps service-layer errors onto the HTTP taxonomy: validation →
// 422, not found → 404, anything else → 500 with the detail kept in the log.
func respondError(c *gin.Context, err error) {
	var ve *service.ValidationError
	var nfe *service.NotFoundError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewFieldErrors(map[string]string{ve.Field: ve.Reason}))
	case errors.As(err, &nfe):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	default:
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Err(err).
			Msg("storage error")
		c.JSON(http.StatusInternalServerError, apierror.New("internal server error"))
	}
}
