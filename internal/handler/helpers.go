package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"inventorybi/internal/apierror"
	"inventorybi/internal/middleware"
	"inventorybi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// gt=0 and required work on quantities and prices.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails; the caller
// should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON格式错误: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

// bindQuery is bindAndValidate for query-string filters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("查询参数错误: "+err.Error()))
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
			fields[fe.Namespace()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New("ID无效"))
		return 0, false
	}
	return id, true
}

func operatorFrom(c *gin.Context) service.Operator {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return service.Operator{}
	}
	return service.Operator{UserID: claims.UserID, Username: claims.Username, Role: claims.Role}
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// internalPrefix is prepended to the message of unclassified failures.
func writeServiceError(c *gin.Context, err error, internalPrefix string) {
	var (
		nf *service.NotFoundError
		is *service.InsufficientStockError
		ve *service.ValidationError
	)
	switch {
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, apierror.New(nf.Message))
	case errors.As(err, &is):
		c.JSON(http.StatusBadRequest, apierror.New(is.Error()))
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(ve.Message))
	default:
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Err(err).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, apierror.New(internalPrefix+err.Error()))
	}
}
