package handler

import (
	"errors"
	"net/http"
	"reflect"

	"trazabilidad/internal/apierror"
	"trazabilidad/internal/qr"
	"trazabilidad/internal/repository"
	"trazabilidad/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
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
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

// bindQuery is bindAndValidate for query-string filters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametros invalidos: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

func runValidation(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// parseID reads a uuid path parameter; writes 400 and returns false when malformed.
func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps service, repository and QR errors to HTTP responses.
// Only messages the service attached reach the client. Unexpected errors are
// attached with c.Error and left to middleware.ErrorHandler, which logs them
// and answers with a generic 500.
func respondError(c *gin.Context, err error) {
	var svcErr *service.Error
	detail := ""
	if errors.As(err, &svcErr) {
		detail = svcErr.Msg
	}

	switch {
	case errors.Is(err, service.ErrValidation):
		field := ""
		if svcErr != nil {
			field = svcErr.Field
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewFieldError(field, orDefault(detail, "Datos invalidos")))
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New(orDefault(detail, "Recurso no encontrado")))
	case errors.Is(err, repository.ErrUniqueViolation):
		c.JSON(http.StatusConflict, apierror.New(orDefault(detail, "El registro ya existe")))
	case errors.Is(err, repository.ErrReferenceViolation):
		c.JSON(http.StatusConflict, apierror.New(orDefault(detail, "El registro esta referenciado por otros datos")))
	case errors.Is(err, qr.ErrPayloadTooLarge):
		_ = c.Error(err)
		c.JSON(http.StatusRequestEntityTooLarge, apierror.New("El contenido es demasiado grande para un codigo QR"))
	case errors.Is(err, qr.ErrEncoding):
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudo generar el codigo QR"))
	default:
		_ = c.Error(err)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
