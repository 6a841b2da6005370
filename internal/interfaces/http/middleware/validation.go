package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/m3shovon/Event-SaaS-Platform/internal/interfaces/http/dto"
)

// NonFieldErrors keys messages that do not belong to a single field
const NonFieldErrors = "non_field_errors"

var setupValidatorOnce sync.Once

// SetupValidator makes validation errors use JSON (or form) tag names
func SetupValidator() {
	setupValidatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	})
}

// FieldErrors converts a binding error into per-field messages
func FieldErrors(err error) map[string][]string {
	fields := map[string][]string{}

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &verrs):
		for _, e := range verrs {
			fields[e.Field()] = append(fields[e.Field()], validationMessage(e))
		}
	case errors.As(err, &typeErr) && typeErr.Field != "":
		fields[typeErr.Field] = []string{"Must be of type " + typeErr.Type.String()}
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		fields[NonFieldErrors] = []string{"Malformed JSON body"}
	default:
		fields[NonFieldErrors] = []string{err.Error()}
	}
	return fields
}

// HandleValidationError answers a failed ShouldBind with 400, or 413 when
// the body hit the size limit
func HandleValidationError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		abortWithError(c, http.StatusRequestEntityTooLarge, dto.ErrCodeBodyTooLarge,
			"Request body exceeds maximum allowed size")
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		GetRequestID(c),
		FieldErrors(err),
	))
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		if e.Kind() == reflect.String {
			return "Ensure this field has at least " + e.Param() + " characters."
		}
		return "Ensure this value is greater than or equal to " + e.Param() + "."
	case "max":
		if e.Kind() == reflect.String {
			return "Ensure this field has no more than " + e.Param() + " characters."
		}
		return "Ensure this value is less than or equal to " + e.Param() + "."
	case "gte":
		return "Ensure this value is greater than or equal to " + e.Param() + "."
	case "lte":
		return "Ensure this value is less than or equal to " + e.Param() + "."
	case "uuid":
		return "Must be a valid UUID."
	case "oneof":
		return "Must be one of: " + e.Param() + "."
	case "url":
		return "Enter a valid URL."
	case "numeric":
		return "A valid number is required."
	default:
		return "Invalid value."
	}
}
