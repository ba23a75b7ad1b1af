package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/dmitrijs2005/fitquest/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Client-facing messages.
const (
	msgRegistered      = "User registered"
	msgLoggedIn        = "Login successful"
	msgWaterLogged     = "Water logged successfully"
	msgWorkoutLogged   = "Workout logged successfully"
	msgEmailExists     = "Email already exists"
	msgUserNotFound    = "User not found"
	msgBadPassword     = "Incorrect password"
	msgNoToken         = "No token provided"
	msgInvalidToken    = "Invalid or expired token"
	msgConflict        = "Update conflicted with another request, please retry"
	msgTooManyRequests = "Too many requests"
	msgServerError     = "Server error"
	msgInvalidBody     = "Invalid request body"
)

// classify maps an error to an HTTP status and a message safe to return.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrEmailAlreadyExists):
		return http.StatusBadRequest, msgEmailExists
	case errors.Is(err, common.ErrUserNotFound):
		return http.StatusBadRequest, msgUserNotFound
	case errors.Is(err, common.ErrIncorrectPassword):
		return http.StatusBadRequest, msgBadPassword
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, msgInvalidToken
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, msgUserNotFound
	case errors.Is(err, common.ErrVersionConflict):
		return http.StatusConflict, msgConflict
	default:
		return http.StatusInternalServerError, msgServerError
	}
}

func (s *Server) writeError(c *gin.Context, err error) {
	status, msg := classify(err)

	if status >= http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	} else {
		s.logger.Debug(c.Request.Context(), "request rejected", "path", c.FullPath(), "status", status, "error", err)
	}

	c.AbortWithStatusJSON(status, messageResponse{Success: false, Message: msg})
}

// bindJSON decodes the body into req and runs its binding rules. On failure
// it writes a 400 and returns false.
func (s *Server) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		s.logger.Debug(c.Request.Context(), "invalid request", "path", c.FullPath(), "error", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, messageResponse{Success: false, Message: bindErrorMessage(err)})
		return false
	}
	return true
}

func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fieldErrorMessage(verrs[0])
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s has the wrong type", typeErr.Field)
	}

	if errors.Is(err, io.EOF) {
		return "Request body is empty"
	}

	return msgInvalidBody
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

var registerTagNameOnce sync.Once

// useJSONFieldNames makes validation errors report JSON names ("heroName")
// instead of Go field names.
func useJSONFieldNames() {
	registerTagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
}
