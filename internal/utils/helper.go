package utils

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"gridiron-be/internal/apperror"
	"gridiron-be/internal/logger"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPage keeps (page-1)*size within int for every accepted size.
	MaxPage = math.MaxInt / MaxPageSize
)

// ApiResponse is the envelope every endpoint answers with.
type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type PaginatedData struct {
	TotalPage   int   `json:"totalPage"`
	CurrentSize int   `json:"currentSize"`
	TotalSize   int64 `json:"totalSize"`
	Data        any   `json:"data"`
}

// NewPaginatedData fills the page counters for one page of count rows out of total.
func NewPaginatedData(total int64, size, count int, data any) PaginatedData {
	totalPage := 0
	if size > 0 {
		totalPage = int(math.Ceil(float64(total) / float64(size)))
	}
	return PaginatedData{
		TotalPage:   totalPage,
		CurrentSize: count,
		TotalSize:   total,
		Data:        data,
	}
}

// ValidatePage rejects pages outside 1..MaxPage and sizes outside 1..MaxPageSize.
func ValidatePage(page, size int) error {
	if page <= 0 {
		return apperror.InvalidInput("Page cannot be less than or equal to zero")
	}
	if page > MaxPage {
		return apperror.InvalidInputf("Page cannot be greater than %d", MaxPage)
	}
	if size <= 0 || size > MaxPageSize {
		return apperror.InvalidInputf("Size must be between 1 and %d", MaxPageSize)
	}
	return nil
}

// Offset converts a 1-based page into a row offset.
func Offset(page, size int) int {
	return (page - 1) * size
}

// ParsePageParams reads ?page and ?size, defaulting to 1 and DefaultPageSize.
func ParsePageParams(r *http.Request) (int, int, error) {
	page, err := intQuery(r, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	size, err := intQuery(r, "size", DefaultPageSize)
	if err != nil {
		return 0, 0, err
	}
	return page, size, nil
}

func intQuery(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.InvalidInputf("%s must be a number", name)
	}
	return v, nil
}

// ParseID parses a positive int64 identifier from a path or query value.
func ParseID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.InvalidInputf("%s must be a positive number", name)
	}
	return id, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into dst and validates its `validate` tags.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.InvalidInput("Invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return apperror.InvalidInput(validationMessage(verrs[0]))
		}
		return apperror.InvalidInput("Invalid request body")
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Email should be valid"
	case "min", "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "max", "lte":
		return fe.Field() + " must be at most " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteSuccess(w http.ResponseWriter, code int, message string, data any) {
	WriteJSON(w, code, ApiResponse{Success: true, Message: message, Data: data})
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, code, ApiResponse{Success: false, Message: message})
}

// WriteError translates err through the apperror taxonomy. Internal errors
// are logged and answered with a generic message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	WriteJSONError(w, apperror.MessageOf(err), kind.HTTPStatus())
}
