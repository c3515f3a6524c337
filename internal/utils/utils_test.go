package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gridiron-be/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext(t *testing.T) {
	t.Run("SetUserContext and getter", func(t *testing.T) {
		id, ok := GetUserIDFromContext(SetUserContext(context.Background(), 100))
		assert.True(t, ok)
		assert.Equal(t, int64(100), id)
	})

	t.Run("Empty context", func(t *testing.T) {
		_, ok := GetUserIDFromContext(context.Background())
		assert.False(t, ok)
	})
}

func TestNewPaginatedData(t *testing.T) {
	p := NewPaginatedData(21, 10, 10, []int{1})
	assert.Equal(t, 3, p.TotalPage)
	assert.Equal(t, 10, p.CurrentSize)
	assert.Equal(t, int64(21), p.TotalSize)

	empty := NewPaginatedData(0, 10, 0, []int{})
	assert.Equal(t, 0, empty.TotalPage)
}

func TestValidatePage(t *testing.T) {
	tests := []struct {
		name    string
		page    int
		size    int
		wantErr bool
	}{
		{"Valid", 1, 10, false},
		{"Zero page", 0, 10, true},
		{"Negative page", -1, 10, true},
		{"Zero size", 1, 0, true},
		{"Size too large", 1, MaxPageSize + 1, true},
		{"Last page allowed", MaxPage, MaxPageSize, false},
		{"Page past limit", MaxPage + 1, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePage(tt.page, tt.size)
			if tt.wantErr {
				assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.Equal(t, "Page cannot be less than or equal to zero", ValidatePage(0, 10).Error())
}

func TestParsePageParams(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		page, size, err := ParsePageParams(httptest.NewRequest(http.MethodGet, "/x", nil))
		require.NoError(t, err)
		assert.Equal(t, 1, page)
		assert.Equal(t, DefaultPageSize, size)
	})

	t.Run("Explicit", func(t *testing.T) {
		page, size, err := ParsePageParams(httptest.NewRequest(http.MethodGet, "/x?page=3&size=5", nil))
		require.NoError(t, err)
		assert.Equal(t, 3, page)
		assert.Equal(t, 5, size)
		assert.Equal(t, 10, Offset(page, size))
	})

	t.Run("Huge page never yields a negative offset", func(t *testing.T) {
		page, size, err := ParsePageParams(httptest.NewRequest(http.MethodGet, "/x?page=9223372036854775807&size=10", nil))
		require.NoError(t, err)

		err = ValidatePage(page, size)
		assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))

		assert.GreaterOrEqual(t, Offset(MaxPage, MaxPageSize), 0)
	})

	t.Run("Not a number", func(t *testing.T) {
		_, _, err := ParsePageParams(httptest.NewRequest(http.MethodGet, "/x?page=abc", nil))
		assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))
	})
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42", "orderId")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParseID("0", "orderId")
	assert.Error(t, err)

	_, err = ParseID("x", "orderId")
	assert.EqualError(t, err, "orderId must be a positive number")
}

type signupBody struct {
	Email    string `json:"email" validate:"required,email"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

func TestDecodeJSON(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.com","quantity":2}`))
		var body signupBody
		require.NoError(t, DecodeJSON(req, &body))
		assert.Equal(t, 2, body.Quantity)
	})

	t.Run("Malformed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		var body signupBody
		err := DecodeJSON(req, &body)
		assert.EqualError(t, err, "Invalid request body")
	})

	t.Run("Missing field uses json name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":2}`))
		var body signupBody
		assert.EqualError(t, DecodeJSON(req, &body), "email is required")
	})

	t.Run("Min", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.com","quantity":0}`))
		var body signupBody
		assert.EqualError(t, DecodeJSON(req, &body), "quantity must be at least 1")
	})
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, http.StatusCreated, "Created", map[string]int{"id": 1})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Created", body["message"])
	assert.NotNil(t, body["data"])
}

func TestWriteError(t *testing.T) {
	t.Run("Typed", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, httptest.NewRequest(http.MethodGet, "/", nil), apperror.NotFound("Cart is empty"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		var body ApiResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.False(t, body.Success)
		assert.Equal(t, "Cart is empty", body.Message)
		assert.Nil(t, body.Data)
	})

	t.Run("Internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: boom"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "pq: boom")
	})
}
