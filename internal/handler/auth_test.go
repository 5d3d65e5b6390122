package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestResetPasswordValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{`},
		{"missing nickname", `{"email":"a@b.c","newPassword":"1234"}`},
		{"missing email", `{"nickname":"chris","newPassword":"1234"}`},
		{"missing password", `{"nickname":"chris","email":"a@b.c"}`},
		{"PIN too short", `{"nickname":"chris","email":"a@b.c","newPassword":"123"}`},
		{"PIN with letters", `{"nickname":"chris","email":"a@b.c","newPassword":"12ab"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, ResetPassword, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLoginValidation(t *testing.T) {
	rec := postJSON(t, Login, `{"nickname":"chris"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, Login, `{"nickname":"chris","password":"12345"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	rec := postJSON(t, Register, `{"username":"chris","email":"a@b.c","password":"abcd"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
