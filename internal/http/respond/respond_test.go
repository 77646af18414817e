package respond

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Price int64  `json:"price" validate:"gte=0"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantStatus int
		wantBody   string
	}{
		{name: "Valid", body: `{"name":"A1","price":100}`, wantOK: true, wantStatus: http.StatusOK},
		{name: "Malformed", body: `{"name":`, wantStatus: http.StatusBadRequest, wantBody: "invalid payload"},
		{name: "MissingName", body: `{"price":1}`, wantStatus: http.StatusBadRequest, wantBody: "Name: required"},
		{name: "NegativePrice", body: `{"name":"A1","price":-1}`, wantStatus: http.StatusBadRequest, wantBody: "Price: gte=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst sample
			assert.Equal(t, tt.wantOK, Decode(rec, req, &dst))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec)

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}
