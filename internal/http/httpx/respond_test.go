package httpx_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/tinycrm/internal/apperr"
	"github.com/avolkov/tinycrm/internal/http/httpx"
)

func TestError_StatusMapping(t *testing.T) {
	type testCase struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}

	tests := []testCase{
		{
			name:       "FieldErrors",
			err:        apperr.FieldErrors{"name": "name is required"},
			wantStatus: http.StatusBadRequest,
			wantKind:   "validation_error",
		},
		{
			name:       "Validation",
			err:        fmt.Errorf("bad input: %w", apperr.ErrValidation),
			wantStatus: http.StatusBadRequest,
			wantKind:   "validation_error",
		},
		{
			name:       "Unauthenticated",
			err:        apperr.ErrUnauthenticated,
			wantStatus: http.StatusUnauthorized,
			wantKind:   "authentication_failed",
		},
		{
			name:       "PermissionDenied",
			err:        fmt.Errorf("foreign parent: %w", apperr.ErrPermissionDenied),
			wantStatus: http.StatusForbidden,
			wantKind:   "permission_denied",
		},
		{
			name:       "NotFound",
			err:        apperr.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantKind:   "not_found",
		},
		{
			name:       "Unavailable",
			err:        fmt.Errorf("provider call: %w", apperr.ErrUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantKind:   "upstream_unavailable",
		},
		{
			name:       "Unknown",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantKind:   "internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			httpx.Error(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body struct {
				Error struct {
					Kind    string            `json:"kind"`
					Message string            `json:"message"`
					Fields  map[string]string `json:"fields"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantKind, body.Error.Kind)
		})
	}
}

func TestError_FieldDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.Error(rec, apperr.FieldErrors{"end_time": "a new entry cannot be created already finished"})

	var body struct {
		Error struct {
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "a new entry cannot be created already finished", body.Error.Fields["end_time"])
}

func TestError_UnknownLeaksNothing(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.Error(rec, errors.New("pq: password authentication failed for user"))

	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestPageOffset(t *testing.T) {
	type testCase struct {
		name string
		url  string
		want int
	}

	tests := []testCase{
		{name: "Default", url: "/clients/", want: 0},
		{name: "FirstPage", url: "/clients/?page=1", want: 0},
		{name: "ThirdPage", url: "/clients/?page=3", want: 2 * httpx.PageSize},
		{name: "Garbage", url: "/clients/?page=banana", want: 0},
		{name: "Negative", url: "/clients/?page=-2", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			assert.Equal(t, tt.want, httpx.PageOffset(r))
		})
	}
}
