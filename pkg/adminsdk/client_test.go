package adminsdk

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantCode   string
		validation bool
		notFound   bool
	}{
		{"validation", http.StatusBadRequest, `{"error":"validation_error","error_description":"Role name and permissions are required."}`, ErrorCodeValidation, true, false},
		{"not found", http.StatusNotFound, `{"error":"not_found","error_description":"role not found"}`, ErrorCodeNotFound, false, true},
		{"plain text body", http.StatusBadGateway, `upstream down`, ErrorCodeServerError, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).CreateRole(t.Context(), RoleRequest{Name: "x"})
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.validation, IsValidationError(err))
			assert.Equal(t, tt.notFound, IsNotFound(err))
		})
	}
}

func TestPathEscaping(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL+"/").DeleteUser(t.Context(), "a/b"))
	assert.Equal(t, "/v1/users/a%2Fb", gotPath)
}
