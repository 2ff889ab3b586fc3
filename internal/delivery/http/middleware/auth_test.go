package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"eventosia/internal/delivery/http/helpers"
	"eventosia/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenVerifier implements domain.TokenVerifier for tests.
type fakeTokenVerifier struct {
	userID int64
	role   domain.Role
	err    error
}

func (f *fakeTokenVerifier) Verify(_ string) (int64, domain.Role, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	return f.userID, f.role, nil
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	tests := []struct {
		name          string
		authHeader    string
		verifier      domain.TokenVerifier
		wantStatus    int
		nextCalled    bool
		wantContextID int64
		wantRole      domain.Role
	}{
		{
			name:          "valid token sets context and calls next",
			authHeader:    "Bearer valid-token",
			verifier:      &fakeTokenVerifier{userID: 123, role: domain.RoleEventManager},
			wantStatus:    http.StatusOK,
			nextCalled:    true,
			wantContextID: 123,
			wantRole:      domain.RoleEventManager,
		},
		{
			name:       "missing authorization header",
			authHeader: "",
			verifier:   &fakeTokenVerifier{userID: 123},
			wantStatus: http.StatusUnauthorized,
			nextCalled: false,
		},
		{
			name:       "invalid authorization format no Bearer prefix",
			authHeader: "Basic abc",
			verifier:   &fakeTokenVerifier{userID: 123},
			wantStatus: http.StatusUnauthorized,
			nextCalled: false,
		},
		{
			name:       "empty token after Bearer",
			authHeader: "Bearer ",
			verifier:   &fakeTokenVerifier{userID: 123},
			wantStatus: http.StatusUnauthorized,
			nextCalled: false,
		},
		{
			name:       "verifier returns error",
			authHeader: "Bearer bad-token",
			verifier:   &fakeTokenVerifier{err: domain.ErrInvalidToken},
			wantStatus: http.StatusUnauthorized,
			nextCalled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var capturedUserID int64
			var capturedRole domain.Role
			next := func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				if id, ok := UserIDFromContext(r.Context()); ok {
					capturedUserID = id
				}
				if role, ok := RoleFromContext(r.Context()); ok {
					capturedRole = role
				}
				w.WriteHeader(http.StatusOK)
			}
			wrap := RequireAuth(tt.verifier, logger)
			handler := wrap(next)

			req := httptest.NewRequest(http.MethodGet, "http://test/api/participants", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			handler(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			assert.Equal(t, tt.nextCalled, nextCalled, "next handler called")
			if tt.nextCalled {
				assert.Equal(t, tt.wantContextID, capturedUserID, "user ID in context")
				assert.Equal(t, tt.wantRole, capturedRole, "role in context")
			}
			if tt.wantStatus == http.StatusUnauthorized {
				var body helpers.ErrorResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				assert.Contains(t, body.Error, "No autorizado")
			}
		})
	}
}
