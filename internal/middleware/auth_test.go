package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atinyakov/TaskTracker/internal/models"
	"github.com/atinyakov/TaskTracker/internal/token"
)

type fakeVerifier struct {
	claims *token.Claims
	err    error
}

func (f *fakeVerifier) Verify(raw string) (*token.Claims, error) {
	return f.claims, f.err
}

func okHandler(t *testing.T, wantUserID int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil {
			t.Error("expected claims in context")
		} else if claims.UserID != wantUserID {
			t.Errorf("claims.UserID = %d; want %d", claims.UserID, wantUserID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name         string
		header       string
		verifier     *fakeVerifier
		expectedCode int
	}{
		{
			name:         "missing header",
			header:       "",
			verifier:     &fakeVerifier{},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "not a bearer token",
			header:       "Basic dXNlcjpwYXNz",
			verifier:     &fakeVerifier{},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "empty bearer value",
			header:       "Bearer ",
			verifier:     &fakeVerifier{},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "invalid token",
			header:       "Bearer bad",
			verifier:     &fakeVerifier{err: errors.New("expired")},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "valid token",
			header:       "Bearer good",
			verifier:     &fakeVerifier{claims: &token.Claims{UserID: 42, Role: models.RoleUser}},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				okHandler(t, 42).ServeHTTP(w, r)
			})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			Authenticate(tt.verifier)(next).ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if tt.expectedCode != http.StatusOK && called {
				t.Error("handler must not run on a rejected request")
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name         string
		claims       *token.Claims
		expectedCode int
	}{
		{
			name:         "no claims in context",
			claims:       nil,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "role mismatch",
			claims:       &token.Claims{UserID: 1, Role: models.RoleUser},
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "role match",
			claims:       &token.Claims{UserID: 1, Role: models.RoleAdmin},
			expectedCode: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("DELETE", "/api/tasks/1", nil)
			if tt.claims != nil {
				verifier := &fakeVerifier{claims: tt.claims}
				req.Header.Set("Authorization", "Bearer good")
				Authenticate(verifier)(RequireRole(models.RoleAdmin)(next)).ServeHTTP(rec, req)
			} else {
				RequireRole(models.RoleAdmin)(next).ServeHTTP(rec, req)
			}

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
		})
	}
}
