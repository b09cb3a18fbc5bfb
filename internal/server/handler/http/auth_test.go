package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/atinyakov/TaskTracker/internal/models"
)

// fakeAuthService implements AuthService for testing.
type fakeAuthService struct {
	user  *models.User
	token string
	err   error
}

func (f *fakeAuthService) Register(ctx context.Context, username, password string) (*models.User, string, error) {
	return f.user, f.token, f.err
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	return f.user, f.token, f.err
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		service       *fakeAuthService
		expectedCode  int
		expectedField string
	}{
		{
			name:         "invalid JSON",
			body:         `not a json`,
			service:      &fakeAuthService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:          "missing username",
			body:          `{"password":"longenough1"}`,
			service:       &fakeAuthService{},
			expectedCode:  http.StatusBadRequest,
			expectedField: "username",
		},
		{
			name:          "short password",
			body:          `{"username":"alice","password":"short"}`,
			service:       &fakeAuthService{},
			expectedCode:  http.StatusBadRequest,
			expectedField: "password",
		},
		{
			name:         "username taken",
			body:         `{"username":"alice","password":"longenough1"}`,
			service:      &fakeAuthService{err: models.ErrUsernameTaken},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "storage failure",
			body:         `{"username":"alice","password":"longenough1"}`,
			service:      &fakeAuthService{err: errors.New("db down")},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name: "success",
			body: `{"username":"alice","password":"longenough1"}`,
			service: &fakeAuthService{
				user:  &models.User{ID: 1, Username: "alice", Role: models.RoleUser},
				token: "signed-token",
			},
			expectedCode: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/register", bytes.NewBufferString(tt.body))
			h := &AuthHandler{AuthService: tt.service, Log: zap.NewNop()}
			h.Register(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedCode, rec.Code, rec.Body.String())
			}

			if tt.expectedField != "" {
				var payload struct {
					Error   string              `json:"error"`
					Details map[string][]string `json:"details"`
				}
				if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
					t.Fatalf("failed to decode JSON: %v", err)
				}
				if payload.Error != "Validation failed" {
					t.Errorf("expected Validation failed, got %q", payload.Error)
				}
				if len(payload.Details[tt.expectedField]) == 0 {
					t.Errorf("expected a field error for %q, got %v", tt.expectedField, payload.Details)
				}
			}

			if tt.expectedCode == http.StatusCreated {
				var payload authResponse
				if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
					t.Fatalf("failed to decode JSON: %v", err)
				}
				if payload.Token != "signed-token" {
					t.Errorf("expected token in response, got %q", payload.Token)
				}
				if payload.User == nil || payload.User.Username != "alice" {
					t.Errorf("expected user in response, got %+v", payload.User)
				}
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		service      *fakeAuthService
		expectedCode int
	}{
		{
			name:         "invalid JSON",
			body:         `{`,
			service:      &fakeAuthService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "bad credentials",
			body:         `{"username":"alice","password":"wrongpassword"}`,
			service:      &fakeAuthService{err: models.ErrInvalidCredentials},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "success",
			body: `{"username":"alice","password":"longenough1"}`,
			service: &fakeAuthService{
				user:  &models.User{ID: 1, Username: "alice", Role: models.RoleUser},
				token: "signed-token",
			},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/login", bytes.NewBufferString(tt.body))
			h := &AuthHandler{AuthService: tt.service, Log: zap.NewNop()}
			h.Login(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedCode, rec.Code, rec.Body.String())
			}
		})
	}
}
