package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClaims struct {
	userID uuid.UUID
}

func (c *fakeClaims) GetUserID() uuid.UUID {
	return c.userID
}

type fakeValidator struct {
	validToken string
	userID     uuid.UUID
}

func (v *fakeValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	if tokenString == v.validToken {
		return &fakeClaims{userID: v.userID}, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func TestRequireAuth(t *testing.T) {
	userID := uuid.New()
	validator := &fakeValidator{validToken: "good-token", userID: userID}

	var gotUserID uuid.UUID
	handler := RequireAuth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserID(r)
		require.NoError(t, err)
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer good-token", http.StatusOK},
		{"case-insensitive scheme", "bearer good-token", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good-token", http.StatusUnauthorized},
		{"invalid token", "Bearer bad-token", http.StatusUnauthorized},
		{"no token", "Bearer", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/reports", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, userID, gotUserID)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	userID := uuid.New()
	validator := &fakeValidator{validToken: "good-token", userID: userID}

	var gotUserID *uuid.UUID
	handler := OptionalAuth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = OptionalUserID(r)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/resume/score", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotUserID)
		assert.Equal(t, userID, *gotUserID)
	})

	t.Run("no token proceeds as guest", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/resume/score", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, gotUserID)
	})

	t.Run("invalid token proceeds as guest", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/resume/score", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, gotUserID)
	})
}

func TestGetUserID_MissingContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	_, err := GetUserID(req)
	assert.Error(t, err)
	assert.Nil(t, OptionalUserID(req))
}
