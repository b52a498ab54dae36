package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	userDomain "github.com/allisson/photosafe/internal/user/domain"
)

// authTestRouter mounts the authentication middleware in front of a probe
// handler that reports whether a user landed in the context.
func authTestRouter(mockUseCase *mockAuthUseCase) *gin.Engine {
	router := gin.New()
	router.GET("/protected",
		AuthenticationMiddleware(mockUseCase, discardLogger()),
		func(c *gin.Context) {
			user, ok := GetUser(c.Request.Context())
			if !ok {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"user_id": user.ID.String()})
		},
	)
	return router
}

func TestAuthenticationMiddleware(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockUseCase := &mockAuthUseCase{}
		user := testUser(t)

		mockUseCase.On("Authenticate", mock.Anything, "plain-token").Return(user, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer plain-token")
		authTestRouter(mockUseCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), user.ID.String())
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_CaseInsensitivePrefix", func(t *testing.T) {
		mockUseCase := &mockAuthUseCase{}
		user := testUser(t)

		mockUseCase.On("Authenticate", mock.Anything, "plain-token").Return(user, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "bearer plain-token")
		authTestRouter(mockUseCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_MissingHeader", func(t *testing.T) {
		mockUseCase := &mockAuthUseCase{}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		authTestRouter(mockUseCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Error_MalformedHeader", func(t *testing.T) {
		mockUseCase := &mockAuthUseCase{}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		authTestRouter(mockUseCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Error_InvalidToken", func(t *testing.T) {
		mockUseCase := &mockAuthUseCase{}

		mockUseCase.On("Authenticate", mock.Anything, "bad-token").
			Return(nil, userDomain.ErrInvalidCredentials).
			Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		authTestRouter(mockUseCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockUseCase.AssertExpectations(t)
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{"standard prefix", "Bearer abc123", "abc123", true},
		{"lowercase prefix", "bearer abc123", "abc123", true},
		{"missing header", "", "", false},
		{"empty token", "Bearer ", "", false},
		{"wrong scheme", "Basic abc123", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := createTestContext(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}

			got, ok := BearerToken(c)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserRateLimitMiddleware(t *testing.T) {
	user := testUser(t)

	router := gin.New()
	router.GET("/limited",
		func(c *gin.Context) {
			authenticateContext(c, user)
			c.Next()
		},
		UserRateLimitMiddleware(1.0, 2, discardLogger()),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		},
	)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	// Burst of 2 allowed, third request throttled.
	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
}

func TestTokenRateLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.POST("/tokens",
		TokenRateLimitMiddleware(1.0, 1, discardLogger()),
		func(c *gin.Context) {
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		},
	)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/tokens", nil))
	assert.Equal(t, http.StatusCreated, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/tokens", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
}
