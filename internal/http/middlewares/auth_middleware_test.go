package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cwaller/notehub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct {
	subject string
	err     error
}

func (f *fakeVerifier) VerifyAccessToken(string) (string, error) {
	return f.subject, f.err
}

func echoSubject(c *gin.Context) {
	subject, ok := middlewares.SubjectFromContext(c)

	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "subject missing"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subject": subject})
}

func TestRequireAuthBearerHeader(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		value          string
		verifier       *fakeVerifier
		wantStatusCode int
	}{
		{
			name:           "valid_token",
			header:         "Authorization",
			value:          "Bearer some-token",
			verifier:       &fakeVerifier{subject: "sam@example.com"},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "missing_header",
			header:         "",
			value:          "",
			verifier:       &fakeVerifier{subject: "sam@example.com"},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "no_bearer_prefix",
			header:         "Authorization",
			value:          "some-token",
			verifier:       &fakeVerifier{subject: "sam@example.com"},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "empty_bearer",
			header:         "Authorization",
			value:          "Bearer ",
			verifier:       &fakeVerifier{subject: "sam@example.com"},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "verifier_rejects",
			header:         "Authorization",
			value:          "Bearer expired-token",
			verifier:       &fakeVerifier{err: errors.New("invalid token")},
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := middlewares.NewAuthMiddleware(tt.verifier, "")

			r := gin.New()
			r.GET("/me", mw.RequireAuth(), echoSubject)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)

			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestRequireAuthCustomHeader(t *testing.T) {
	mw := middlewares.NewAuthMiddleware(&fakeVerifier{subject: "sam@example.com"}, "X-Access-Token")

	r := gin.New()
	r.GET("/me", mw.RequireAuth(), echoSubject)

	// raw token in the custom header, no Bearer scheme
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-Access-Token", "raw-token")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200, body=%s", w.Code, w.Body.String())
	}

	// standard header is ignored when a custom one is configured
	req2 := httptest.NewRequest(http.MethodGet, "/me", nil)
	req2.Header.Set("Authorization", "Bearer raw-token")

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req2)

	if w2.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", w2.Code)
	}
}
