package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/growthdesk-backend/internal/platform/ctxutil"
	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(logger.Nop(), testSecret, "")
	r := gin.New()
	r.GET("/me", am.RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, ctxutil.UserID(c.Request.Context()))
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	valid := jwt.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	noSubject := valid
	noSubject.Subject = ""
	noExpiry := valid
	noExpiry.ExpiresAt = nil

	cases := []struct {
		name   string
		header string
		query  string
		status int
		body   string
	}{
		{name: "bearer header", header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), valid), status: http.StatusOK, body: "user-42"},
		{name: "query token", query: sign(t, jwt.SigningMethodHS256, []byte(testSecret), valid), status: http.StatusOK, body: "user-42"},
		{name: "missing", status: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), valid), status: http.StatusUnauthorized},
		{name: "wrong algorithm", header: "Bearer " + sign(t, jwt.SigningMethodHS512, []byte(testSecret), valid), status: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), expired), status: http.StatusUnauthorized},
		{name: "no subject", header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), noSubject), status: http.StatusUnauthorized},
		{name: "no expiry", header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), noExpiry), status: http.StatusUnauthorized},
	}

	r := authRouter()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target := "/me"
			if tc.query != "" {
				target += "?token=" + tc.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, rec.Body.String())
			}
		})
	}
}

func TestVerifyChecksIssuer(t *testing.T) {
	am := NewAuthMiddleware(logger.Nop(), testSecret, "growthdesk-auth")
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	_, err := am.Verify(sign(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
	assert.Error(t, err)

	claims.Issuer = "growthdesk-auth"
	sub, err := am.Verify(sign(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)
}
