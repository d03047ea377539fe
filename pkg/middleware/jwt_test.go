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
)

// testSecret はテスト用のJWTシークレット。
const testSecret = "test-secret-key-for-unit-tests"

// TestGenerateJWT はGenerateJWT関数を検証する。
func TestGenerateJWT(t *testing.T) {
	t.Parallel()

	t.Run("subjectとissuerを含むトークンを生成できること", func(t *testing.T) {
		t.Parallel()

		tokenStr, err := GenerateJWT(testSecret, "deploy-bot", time.Hour)
		require.NoError(t, err)

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		assert.True(t, token.Valid)
		assert.Equal(t, "deploy-bot", claims.Subject)
		assert.Equal(t, TokenIssuer, claims.Issuer)
		assert.Equal(t, "HS256", token.Method.Alg())
	})

	t.Run("有効期限がttl後に設定されること", func(t *testing.T) {
		t.Parallel()

		before := time.Now()
		tokenStr, err := GenerateJWT(testSecret, "exp", 24*time.Hour)
		require.NoError(t, err)

		claims := &jwt.RegisteredClaims{}
		_, _, err = new(jwt.Parser).ParseUnverified(tokenStr, claims)
		require.NoError(t, err)

		assert.WithinDuration(t, before.Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
		assert.WithinDuration(t, before, claims.IssuedAt.Time, time.Minute)
	})
}

// TestJWTAuth はJWTAuthミドルウェアを検証する。
func TestJWTAuth(t *testing.T) {
	t.Parallel()

	newRouter := func() *gin.Engine {
		router := gin.New()
		router.Use(JWTAuth(testSecret))
		router.POST("/set", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"subject": GetSubject(c)})
		})
		return router
	}

	do := func(t *testing.T, authHeader string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/set", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)
		return w
	}

	t.Run("有効なトークンでハンドラに到達しsubjectを取得できること", func(t *testing.T) {
		t.Parallel()

		token, err := GenerateJWT(testSecret, "user-123", time.Hour)
		require.NoError(t, err)

		w := do(t, "Bearer "+token)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"subject":"user-123"}`, w.Body.String())
	})

	t.Run("Authorizationヘッダーが無い場合は401を返すこと", func(t *testing.T) {
		t.Parallel()

		w := do(t, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Authorization header is required."}`, w.Body.String())
	})

	t.Run("Bearer形式でない場合は401を返すこと", func(t *testing.T) {
		t.Parallel()

		w := do(t, "Basic dXNlcjpwYXNz")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Authorization header must use the Bearer scheme."}`, w.Body.String())
	})

	t.Run("異なるシークレットで署名されたトークンは401を返すこと", func(t *testing.T) {
		t.Parallel()

		token, err := GenerateJWT("wrong-secret", "user-123", time.Hour)
		require.NoError(t, err)

		w := do(t, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Invalid token."}`, w.Body.String())
	})

	t.Run("期限切れのトークンは401を返すこと", func(t *testing.T) {
		t.Parallel()

		token, err := GenerateJWT(testSecret, "user-123", -time.Minute)
		require.NoError(t, err)

		w := do(t, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("issuerが異なるトークンは401を返すこと", func(t *testing.T) {
		t.Parallel()

		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "user-123",
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString([]byte(testSecret))
		require.NoError(t, err)

		w := do(t, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("有効期限の無いトークンは401を返すこと", func(t *testing.T) {
		t.Parallel()

		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject: "user-123",
			Issuer:  TokenIssuer,
		}).SignedString([]byte(testSecret))
		require.NoError(t, err)

		w := do(t, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
