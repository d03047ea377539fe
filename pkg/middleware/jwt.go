package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer はkvgatewayが発行するJWTのissクレーム。
const TokenIssuer = "kvgateway"

// contextKeySubject はGinコンテキストに認証済みsubjectを格納するキー。
const contextKeySubject = "subject"

// GenerateJWT はsubjectに対するHS256署名のJWTを生成する。
// 有効期限はttl後に設定する。
func GenerateJWT(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    TokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// JWTAuth はBearerトークンを検証するGinミドルウェアを返す。
// 検証に成功した場合、コンテキストにsubjectを設定する。
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required.",
			})
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header must use the Bearer scheme.",
			})
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
			return []byte(secret), nil
		},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(TokenIssuer),
			jwt.WithExpirationRequired(),
		)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token.",
			})
			return
		}

		c.Set(contextKeySubject, claims.Subject)
		c.Next()
	}
}

// GetSubject はGinコンテキストから認証済みsubjectを取得する。
// JWTAuthミドルウェアが事前に適用されている必要がある。
func GetSubject(c *gin.Context) string {
	return c.GetString(contextKeySubject)
}
