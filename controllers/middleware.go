package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userIDKey = "userID"

// RequireAuth validates the bearer token and records the caller's user id on
// the request context. Expiry is checked by the parser.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			RespondErr(c, http.StatusUnauthorized, ErrAccessDenied)
			return
		}

		token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected JWT signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			RespondErr(c, http.StatusUnauthorized, ErrAccessDenied)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			RespondErr(c, http.StatusUnauthorized, ErrAccessDenied)
			return
		}

		id, ok := claims["id"].(float64)
		if !ok || id <= 0 {
			RespondErr(c, http.StatusUnauthorized, ErrAccessDenied)
			return
		}

		c.Set(userIDKey, uint(id))
		c.Next()
	}
}

func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(userIDKey)
}
