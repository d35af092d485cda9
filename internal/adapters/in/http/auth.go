package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const adminIDKey = "adminID"

// AdminTokens maps bearer tokens to admin ids.
type AdminTokens map[string]string

// ParseAdminTokens reads the "token:adminId,token:adminId" form used in configuration.
func ParseAdminTokens(raw string) (AdminTokens, error) {
	tokens := AdminTokens{}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		token, adminID, ok := strings.Cut(pair, ":")
		token, adminID = strings.TrimSpace(token), strings.TrimSpace(adminID)
		if !ok || token == "" || adminID == "" {
			return nil, fmt.Errorf("admin token entry %q must look like token:adminId", pair)
		}
		if _, dup := tokens[token]; dup {
			return nil, fmt.Errorf("admin token for %q is configured twice", adminID)
		}
		tokens[token] = adminID
	}
	return tokens, nil
}

// KeyAuth authenticates "Authorization: Bearer <token>" and stores the admin id
// in the request context for the handlers.
func KeyAuth(tokens AdminTokens) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(key string, c echo.Context) (bool, error) {
			adminID, ok := tokens[key]
			if ok {
				c.Set(adminIDKey, adminID)
			}
			return ok, nil
		},
		ErrorHandler: func(_ error, c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, Error{
				Code:    http.StatusUnauthorized,
				Message: "Missing or invalid admin token",
			})
		},
	})
}

func adminID(c echo.Context) string {
	id, _ := c.Get(adminIDKey).(string)
	return id
}
