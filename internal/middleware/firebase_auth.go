package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/lumilens-app/backend/internal/repositories"
)

// Context keys set by the auth middleware.
const (
	ContextSubjectID = "subjectID"
	ContextEmail     = "subjectEmail"
	ContextProfileID = "profileID"
)

// FirebaseAuth verifies the bearer ID token and resolves the caller's
// profile. The profile may legitimately be missing before the first sync;
// handlers that mutate state must treat a missing profile ID as fatal rather
// than proceeding anonymously.
func FirebaseAuth(authClient *auth.Client, profiles repositories.ProfileRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := verifyBearer(c, authClient)
			if err != nil {
				return err
			}
			attachIdentity(c, token, profiles)
			return next(c)
		}
	}
}

// OptionalFirebaseAuth resolves the caller when a bearer token is present
// and valid, and otherwise continues anonymously. Used by read-only surfaces
// like the community feed.
func OptionalFirebaseAuth(authClient *auth.Client, profiles repositories.ProfileRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := verifyBearer(c, authClient)
			if err == nil {
				attachIdentity(c, token, profiles)
			}
			return next(c)
		}
	}
}

func verifyBearer(c echo.Context, authClient *auth.Client) (*auth.Token, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is missing")
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
	}

	token, err := authClient.VerifyIDToken(c.Request().Context(), tokenParts[1])
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("Invalid or expired ID token: %v", err))
	}
	return token, nil
}

func attachIdentity(c echo.Context, token *auth.Token, profiles repositories.ProfileRepository) {
	c.Set(ContextSubjectID, token.UID)
	if email, ok := token.Claims["email"].(string); ok {
		c.Set(ContextEmail, email)
	}
	if profile, err := profiles.GetProfileBySubjectID(token.UID); err == nil {
		c.Set(ContextProfileID, profile.ID)
	}
}
