package http

import (
	"fmt"
	"net/http"
	"strings"

	"mealorder/internal/core/domain/model/actor"
	"mealorder/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// actorContextKey is where the authenticated actor is stored on the request
// context by the middleware.
const actorContextKey = "mealorder.actor"

// Claims is the token payload issued by the platform's authentication
// service. Subject carries the user id, Role one of the platform role names.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ActorMiddleware validates the bearer token and injects the acting identity
// into the request context. Requests without a valid token stop here with 401;
// role-based decisions are left to the use cases.
func ActorMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			authHeader := ctx.Request().Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    "UNAUTHENTICATED",
					Message: "Authorization header required (Bearer <token>)",
				})
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    "UNAUTHENTICATED",
					Message: "Invalid or expired token",
				})
			}

			act, err := actorFromClaims(claims)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    "UNAUTHENTICATED",
					Message: "Token does not identify a valid actor",
				})
			}

			ctx.Set(actorContextKey, act)
			return next(ctx)
		}
	}
}

func actorFromClaims(claims *Claims) (actor.Actor, error) {
	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return actor.Actor{}, err
	}

	role, err := actor.RoleFromString(claims.Role)
	if err != nil {
		return actor.Actor{}, err
	}

	return actor.NewActor(userID, role)
}

// actorFromContext extracts the actor placed by ActorMiddleware. A route
// reached without the middleware is a wiring bug, reported as an error rather
// than a panic.
func actorFromContext(ctx echo.Context) (actor.Actor, error) {
	act, ok := ctx.Get(actorContextKey).(actor.Actor)
	if !ok {
		return actor.Actor{}, fmt.Errorf("no authenticated actor on request context")
	}
	return act, nil
}
