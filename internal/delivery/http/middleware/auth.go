package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"saraban-stamp/internal/config"
	"saraban-stamp/internal/domain/entity"
)

// SubjectKey holds the token subject in fiber locals.
const SubjectKey = "subject"

// JWTAuth verifies an HS256 bearer token on every request. With no secret
// configured every request passes.
func JWTAuth(cfg *config.Config, logger *zap.Logger) fiber.Handler {
	secret := []byte(cfg.Auth.JWTSecret)
	if len(secret) == 0 {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Auth.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Auth.Issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(c *fiber.Ctx) error {
		raw, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return unauthorized(c, "Missing bearer token")
		}

		token, err := parser.Parse(raw, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			logger.Warn("Rejected bearer token",
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			return unauthorized(c, "Invalid token")
		}

		if sub, err := token.Claims.GetSubject(); err == nil && sub != "" {
			c.Locals(SubjectKey, sub)
		}
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(
		entity.NewErrorResponse(entity.CodeUnauthorized, message),
	)
}
