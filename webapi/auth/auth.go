package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mazadksa/mazad/pkg/config"
	domainuser "github.com/mazadksa/mazad/pkg/domain/user"
	"github.com/mazadksa/mazad/pkg/middleware"
	authsvc "github.com/mazadksa/mazad/pkg/service/auth"
	"github.com/mazadksa/mazad/webapi/common"
)

// Routes registers the authentication endpoints.
func Routes(app *fiber.App, authSvc *authsvc.Service, cfg *config.App) {
	app.Post("/api/auth/register", Register(authSvc))
	app.Post("/api/auth/login", Login(authSvc))
	app.Post("/api/auth/logout", Logout())
	app.Get("/api/auth/user", middleware.JwtProtected(cfg.Jwt), CurrentUser(authSvc))
}

// Register creates a new account and returns the user with a token.
func Register(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}
		user, token, err := authSvc.Register(c.Context(), input.Username, input.Email, input.FullName, input.Password)
		if err != nil {
			if errors.Is(err, domainuser.ErrUserExists) {
				return common.ProblemDetailsJSON(c, "Username or email already taken", err)
			}
			return common.ProblemDetailsJSON(c, "Registration failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", fiber.Map{
			"user":  user,
			"token": token,
		})
	}
}

// Login authenticates with username or email plus password and
// returns a JWT token. Unknown identities never create accounts.
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		user, token, err := authSvc.Login(c.Context(), input.Identity, input.Password)
		if err != nil {
			if errors.Is(err, domainuser.ErrInvalidCredentials) || errors.Is(err, domainuser.ErrUserNotFound) {
				return common.ProblemDetailsJSON(c, "Invalid identity or password", nil, "Identity or password is incorrect", fiber.StatusUnauthorized)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, fiber.StatusInternalServerError)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", fiber.Map{
			"user":  user,
			"token": token,
		})
	}
}

// Logout acknowledges the logout. Tokens are stateless, so the client
// drops the token; nothing is revoked server side.
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Logged out", nil)
	}
}

// CurrentUser returns the authenticated user's profile.
func CurrentUser(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		user, err := authSvc.CurrentUser(c.Context(), token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", user)
	}
}
