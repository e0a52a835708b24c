package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"clubhouse/internal/auth"
	"clubhouse/internal/service"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService service.AuthService
	sessions    *auth.Manager
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessions *auth.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// ShowRegister renders the empty registration form.
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", formPage{Form: &RegisterForm{}})
}

// Register creates a new account. Validation and domain failures re-render
// the form with the submitted non-password fields preserved.
func (h *AuthHandler) Register(c echo.Context) error {
	var form RegisterForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	form.normalize()

	if err := c.Validate(&form); err != nil {
		msgs := formErrors(err)
		form.clearPasswords()
		return c.Render(http.StatusOK, "register.html", formPage{Errors: msgs, Form: &form})
	}

	password := form.Password
	form.clearPasswords()

	_, err := h.authService.Register(c.Request().Context(), form.Firstname, form.Lastname, form.Username, password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			return c.Render(http.StatusOK, "register.html", formPage{
				Errors: []string{"Username already exists"},
				Form:   &form,
			})
		}
		c.Logger().Errorf("register: %v", err)
		return c.Render(http.StatusOK, "register.html", formPage{
			Errors: []string{"An error occurred during sign-up. Please try again."},
			Form:   &form,
		})
	}

	return c.Redirect(http.StatusSeeOther, "/login")
}

// ShowLogin renders the login form, or redirects home when the request is
// already authenticated.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	if _, ok := auth.CurrentUser(c); ok {
		return c.Redirect(http.StatusFound, "/")
	}
	return c.Render(http.StatusOK, "login.html", formPage{Form: &LoginForm{}})
}

// Login verifies credentials and establishes a session. All comparison
// failures are non-fatal and re-render the form.
func (h *AuthHandler) Login(c echo.Context) error {
	var form LoginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	form.normalize()

	if err := c.Validate(&form); err != nil {
		msgs := formErrors(err)
		form.clearPasswords()
		return c.Render(http.StatusOK, "login.html", formPage{Errors: msgs, Form: &form})
	}

	password := form.Password
	form.clearPasswords()

	user, err := h.authService.Login(c.Request().Context(), form.Username, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownUsername):
			return c.Render(http.StatusOK, "login.html", formPage{
				Errors: []string{"Username does not exist"},
				Form:   &form,
			})
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.Render(http.StatusOK, "login.html", formPage{
				Errors: []string{"Incorrect username or password"},
				Form:   &form,
			})
		default:
			c.Logger().Errorf("login: %v", err)
			return c.Render(http.StatusOK, "login.html", formPage{
				Errors: []string{"An error occurred during login. Please try again."},
				Form:   &form,
			})
		}
	}

	if err := h.sessions.Login(c, user.ID); err != nil {
		c.Logger().Errorf("establish session: %v", err)
		return c.Render(http.StatusOK, "login.html", formPage{
			Errors: []string{"An error occurred during login. Please try again."},
			Form:   &form,
		})
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout destroys the current session. Logging out twice is harmless.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}
