package router

import (
	"errors"
	"net/http"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"clubhouse/internal/auth"
	"clubhouse/internal/config"
	apperrors "clubhouse/internal/errors"
	"clubhouse/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessions *auth.Manager,
	authHandler *handler.AuthHandler,
	messageHandler *handler.MessageHandler,
	memberHandler *handler.MemberHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.Validator = NewFormValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg)

	// Every request resolves its session before routing decisions.
	e.Use(sessions.WithSession())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/", messageHandler.Home, sessions.RequireLogin())

	e.GET("/register", authHandler.ShowRegister)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.ShowLogin)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)

	e.GET("/newmessage", messageHandler.ShowNewMessage, sessions.RequireLogin())
	e.POST("/newmessage", messageHandler.CreateMessage, sessions.RequireLogin())
	// No ownership or role check on delete: anyone can moderate.
	e.POST("/delete/:id", messageHandler.DeleteMessage)

	e.GET("/newmember", memberHandler.ShowMember)
	e.POST("/newmember", memberHandler.PromoteMember)
	e.GET("/newadmin", memberHandler.ShowAdmin)
	e.POST("/newadmin", memberHandler.PromoteAdmin)
}

var usernameRE = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)

// FormValidator wraps validator for Echo with the form rules registered.
type FormValidator struct {
	validator *validator.Validate
}

// NewFormValidator builds the validator used by all form DTOs.
func NewFormValidator() *FormValidator {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRE.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("hasupper", containsFunc(unicode.IsUpper))
	_ = v.RegisterValidation("haslower", containsFunc(unicode.IsLower))
	_ = v.RegisterValidation("hasdigit", containsFunc(unicode.IsDigit))
	return &FormValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *FormValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func containsFunc(match func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if match(r) {
				return true
			}
		}
		return false
	}
}

// NewHTTPErrorHandler renders the error template instead of echo's default
// JSON body. Error detail reaches the page only outside production.
func NewHTTPErrorHandler(cfg *config.Config) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		httpErr := apperrors.MapErrorToHTTP(err)
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			message := http.StatusText(echoErr.Code)
			if msg, ok := echoErr.Message.(string); ok {
				message = msg
			}
			httpErr = apperrors.NewHTTPError(echoErr.Code, message)
		}

		if httpErr.StatusCode >= http.StatusInternalServerError {
			c.Logger().Error(err)
		}

		detail := ""
		if !cfg.Production() {
			detail = err.Error()
		}

		rerr := c.Render(httpErr.StatusCode, "error.html", map[string]interface{}{
			"Status":  httpErr.StatusCode,
			"Message": httpErr.Message,
			"Detail":  detail,
		})
		if rerr != nil {
			c.Logger().Error(rerr)
		}
	}
}
