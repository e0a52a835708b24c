package auth

import (
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"

	"clubhouse/internal/model"
	"clubhouse/internal/repository"
)

// CookieName is the session cookie delivered to clients. Its value is the
// HMAC-signed session id, never the authentication state itself.
const CookieName = "clubhouse_session"

const (
	contextUserKey    = "auth.user"
	contextSessionKey = "auth.sid"
)

// Manager ties the session store, the credential store and the cookie codec
// together and exposes the request middleware.
type Manager struct {
	store  SessionStore
	users  repository.UserRepository
	codec  *securecookie.SecureCookie
	secure bool
}

// NewManager creates a session manager. The secret signs the session cookie;
// secure controls the cookie Secure flag and should be true in production.
func NewManager(store SessionStore, users repository.UserRepository, secret string, secure bool) *Manager {
	return &Manager{
		store:  store,
		users:  users,
		codec:  securecookie.New([]byte(secret), nil),
		secure: secure,
	}
}

// Login establishes a session for userID and sets the session cookie.
func (m *Manager) Login(c echo.Context, userID uint) error {
	sid, err := m.store.Establish(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	encoded, err := m.codec.Encode(CookieName, sid)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// Logout destroys the current session, if any, and expires the cookie.
// Logging out an anonymous request is a no-op.
func (m *Manager) Logout(c echo.Context) error {
	if sid, ok := SessionID(c); ok {
		if err := m.store.Destroy(c.Request().Context(), sid); err != nil {
			return err
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	})
	c.Set(contextUserKey, nil)
	c.Set(contextSessionKey, nil)
	return nil
}

// WithSession resolves the session cookie and loads the current user into
// the request context. Requests without a valid, unexpired session pass
// through anonymously; resolution never fails the request.
func (m *Manager) WithSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil {
				return next(c)
			}

			var sid string
			if err := m.codec.Decode(CookieName, cookie.Value, &sid); err != nil {
				return next(c)
			}

			ctx := c.Request().Context()
			userID, err := m.store.Resolve(ctx, sid)
			if err != nil {
				return next(c)
			}

			user, err := m.users.FindByID(ctx, userID)
			if err != nil {
				return next(c)
			}

			c.Set(contextUserKey, user)
			c.Set(contextSessionKey, sid)
			return next(c)
		}
	}
}

// RequireLogin guards a route, redirecting anonymous requests to the login
// page. The redirect is a UX affordance, not an access-denied signal.
func (m *Manager) RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := CurrentUser(c); !ok {
				return c.Redirect(http.StatusFound, "/login")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user for this request, if any.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(contextUserKey).(*model.User)
	return user, ok && user != nil
}

// SessionID returns the resolved session id for this request, if any.
func SessionID(c echo.Context) (string, bool) {
	sid, ok := c.Get(contextSessionKey).(string)
	return sid, ok && sid != ""
}
