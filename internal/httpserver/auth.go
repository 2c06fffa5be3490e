package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/gallery/internal/logging"
	"github.com/Skotchmaster/gallery/internal/session"
	"github.com/Skotchmaster/gallery/internal/transport"
)

const sessionKey = "session"

type AuthHTTP struct {
	Gate          *session.Manager
	SecureCookies bool
}

// LoadSession resolves the session cookie and stores the session (possibly
// nil) in the echo context. It never rejects a request; gating is done by the
// service for each mutating call.
func (h *AuthHTTP) LoadSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var s *session.Session
		if ck, err := c.Cookie(sessionCookie); err == nil {
			s = h.Gate.Resolve(ck.Value)
		}
		c.Set(sessionKey, s)
		return next(c)
	}
}

func currentSession(c echo.Context) *session.Session {
	s, _ := c.Get(sessionKey).(*session.Session)
	return s
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	s, err := h.Gate.Login(ctx, req.Username, req.Password)
	if err != nil {
		return httpError(l, "login", err)
	}

	c.SetCookie(CreateCookie(sessionCookie, s.Token, "/", s.ExpiresAt, h.SecureCookies))
	l.Info("login_successful")
	return c.JSON(http.StatusOK, echo.Map{"authenticated": true})
}

func (h *AuthHTTP) LogOut(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth_logout")

	h.Gate.Logout(currentSession(c))
	c.SetCookie(DeleteCookie(sessionCookie, "/", h.SecureCookies))

	l.Info("successful_logout")
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}
