package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"clubhouse/internal/auth"
	apperrors "clubhouse/internal/errors"
	"clubhouse/internal/service"
)

// MemberHandler handles the member and admin promotion challenges.
type MemberHandler struct {
	membership service.MembershipService
}

// NewMemberHandler creates a new member handler.
func NewMemberHandler(membership service.MembershipService) *MemberHandler {
	return &MemberHandler{membership: membership}
}

// ShowMember renders the member challenge form.
func (h *MemberHandler) ShowMember(c echo.Context) error {
	return c.Render(http.StatusOK, "newmember.html", formPage{Form: &SecretForm{}})
}

// ShowAdmin renders the admin challenge form.
func (h *MemberHandler) ShowAdmin(c echo.Context) error {
	return c.Render(http.StatusOK, "newadmin.html", formPage{Form: &SecretForm{}})
}

// PromoteMember upgrades the caller to member status when the secret phrase
// matches their own username.
func (h *MemberHandler) PromoteMember(c echo.Context) error {
	return h.promote(c, "newmember.html", h.membership.PromoteToMember)
}

// PromoteAdmin upgrades the caller to admin status when the secret phrase
// matches their own first name.
func (h *MemberHandler) PromoteAdmin(c echo.Context) error {
	return h.promote(c, "newadmin.html", h.membership.PromoteToAdmin)
}

func (h *MemberHandler) promote(c echo.Context, template string, promote func(ctx context.Context, userID uint, secret string) error) error {
	var form SecretForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	// A rendered 401, not a redirect: the challenge POST is an API-shaped
	// action, unlike the home-page guard.
	user, ok := auth.CurrentUser(c)
	if !ok {
		return c.Render(http.StatusUnauthorized, template, formPage{
			Errors: []string{"Unauthorized access"},
			Form:   &form,
		})
	}

	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusOK, template, formPage{Errors: formErrors(err), Form: &form})
	}

	if err := promote(c.Request().Context(), user.ID, form.SecretPass); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUserNotFound):
			return c.Render(http.StatusNotFound, template, formPage{
				Errors: []string{"User not found"},
				Form:   &form,
			})
		case errors.Is(err, service.ErrWrongSecret):
			return c.Render(http.StatusOK, template, formPage{
				Errors: []string{"Incorrect secret pass. Please try again"},
				Form:   &form,
			})
		default:
			c.Logger().Errorf("promote: %v", err)
			return c.Render(http.StatusInternalServerError, template, formPage{
				Errors: []string{"An unexpected error occurred. Please try again later."},
				Form:   &form,
			})
		}
	}

	return c.Redirect(http.StatusSeeOther, "/")
}
