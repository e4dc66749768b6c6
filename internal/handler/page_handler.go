package handler

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"finmov/internal/auth"
	"finmov/internal/model"
	"finmov/internal/service"
)

// PageHandler serves the server-rendered pages. Every page re-runs the
// authorization gate before rendering; the transport-level filter in the
// router is a convenience, not the security boundary.
type PageHandler struct {
	jwts      *auth.JWTService
	tokens    auth.TokenStoreInterface
	users     service.UserService
	movements service.MovementService
	reports   service.ReportService
}

// NewPageHandler creates a page handler.
func NewPageHandler(
	jwts *auth.JWTService,
	tokens auth.TokenStoreInterface,
	users service.UserService,
	movements service.MovementService,
	reports service.ReportService,
) *PageHandler {
	return &PageHandler{jwts: jwts, tokens: tokens, users: users, movements: movements, reports: reports}
}

// landingFor maps a role to its landing page.
func landingFor(role model.Role) string {
	if role == model.RoleUser {
		return "/user-dashboard"
	}
	return "/dashboard"
}

// requirePage runs the gate for a page route. Unauthenticated viewers are
// redirected to the public entry page, under-privileged viewers to their
// role's landing page. The returned bool reports whether a redirect was
// written.
func (h *PageHandler) requirePage(c echo.Context, roles ...model.Role) (*auth.Session, bool, error) {
	sess := auth.SessionFromCookie(c, h.jwts, h.tokens)
	authorized, err := auth.Authorize(sess, roles...)
	if err != nil {
		if sess == nil {
			return nil, true, c.Redirect(http.StatusFound, "/")
		}
		return nil, true, c.Redirect(http.StatusFound, landingFor(sess.Role))
	}
	return authorized, false, nil
}

// Login is the public entry page. An already-authenticated viewer is sent
// straight to their landing page.
func (h *PageHandler) Login(c echo.Context) error {
	if sess := auth.SessionFromCookie(c, h.jwts, h.tokens); sess != nil {
		return c.Redirect(http.StatusFound, landingFor(sess.Role))
	}
	return c.HTML(http.StatusOK, `<html><body><h1>Sign in</h1><p>POST /api/auth/login with email and password.</p></body></html>`)
}

// Dashboard is the admin landing page.
func (h *PageHandler) Dashboard(c echo.Context) error {
	sess, redirected, err := h.requirePage(c, model.RoleAdmin)
	if redirected || err != nil {
		return err
	}

	rep, err := h.reports.Generate(c.Request().Context())
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, fmt.Sprintf(
		`<html><body><h1>Dashboard</h1><p>Welcome, %s.</p><p>Balance: %s</p><p>Income: %s &middot; Expense: %s</p></body></html>`,
		template.HTMLEscapeString(sess.Name),
		model.FormatUSD(rep.Balance),
		model.FormatUSD(rep.TotalIncome),
		model.FormatUSD(rep.TotalExpense),
	))
}

// Movements lists all movements for admins.
func (h *PageHandler) Movements(c echo.Context) error {
	_, redirected, err := h.requirePage(c, model.RoleAdmin)
	if redirected || err != nil {
		return err
	}

	movements, err := h.movements.List(c.Request().Context())
	if err != nil {
		return err
	}
	rows := ""
	for _, m := range movements {
		rows += fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			template.HTMLEscapeString(m.Concept),
			model.FormatUSD(m.Amount),
			m.Type,
			m.Date.UTC().Format("2006-01-02"),
		)
	}
	return c.HTML(http.StatusOK, fmt.Sprintf(
		`<html><body><h1>Movements</h1><table><tr><th>Concept</th><th>Amount</th><th>Type</th><th>Date</th></tr>%s</table></body></html>`,
		rows,
	))
}

// Reports shows the monthly breakdown for admins.
func (h *PageHandler) Reports(c echo.Context) error {
	_, redirected, err := h.requirePage(c, model.RoleAdmin)
	if redirected || err != nil {
		return err
	}

	rep, err := h.reports.Generate(c.Request().Context())
	if err != nil {
		return err
	}
	rows := ""
	for month, totals := range rep.MonthlyData {
		rows += fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s</td></tr>",
			month, model.FormatUSD(totals.Income), model.FormatUSD(totals.Expense))
	}
	return c.HTML(http.StatusOK, fmt.Sprintf(
		`<html><body><h1>Reports</h1><p>Balance: %s</p><table><tr><th>Month</th><th>Income</th><th>Expense</th></tr>%s</table></body></html>`,
		model.FormatUSD(rep.Balance),
		rows,
	))
}

// Users lists all users for admins.
func (h *PageHandler) Users(c echo.Context) error {
	_, redirected, err := h.requirePage(c, model.RoleAdmin)
	if redirected || err != nil {
		return err
	}

	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	rows := ""
	for _, u := range users {
		rows += fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s</td></tr>",
			template.HTMLEscapeString(u.Name),
			template.HTMLEscapeString(u.Email),
			u.Role,
		)
	}
	return c.HTML(http.StatusOK, fmt.Sprintf(
		`<html><body><h1>Users</h1><table><tr><th>Name</th><th>Email</th><th>Role</th></tr>%s</table></body></html>`,
		rows,
	))
}

// UserDashboard is the shared landing page; both roles are listed explicitly.
func (h *PageHandler) UserDashboard(c echo.Context) error {
	sess, redirected, err := h.requirePage(c, model.RoleAdmin, model.RoleUser)
	if redirected || err != nil {
		return err
	}

	// Re-read the user so a role change since sign-in shows up.
	user, err := h.users.Get(c.Request().Context(), sess.UserID)
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, fmt.Sprintf(
		`<html><body><h1>My dashboard</h1><p>Signed in as %s (%s).</p></body></html>`,
		template.HTMLEscapeString(user.Name),
		user.Role,
	))
}
