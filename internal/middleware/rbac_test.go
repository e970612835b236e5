package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithRole(t *testing.T, role string, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec
}

func TestRequireRolesAllows(t *testing.T) {
	rec := runWithRole(t, "SELLER", RequireRoles("SELLER", "ADMIN"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesDenies(t *testing.T) {
	rec := runWithRole(t, "USER", RequireRoles("SELLER", "ADMIN"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesMissingRole(t *testing.T) {
	rec := runWithRole(t, "", RequireRoles("SELLER"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminGuard(t *testing.T) {
	assert.Equal(t, http.StatusOK, runWithRole(t, "ADMIN", AdminGuard).Code)
	assert.Equal(t, http.StatusForbidden, runWithRole(t, "SELLER", AdminGuard).Code)
	assert.Equal(t, http.StatusForbidden, runWithRole(t, "", AdminGuard).Code)
}
