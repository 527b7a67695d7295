package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/repair-tracker/internal/domain"
	apperrors "github.com/spec-kit/repair-tracker/pkg/util/errorutil"
)

var (
	admin   = domain.User{ID: "admin-1", DisplayName: "Admin", Role: domain.RoleAdmin}
	tech    = domain.User{ID: "tech-1", DisplayName: "Tech Support", Role: domain.RoleTechnician}
	faculty = domain.User{ID: "fac-1", DisplayName: "Dr. Rao", Role: domain.RoleFaculty}
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	token, exp, err := tm.GenerateToken(tech)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	user, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, tech, user)
}

func TestParseTokenRejects(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	token, _, err := tm.GenerateToken(faculty)
	require.NoError(t, err)

	_, err = NewTokenManager("other", time.Hour).ParseToken(token)
	assert.Error(t, err, "wrong secret")

	expired := NewTokenManager("secret", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.GenerateToken(faculty)
	require.NoError(t, err)
	_, err = tm.ParseToken(old)
	assert.Error(t, err, "expired")

	_, _, err = tm.GenerateToken(domain.User{ID: "x", Role: "janitor"})
	assert.Error(t, err)
}

func TestCapabilities(t *testing.T) {
	assigned := "tech-1"
	held := &domain.Request{ID: "r1", Status: domain.RequestStatusInProgress, AssignedTo: &assigned}

	cases := []struct {
		name string
		user domain.User
		cap  Capability
		req  *domain.Request
		want bool
	}{
		{"faculty submits", faculty, CapabilitySubmit, nil, true},
		{"faculty cannot accept", faculty, CapabilityAccept, nil, false},
		{"technician accepts", tech, CapabilityAccept, nil, true},
		{"admin accepts", admin, CapabilityAccept, nil, true},
		{"assignee completes", tech, CapabilityComplete, held, true},
		{"other technician cannot complete", domain.User{ID: "tech-2", Role: domain.RoleTechnician}, CapabilityComplete, held, false},
		{"admin completes", admin, CapabilityComplete, held, true},
		{"technician cannot reprioritize", tech, CapabilityReprioritize, held, false},
		{"admin reprioritizes", admin, CapabilityReprioritize, held, true},
		{"faculty has no worklist", faculty, CapabilityViewWorklist, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Can(tc.user, tc.cap, tc.req))
		})
	}
}

func TestAuthorizeErrors(t *testing.T) {
	err := Authorize(domain.User{}, CapabilitySubmit, nil)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))

	err = Authorize(faculty, CapabilityAccept, nil)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))

	assert.NoError(t, AuthorizeWorklist(tech, "tech-1"))
	assert.True(t, apperrors.HasCode(AuthorizeWorklist(tech, "tech-2"), apperrors.CodeForbidden))
	assert.NoError(t, AuthorizeWorklist(admin, "tech-2"))
}

func TestMiddlewareSetsCurrentUser(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	mw := NewAuthMiddleware(tm)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(apperrors.ToDomainError(err).HTTPStatus).SendString(err.Error())
		},
	})
	app.Get("/me", mw.Handle, RequireRole(domain.RoleTechnician), func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(user.ID)
	})

	token, _, err := tm.GenerateToken(tech)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/me", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	facultyToken, _, err := tm.GenerateToken(faculty)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+facultyToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
