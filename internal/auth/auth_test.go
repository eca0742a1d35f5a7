package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"thunder-cargo/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newVerifier(t *testing.T) *StaticVerifier {
	t.Helper()
	v, err := NewStaticVerifier(config.DemoAccounts(), bcrypt.MinCost)
	require.NoError(t, err)
	return v
}

func TestStaticVerifier(t *testing.T) {
	v := newVerifier(t)
	ctx := context.Background()

	id, err := v.Verify(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, id.Role)
	assert.Equal(t, "Administrator", id.DisplayName)

	id, err = v.Verify(ctx, " Client ", "1234")
	require.NoError(t, err)
	assert.Equal(t, RoleCustomer, id.Role)
	assert.Equal(t, "CU001", id.CustomerID)

	_, err = v.Verify(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrRejected)

	_, err = v.Verify(ctx, "nobody", "admin123")
	assert.ErrorIs(t, err, ErrRejected)
}

func TestStaticVerifierAcceptsPrehashed(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	v, err := NewStaticVerifier([]config.Account{
		{Username: "ops", PasswordHash: string(hash), Role: "admin"},
	}, bcrypt.MinCost)
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), "ops", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "ops", id.DisplayName)
}

func TestStaticVerifierRejectsBadAccounts(t *testing.T) {
	_, err := NewStaticVerifier([]config.Account{{Username: "x", Password: "y", Role: "root"}}, bcrypt.MinCost)
	assert.Error(t, err)

	_, err = NewStaticVerifier([]config.Account{{Username: "x", Password: "y", Role: "customer"}}, bcrypt.MinCost)
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	in := &Identity{Username: "client", DisplayName: "Ahmet Yilmaz", Role: RoleCustomer, CustomerID: "CU001"}
	token, err := GenerateToken(testSecret, in, time.Now())
	require.NoError(t, err)

	out, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = ParseToken(strings.Repeat("x", 32), token)
	assert.Error(t, err)

	expired, err := GenerateToken(testSecret, in, time.Now().Add(-2*TokenTTL))
	require.NoError(t, err)
	_, err = ParseToken(testSecret, expired)
	assert.Error(t, err)
}

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(SessionMiddleware(testSecret))
	app.Post("/login", LoginHandler(newVerifier(t), testSecret))
	app.Get("/me", MeHandler())
	app.Get("/admin", RequireRole(RoleAdmin), func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestGuestSession(t *testing.T) {
	app := newApp(t)

	code, body := do(t, app, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"username":"","display_name":"","role":"guest"}`, body)

	code, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestLoginAndRoleGuard(t *testing.T) {
	app := newApp(t)

	login := func(user, pass string) string {
		req := httptest.NewRequest(http.MethodPost, "/login",
			strings.NewReader(`{"username":"`+user+`","password":"`+pass+`"}`))
		req.Header.Set("Content-Type", "application/json")
		code, body := do(t, app, req)
		require.Equal(t, http.StatusOK, code, body)
		i := strings.Index(body, `"token":"`)
		require.GreaterOrEqual(t, i, 0)
		rest := body[i+len(`"token":"`):]
		return rest[:strings.Index(rest, `"`)]
	}

	get := func(path, token string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		code, _ := do(t, app, req)
		return code
	}

	assert.Equal(t, http.StatusOK, get("/admin", login("admin", "admin123")))
	assert.Equal(t, http.StatusForbidden, get("/admin", login("client", "1234")))
	assert.Equal(t, http.StatusUnauthorized, get("/me", "garbage"))

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	code, _ := do(t, app, req)
	assert.Equal(t, http.StatusUnauthorized, code)
}
