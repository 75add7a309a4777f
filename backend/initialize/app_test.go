package initialize

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"todo-guard/backend/app/db/dbtest"
	"todo-guard/backend/app/dto"
	"todo-guard/backend/app/models"
	"todo-guard/backend/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT:      config.JWT{Secret: "app-test-secret-0123456789abcdef", ExpMin: 30},
		Auth:     config.Auth{AccountRole: models.RoleAdmin, BcryptCost: bcrypt.MinCost, PhoneRegion: "US"},
		Throttle: config.Throttle{MaxAttempts: 3, Window: time.Minute},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	return New(testConfig(), dbtest.Open(t), nil)
}

type client struct {
	t *testing.T
	h http.Handler
}

func (c client) do(method, path, token, contentType, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	return rec
}

func (c client) json(method, path, token, body string) *httptest.ResponseRecorder {
	return c.do(method, path, token, "application/json", body)
}

func (c client) register(username, role string) {
	c.t.Helper()
	body := fmt.Sprintf(`{"email":"%s@example.com","username":"%s","first_name":"F","last_name":"L","password":"pw123456","role":"%s","phone_number":"2015550123"}`, username, username, role)
	rec := c.json(http.MethodPost, "/auth/", "", body)
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Empty(c.t, rec.Body.String())
}

func (c client) loginRaw(username, password string) *httptest.ResponseRecorder {
	form := url.Values{"username": {username}, "password": {password}}
	return c.do(http.MethodPost, "/auth/token", "", "application/x-www-form-urlencoded", form.Encode())
}

func (c client) login(username, password string) string {
	c.t.Helper()
	rec := c.loginRaw(username, password)
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	var tok dto.TokenResponse
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &tok))
	assert.Equal(c.t, "bearer", tok.TokenType)
	return tok.AccessToken
}

func (c client) createTodo(token, title string) models.Todo {
	c.t.Helper()
	rec := c.json(http.MethodPost, "/todos", token, fmt.Sprintf(`{"title":%q,"description":"d","priority":3,"complete":false}`, title))
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
	var todo models.Todo
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &todo))
	return todo
}

func TestApp_AliceScenario(t *testing.T) {
	app := newTestApp(t)
	c := client{t: t, h: app.Router}

	c.register("alice", "admin")
	token := c.login("alice", "pw123456")

	claims, err := app.Signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, 5*time.Second)

	todo := c.createTodo(token, "x")
	assert.Equal(t, *claims.UserID, todo.OwnerID)

	rec := c.json(http.MethodGet, "/", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "x", list[0].Title)

	path := fmt.Sprintf("/todos/%d", todo.ID)
	rec = c.json(http.MethodPut, path, token, `{"title":"x2","description":"d2","priority":5,"complete":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = c.json(http.MethodGet, path, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "x2", got.Title)
	assert.True(t, got.Complete)

	rec = c.json(http.MethodDelete, path, token, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = c.json(http.MethodGet, path, token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Todo not found"}`, rec.Body.String())

	rec = c.json(http.MethodGet, "/", token, "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestApp_CrossUserAccessLooksLikeNotFound(t *testing.T) {
	c := client{t: t, h: newTestApp(t).Router}
	c.register("alice", "user")
	c.register("bob", "admin")
	alice := c.login("alice", "pw123456")
	bob := c.login("bob", "pw123456")

	todo := c.createTodo(alice, "mine")
	path := fmt.Sprintf("/todos/%d", todo.ID)
	missing := fmt.Sprintf("/todos/%d", todo.ID+100)

	for _, p := range []string{path, missing} {
		get := c.json(http.MethodGet, p, bob, "")
		put := c.json(http.MethodPut, p, bob, `{"title":"pwned","description":"d","priority":1,"complete":true}`)
		del := c.json(http.MethodDelete, p, bob, "")
		for _, rec := range []*httptest.ResponseRecorder{get, put, del} {
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.JSONEq(t, `{"detail":"Todo not found"}`, rec.Body.String())
		}
	}

	rec := c.json(http.MethodGet, path, alice, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "mine", got.Title)
	assert.False(t, got.Complete)
}

func TestApp_CreateIgnoresClientOwner(t *testing.T) {
	c := client{t: t, h: newTestApp(t).Router}
	c.register("alice", "user")
	c.register("bob", "user")
	bob := c.login("bob", "pw123456")
	alice := c.login("alice", "pw123456")

	rec := c.json(http.MethodPost, "/todos", bob, `{"title":"t","description":"d","priority":2,"complete":false,"owner_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = c.json(http.MethodGet, "/", alice, "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestApp_RequiresBearer(t *testing.T) {
	c := client{t: t, h: newTestApp(t).Router}
	routes := []struct{ method, path string }{
		{http.MethodGet, "/"},
		{http.MethodGet, "/todos/1"},
		{http.MethodPost, "/todos"},
		{http.MethodPut, "/todos/1"},
		{http.MethodDelete, "/todos/1"},
		{http.MethodGet, "/user/"},
		{http.MethodPut, "/user/password"},
		{http.MethodPut, "/user/phone_number"},
	}
	for _, r := range routes {
		for _, token := range []string{"", "garbage"} {
			rec := c.json(r.method, r.path, token, `{}`)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, r.method+" "+r.path)
			assert.JSONEq(t, `{"detail":"Could not validate user"}`, rec.Body.String())
		}
	}
}

func TestApp_LoginFailuresAreUniform(t *testing.T) {
	c := client{t: t, h: newTestApp(t).Router}
	c.register("alice", "user")

	wrong := c.loginRaw("alice", "nope")
	unknown := c.loginRaw("mallory", "pw123456")
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())

	missing := c.do(http.MethodPost, "/auth/token", "", "application/x-www-form-urlencoded", "username=alice")
	assert.Equal(t, http.StatusUnprocessableEntity, missing.Code)
}

func TestApp_RegisterValidation(t *testing.T) {
	c := client{t: t, h: newTestApp(t).Router}
	c.register("alice", "user")

	rec := c.json(http.MethodPost, "/auth/", "", `{"email":"a@example.com","username":"alice","first_name":"F","last_name":"L","password":"pw","role":"user"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"detail":"could not create user"}`, rec.Body.String())

	rec = c.json(http.MethodPost, "/auth/", "", `{"email":"b@example.com","username":"b","first_name":"F","last_name":"L","password":"pw","role":"user","is_admin":true}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "is_admin")
}

func TestApp_TodoValidation(t *testing.T) {
	c := client{t: t, h: newTestApp(t).Router}
	c.register("alice", "user")
	token := c.login("alice", "pw123456")

	rec := c.json(http.MethodPost, "/todos", token, `{"title":"t","description":"d","priority":9,"complete":false}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "priority")

	for _, p := range []string{"/todos/abc", "/todos/0", "/todos/-1"} {
		rec := c.json(http.MethodGet, p, token, "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, p)
	}
}

func TestApp_AccountEndpointsRequireAccountRole(t *testing.T) {
	c := client{t: t, h: newTestApp(t).Router}
	c.register("carol", "user")
	token := c.login("carol", "pw123456")

	for _, rec := range []*httptest.ResponseRecorder{
		c.json(http.MethodGet, "/user/", token, ""),
		c.json(http.MethodPut, "/user/password", token, `{"password":"pw123456","new_password":"newsecret"}`),
		c.json(http.MethodPut, "/user/phone_number", token, `{"phone_number":"5551234567"}`),
	} {
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"detail":"Authentication Failed"}`, rec.Body.String())
	}
}

func TestApp_ProfileAndPhone(t *testing.T) {
	c := client{t: t, h: newTestApp(t).Router}
	c.register("alice", "admin")
	token := c.login("alice", "pw123456")

	rec := c.json(http.MethodGet, "/user/", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var p dto.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, "+12015550123", p.PhoneE164)
	assert.NotContains(t, rec.Body.String(), "hashed_password")

	rec = c.json(http.MethodPut, "/user/phone_number", token, `{"phone_number":"12345"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = c.json(http.MethodPut, "/user/phone_number", token, `{"phone_number":"5551234567"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = c.json(http.MethodGet, "/user/", token, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "5551234567", *p.PhoneNumber)
}

func TestApp_ChangePassword(t *testing.T) {
	c := client{t: t, h: newTestApp(t).Router}
	c.register("alice", "admin")
	token := c.login("alice", "pw123456")

	rec := c.json(http.MethodPut, "/user/password", token, `{"password":"wrong","new_password":"newsecret"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	c.login("alice", "pw123456")

	rec = c.json(http.MethodPut, "/user/password", token, `{"password":"pw123456","new_password":"short"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = c.json(http.MethodPut, "/user/password", token, `{"password":"pw123456","new_password":"newsecret"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, http.StatusUnauthorized, c.loginRaw("alice", "pw123456").Code)
	c.login("alice", "newsecret")
}

func TestApp_LoginThrottle(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	c := client{t: t, h: New(testConfig(), dbtest.Open(t), rdb).Router}
	c.register("alice", "user")

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusUnauthorized, c.loginRaw("alice", "nope").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, c.loginRaw("alice", "pw123456").Code)

	mr.FastForward(2 * time.Minute)
	c.login("alice", "pw123456")
}

func TestApp_Healthz(t *testing.T) {
	c := client{t: t, h: newTestApp(t).Router}
	rec := c.json(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestApp_CreateWithTokenForMissingUser(t *testing.T) {
	app := newTestApp(t)
	c := client{t: t, h: app.Router}

	token, err := app.Signer.Issue("ghost", 999, "user", time.Minute)
	require.NoError(t, err)

	rec := c.json(http.MethodPost, "/todos", token, `{"title":"t","description":"d","priority":1,"complete":false}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"detail":"Could not validate user"}`, rec.Body.String())

	var n int64
	require.NoError(t, app.DB.Model(&models.Todo{}).Where("owner_id = ?", 999).Count(&n).Error)
	assert.Zero(t, n)
}

func TestApp_SlashlessAuthAndUserRoutes(t *testing.T) {
	c := client{t: t, h: newTestApp(t).Router}

	body := `{"email":"dana@example.com","username":"dana","first_name":"D","last_name":"L","password":"pw123456","role":"admin"}`
	rec := c.json(http.MethodPost, "/auth", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	token := c.login("dana", "pw123456")
	rec = c.json(http.MethodGet, "/user", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"dana"`)
}
