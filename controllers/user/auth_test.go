package userControllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Y3ppi3/northfishclient/config"
	"github.com/Y3ppi3/northfishclient/models"
	"github.com/Y3ppi3/northfishclient/routes"
	"github.com/Y3ppi3/northfishclient/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		TokenTTL:  24 * time.Hour,
	}
}

func newAuthRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := testConfig()
	routes.SetupAuthRoutes(r, db, cfg)
	routes.SetupUserRoutes(r, db, cfg)
	return r
}

func doJSON(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const registerBody = `{
	"username": "alice",
	"email": "alice@example.com",
	"phone": "+15550000001",
	"full_name": "Alice Fisher",
	"password": "secret123",
	"password_confirm": "secret123",
	"birthday": "1990-04-01"
}`

func TestRegisterLoginRoundTrip(t *testing.T) {
	db := testutil.DB(t)
	r := newAuthRouter(t, db)

	w := doJSON(r, http.MethodPost, "/auth/register", registerBody, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		AccessToken string      `json:"access_token"`
		TokenType   string      `json:"token_type"`
		User        models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "bearer", created.TokenType)
	assert.NotEmpty(t, created.AccessToken)
	assert.Equal(t, "alice", created.User.Username)

	w = doJSON(r, http.MethodPost, "/auth/login",
		`{"phone":"+15550000001","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.AccessToken)

	w = doJSON(r, http.MethodGet, "/users/me", "", login.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)

	var me models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "alice", me.Username)
	require.NotNil(t, me.Birthday)
	assert.Equal(t, "1990-04-01", me.Birthday.Format("2006-01-02"))
}

func TestRegisterPasswordMismatch(t *testing.T) {
	db := testutil.DB(t)
	r := newAuthRouter(t, db)

	body := `{
		"username": "alice",
		"email": "alice@example.com",
		"phone": "+15550000001",
		"full_name": "Alice Fisher",
		"password": "secret123",
		"password_confirm": "different1"
	}`
	w := doJSON(r, http.MethodPost, "/auth/register", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterDuplicatePhone(t *testing.T) {
	db := testutil.DB(t)
	r := newAuthRouter(t, db)
	testutil.SeedUser(t, db, "bob", "+15550000001", "secret123")

	w := doJSON(r, http.MethodPost, "/auth/register", registerBody, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	db := testutil.DB(t)
	r := newAuthRouter(t, db)
	testutil.SeedUser(t, db, "alice", "+15550000001", "secret123")

	w := doJSON(r, http.MethodPost, "/auth/login",
		`{"phone":"+15550000001","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/login",
		`{"phone":"+15559999999","password":"secret123"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeRejectsBadToken(t *testing.T) {
	db := testutil.DB(t)
	r := newAuthRouter(t, db)

	w := doJSON(r, http.MethodGet, "/users/me", "", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/users/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProfileConflicts(t *testing.T) {
	db := testutil.DB(t)
	r := newAuthRouter(t, db)
	testutil.SeedUser(t, db, "bob", "+15550000002", "secret123")

	w := doJSON(r, http.MethodPost, "/auth/register", registerBody, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// taking bob's phone must conflict
	w = doJSON(r, http.MethodPut, "/users/me",
		`{"phone":"+15550000002"}`, created.AccessToken)
	assert.Equal(t, http.StatusConflict, w.Code)

	// a fresh phone is fine
	w = doJSON(r, http.MethodPut, "/users/me",
		`{"phone":"+15550000003","full_name":"Alice F."}`, created.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateBirthday(t *testing.T) {
	db := testutil.DB(t)
	r := newAuthRouter(t, db)

	w := doJSON(r, http.MethodPost, "/auth/register", registerBody, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(r, http.MethodPut, "/users/me/birthday",
		`{"birthday":"2000-12-24"}`, created.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)

	var me models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	require.NotNil(t, me.Birthday)
	assert.Equal(t, "2000-12-24", me.Birthday.Format("2006-01-02"))

	// null clears it
	w = doJSON(r, http.MethodPut, "/users/me/birthday",
		`{"birthday":null}`, created.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	var cleared models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cleared))
	assert.Nil(t, cleared.Birthday)

	w = doJSON(r, http.MethodPut, "/users/me/birthday",
		`{"birthday":"24-12-2000"}`, created.AccessToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
