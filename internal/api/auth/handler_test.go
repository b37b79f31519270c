package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"insurance-app/database"
	"insurance-app/internal/app/http/middleware"
	"insurance-app/internal/domain/subscriptions"
	"insurance-app/internal/domain/users"
	"insurance-app/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&users.User{}, &subscriptions.Subscription{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	database.DB = setupTestDB(t)
	token.Init("test-secret", time.Hour)

	r := gin.New()
	r.POST("/api/auth/register", Register)
	r.POST("/api/auth/login", Login)
	r.GET("/api/auth/profile", middleware.AuthMiddleware(), Profile)
	r.POST("/api/auth/register-commercial", middleware.AuthMiddleware(), middleware.RequireRole(users.RoleAdmin), RegisterCommercial)
	return r
}

func doJSON(r *gin.Engine, method, path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

const registerBody = `{"email":"jean@x.com","password":"pass1234","nom":"Dupont","prenom":"Jean","civilite":"M","date_naissance":"1990-05-01","lieu_naissance":"Abidjan","telephone":"0700000000","adresse":"Cocody","pays":"CI"}`

func TestRegisterClient(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", registerBody, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	out := decodeEnvelope(t, w)
	assert.Equal(t, true, out["success"])
	user := out["user"].(map[string]any)
	assert.Equal(t, "jean@x.com", user["email"])
	assert.Equal(t, users.RoleClient, user["role"])
	assert.NotContains(t, w.Body.String(), "pass1234")
	assert.NotContains(t, w.Body.String(), "password")

	// same email again conflicts
	w = doJSON(r, http.MethodPost, "/api/auth/register", registerBody, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterMissingField(t *testing.T) {
	r := setupRouter(t)

	body := `{"email":"","password":"x","nom":"x","prenom":"x","telephone":"x"}`
	w := doJSON(r, http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	out := decodeEnvelope(t, w)
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["message"], "email")
}

func TestRegisterAdminMarkerEmail(t *testing.T) {
	r := setupRouter(t)

	body := strings.Replace(registerBody, "jean@x.com", "jean.adminvi25@x.com", 1)
	w := doJSON(r, http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	user := decodeEnvelope(t, w)["user"].(map[string]any)
	assert.Equal(t, users.RoleAdmin, user["role"])
}

func TestLoginFailuresShareMessage(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(r, http.MethodPost, "/api/auth/register", registerBody, "")
	require.Equal(t, http.StatusCreated, w.Code)

	unknown := doJSON(r, http.MethodPost, "/api/auth/login", `{"email":"nobody@x.com","password":"pass1234"}`, "")
	wrongPass := doJSON(r, http.MethodPost, "/api/auth/login", `{"email":"jean@x.com","password":"wrong"}`, "")

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, decodeEnvelope(t, unknown)["message"], decodeEnvelope(t, wrongPass)["message"])
}

func TestLoginSuccess(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(r, http.MethodPost, "/api/auth/register", registerBody, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/login", `{"email":"jean@x.com","password":"pass1234"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	out := decodeEnvelope(t, w)
	tokenString := out["token"].(string)
	claims, err := token.Default.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "jean@x.com", claims.Email)
	assert.Equal(t, users.RoleClient, claims.Role)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestProfile(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(r, http.MethodPost, "/api/auth/register", registerBody, "")
	require.Equal(t, http.StatusCreated, w.Code)

	login := decodeEnvelope(t, doJSON(r, http.MethodPost, "/api/auth/login", `{"email":"jean@x.com","password":"pass1234"}`, ""))
	bearer := login["token"].(string)

	w = doJSON(r, http.MethodGet, "/api/auth/profile", "", bearer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user := decodeEnvelope(t, w)["user"].(map[string]any)
	assert.Equal(t, "jean@x.com", user["email"])
	assert.Equal(t, "1990-05-01", user["date_naissance"])

	// no token
	w = doJSON(r, http.MethodGet, "/api/auth/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// valid token but the account is gone
	require.NoError(t, database.DB.Where("email = ?", "jean@x.com").Delete(&users.User{}).Error)
	w = doJSON(r, http.MethodGet, "/api/auth/profile", "", bearer)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func adminBearer(t *testing.T) string {
	t.Helper()
	hash, err := users.HashPassword("admin-pass")
	require.NoError(t, err)
	admin := users.User{Email: "root.adminvi25@x.com", PasswordHash: hash, Role: users.RoleAdmin, Nom: "Root", Prenom: "Admin", Telephone: "0"}
	require.NoError(t, database.DB.Create(&admin).Error)

	bearer, err := token.Default.Issue(token.Claims{UserID: admin.ID, Email: admin.Email, Role: admin.Role})
	require.NoError(t, err)
	return bearer
}

func TestRegisterCommercial(t *testing.T) {
	r := setupRouter(t)
	bearer := adminBearer(t)

	commercial := `{"email":"paul.coriscomvi25@x.com","password":"pass1234","nom":"Koffi","prenom":"Paul","telephone":"0701","code_apporteur":"AP-42"}`

	// only admins may create commercial accounts
	w := doJSON(r, http.MethodPost, "/api/auth/register-commercial", commercial, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	clientBearer, err := token.Default.Issue(token.Claims{UserID: 99, Email: "c@x.com", Role: users.RoleClient})
	require.NoError(t, err)
	w = doJSON(r, http.MethodPost, "/api/auth/register-commercial", commercial, clientBearer)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/register-commercial", commercial, bearer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := decodeEnvelope(t, w)["user"].(map[string]any)
	assert.Equal(t, users.RoleCommercial, user["role"])
	assert.Equal(t, "AP-42", user["code_apporteur"])

	// email without the commercial marker is rejected whatever the rest
	badEmail := strings.Replace(commercial, "paul.coriscomvi25@x.com", "paul@x.com", 1)
	w = doJSON(r, http.MethodPost, "/api/auth/register-commercial", badEmail, bearer)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// commercial code is mandatory
	noCode := strings.Replace(commercial, `"code_apporteur":"AP-42"`, `"code_apporteur":""`, 1)
	noCode = strings.Replace(noCode, "paul.coriscomvi25@x.com", "jules.coriscomvi25@x.com", 1)
	w = doJSON(r, http.MethodPost, "/api/auth/register-commercial", noCode, bearer)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
