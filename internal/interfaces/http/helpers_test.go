package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/confeitaria-api/internal/application/auth"
	"github.com/jhoicas/confeitaria-api/internal/application/stock"
	"github.com/jhoicas/confeitaria-api/internal/domain/authz"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	apphttp "github.com/jhoicas/confeitaria-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/confeitaria-api/pkg/jwt"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "confeitaria-test"
	testPassword  = "12345678"
)

type testEnv struct {
	app   *fiber.App
	repo  *memIngredientRepo
	users *memUserRepo
}

// newTestEnv arma la app completa (router real) sobre repositorios en memoria,
// con un usuario activo por perfil y uno inactivo.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.Nop()
	repo := newMemIngredientRepo()
	users := &memUserRepo{byID: map[string]*entity.User{}}

	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)
	for _, r := range []authz.Role{authz.RoleSupervisorSenior, authz.RoleSupervisorJunior, authz.RoleConfeiteiro, authz.RoleAtendente} {
		users.byID[userID(r)] = &entity.User{
			ID: userID(r), Name: string(r), Email: emailFor(r), PasswordHash: hash,
			Role: r, Status: entity.UserStatusActive, CreatedAt: time.Now(),
		}
	}
	users.byID["inactive"] = &entity.User{
		ID: "inactive", Email: "inativo@teste.com", PasswordHash: hash,
		Role: authz.RoleSupervisorSenior, Status: entity.UserStatusInactive,
	}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		StockUC:  stock.NewUseCase(repo, log),
		ReportUC: stock.NewReportUseCase(repo, stubReportGenerator{}, log),
		AuthUC:   auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 20, Issuer: testIssuer}),
		Verifier: auth.NewVerifier(testJWTSecret, users),
		Log:      log,
	})
	return &testEnv{app: app, repo: repo, users: users}
}

func userID(r authz.Role) string { return "user-" + string(r) }

func emailFor(r authz.Role) string { return string(r) + "@confeitaria.com" }

// bearer genera el header Authorization para el usuario con ese id.
func bearer(t *testing.T, id string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, id, testIssuer, 20)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (e *testEnv) do(t *testing.T, method, path, auth string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return m
}

func validIngredient() map[string]any {
	return map[string]any{
		"name":             "Farinha de Trigo",
		"unitCount":        20,
		"weightPerUnit":    1,
		"unitOfMeasure":    "kg",
		"expiryDate":       "2027-02-01",
		"minimumThreshold": 5,
		"costPrice":        4.5,
		"category":         "secos",
	}
}
