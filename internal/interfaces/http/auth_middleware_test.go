package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/confeitaria-api/internal/domain/authz"
	pkgjwt "github.com/jhoicas/confeitaria-api/pkg/jwt"
)

func TestAuthMiddleware_Rechazos401(t *testing.T) {
	env := newTestEnv(t)
	expired, _ := pkgjwt.Generate(testJWTSecret, userID(authz.RoleSupervisorSenior), testIssuer, -1)
	otherSecret, _ := pkgjwt.Generate("otro-secret", userID(authz.RoleSupervisorSenior), testIssuer, 20)

	cases := map[string]string{
		"sin header":          "",
		"sin esquema Bearer":  "Token abc",
		"token vacío":         "Bearer ",
		"token malformado":    "Bearer no.es.jwt",
		"token expirado":      "Bearer " + expired,
		"firma de otro":       "Bearer " + otherSecret,
		"usuario inexistente": bearer(t, "ghost"),
		"usuario inactivo":    bearer(t, "inactive"),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			resp := env.do(t, http.MethodGet, "/api/stock", header, nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "UNAUTHENTICATED", decode(t, resp)["code"])
		})
	}
}

func TestAuthMiddleware_BearerSinDistinguirMayusculas(t *testing.T) {
	env := newTestEnv(t)
	tok := bearer(t, userID(authz.RoleAtendente))[len("Bearer "):]

	resp := env.do(t, http.MethodGet, "/api/stock", "bearer "+tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// La matriz de capacidades sobre las rutas reales: 403 antes de tocar el repositorio.
func TestRequireCapability_Matriz(t *testing.T) {
	env := newTestEnv(t)

	routes := []struct {
		cap    authz.Capability
		method string
		path   string
		body   any
	}{
		{authz.CapCreate, http.MethodPost, "/api/stock", validIngredient()},
		{authz.CapListAll, http.MethodGet, "/api/stock", nil},
		{authz.CapReadOne, http.MethodGet, "/api/stock/ingredient/x", nil},
		{authz.CapUpdate, http.MethodPut, "/api/stock/ingredient/x", map[string]any{"unitCount": 1}},
		{authz.CapDelete, http.MethodDelete, "/api/stock/ingredient/x", nil},
	}
	roles := []authz.Role{authz.RoleSupervisorSenior, authz.RoleSupervisorJunior, authz.RoleConfeiteiro, authz.RoleAtendente}

	for _, role := range roles {
		for _, rt := range routes {
			t.Run(string(role)+"/"+string(rt.cap), func(t *testing.T) {
				resp := env.do(t, rt.method, rt.path, bearer(t, userID(role)), rt.body)
				if authz.CanPerform(role, rt.cap) {
					assert.NotEqual(t, http.StatusForbidden, resp.StatusCode)
					assert.NotEqual(t, http.StatusUnauthorized, resp.StatusCode)
					return
				}
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
				assert.Equal(t, "FORBIDDEN", decode(t, resp)["code"])
			})
		}
	}
	assert.Len(t, env.repo.order, 2, "solo los supervisores llegan a crear")
}
