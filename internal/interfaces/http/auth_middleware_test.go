package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	apphttp "github.com/maleksellami/caisse-backend/internal/interfaces/http"
	pkgjwt "github.com/maleksellami/caisse-backend/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testEmail     = "agent@caisse.tn"
	testIssuer    = "caisse-backend-test"
	testExpMin    = 60
)

// buildTestApp construit une application Fiber minimale avec:
//   - AuthMiddleware pour parser le JWT et remplir les locals
//   - RequireRole pour autoriser l'accès
//   - Un handler factice qui renvoie 200 si les middlewares passent
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silencier les erreurs internes dans les tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	// Route protégée: JWT + RBAC
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole génère un JWT portant le rôle donné.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, role, testIssuer, testExpMin)
	require.NoError(t, err, "un token JWT valide doit pouvoir être généré")
	return "Bearer " + tok
}

// doRequest lance une requête GET /protected et renvoie la réponse.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Cas 1: l'utilisateur porte le rôle requis → doit passer (HTTP 200).
func TestRequireRole_AdminAccedeRouteAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"un admin doit pouvoir accéder à une route restreinte aux admins")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"], "la réponse doit inclure ok:true")
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

// Cas 1b: l'utilisateur porte l'un des rôles autorisés (multi-rôle) → HTTP 200.
func TestRequireRole_DirectionAccedeRouteDirectionOuAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleDirection, entity.RoleAdmin)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleDirection))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"la Direction doit pouvoir accéder à une route Direction ou admin")
}

// Cas 2: l'utilisateur porte un autre rôle → HTTP 403 Forbidden.
func TestRequireRole_SecuriteBloqueeSurRouteDirection(t *testing.T) {
	app := buildTestApp(entity.RoleDirection, entity.RoleAdmin)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleSecurite))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"la sécurité ne doit pas résoudre de conflits")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la réponse d'erreur doit inclure le code FORBIDDEN")
}

// Cas 2b: agent hygiène bloqué sur une route agent de contrôle → HTTP 403.
func TestRequireRole_HygieneBloqueeSurRouteControle(t *testing.T) {
	app := buildTestApp(entity.RoleAgentControle)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleAgentHygiene))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Cas 3: token sans claim de rôle (émulé avec un rôle vide) → HTTP 401.
func TestRequireRole_TokenSansRole_Retourne401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"un token sans rôle doit retourner 401")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE",
		"la réponse doit indiquer le code MISSING_ROLE")
}

// Cas 4: pas de header Authorization → HTTP 401 MISSING_TOKEN.
func TestRequireRole_SansAuthHeader_Retourne401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "") // sans header
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Cas 5: token invalide / malformé → HTTP 401 INVALID_TOKEN.
func TestRequireRole_TokenInvalide_Retourne401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer token.invalide.ici")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — extraction des claims du token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraitClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"email":   apphttp.GetEmail(c),
			"role":    apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleAgentControle))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testEmail, body["email"])
	assert.Equal(t, entity.RoleAgentControle, body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests pkg jwt — intégrité du generate/parse avec rôle
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateEtParse_AvecRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, entity.RoleSecurite, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, email, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, testEmail, email)
	assert.Equal(t, entity.RoleSecurite, role)
}

func TestJWT_TokenExpire_RetourneErreur(t *testing.T) {
	// Token avec expiration -1 minute (déjà expiré)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, entity.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "un token expiré doit retourner une erreur")
}

func TestJWT_MauvaisSecret_RetourneErreur(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("un-autre-secret-completement-different", tok)
	assert.Error(t, err, "un mauvais secret doit invalider le token")
}
