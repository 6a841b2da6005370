package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/auth"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/config"
	"github.com/m3shovon/Event-SaaS-Platform/internal/interfaces/http/handler"
	"github.com/m3shovon/Event-SaaS-Platform/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestDomainGroup_RegistersEveryMethod(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("items", "/items")
	ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
	g.GET("", ok).
		POST("", ok).
		PUT("/:id", ok).
		PATCH("/:id", ok).
		DELETE("/:id", ok)
	NewRouter(engine).Register(g).Setup()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/items"},
		{http.MethodPost, "/api/v1/items"},
		{http.MethodPut, "/api/v1/items/1"},
		{http.MethodPatch, "/api/v1/items/1"},
		{http.MethodDelete, "/api/v1/items/1"},
	}
	for _, tt := range tests {
		w := serve(engine, tt.method, tt.path, "")
		assert.Equal(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.path)
		assert.Equal(t, tt.method, w.Body.String())
	}
}

func TestDomainGroup_MiddlewareReachesSubgroups(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("billing", "/billing").Use(func(c *gin.Context) {
		c.Header("X-Guard", "applied")
		c.Next()
	})
	g.Group("account", "/account").GET("/history", func(c *gin.Context) {
		c.String(http.StatusOK, "history")
	})
	NewRouter(engine).Register(g).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/billing/account/history", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "applied", w.Header().Get("X-Guard"))
	assert.Equal(t, "billing", g.Name())
	assert.Equal(t, "/billing", g.Prefix())
}

func TestDomainGroup_SiblingMiddlewareDoesNotLeak(t *testing.T) {
	engine := gin.New()
	public := NewDomainGroup("public", "/public")
	public.GET("", func(c *gin.Context) { c.String(http.StatusOK, "open") })
	private := NewDomainGroup("private", "").Use(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	})
	private.GET("/private", func(c *gin.Context) { c.String(http.StatusOK, "secret") })
	NewRouter(engine).Register(public, private).Setup()

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/public", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/private", "").Code)
}

func TestRouter_RoutesMatchesEngine(t *testing.T) {
	engine := gin.New()
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	planning := NewDomainGroup("planning", "")
	planning.Group("events", "/events").GET("/", ok).GET("/:id", ok)
	admin := NewDomainGroup("admin", "/admin")
	admin.Group("plans", "/plans").POST("", ok)

	r := NewRouter(engine).Register(planning, admin)
	r.Setup()

	want := []string{"GET /api/v1/events/", "GET /api/v1/events/:id", "POST /api/v1/admin/plans"}
	assert.Equal(t, want, r.Routes())

	var mounted []string
	for _, info := range engine.Routes() {
		mounted = append(mounted, info.Method+" "+info.Path)
	}
	assert.ElementsMatch(t, want, mounted)
}

type apiFixture struct {
	engine *gin.Engine
	jwt    *auth.JWTService
}

// newAPIFixture mounts the real route table. Handlers have no services, so
// only requests stopped by a guard may be served.
func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "router-test-secret-that-is-long-enough",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "event-saas-test",
		MaxRefreshCount:        3,
	})
	engine := gin.New()
	SetupAPI(engine, Handlers{
		Auth:      handler.NewAuthHandler(nil),
		Event:     handler.NewEventHandler(nil),
		Budget:    handler.NewBudgetHandler(nil),
		Guest:     handler.NewGuestHandler(nil),
		Vendor:    handler.NewVendorHandler(nil),
		Analytics: handler.NewAnalyticsHandler(nil),
		Settings:  handler.NewSettingsHandler(nil),
		Billing:   handler.NewBillingHandler(nil, nil, nil),
		Admin:     handler.NewAdminHandler(nil, nil),
		WhatsApp:  handler.NewWhatsAppHandler(nil),
		System:    handler.NewSystemHandler("event-saas-api", "test", nil, nil),
	}, Guards{
		Authenticate: []gin.HandlerFunc{middleware.JWTAuth(middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: auth.NewInMemoryTokenBlacklist(),
		})},
	})
	return &apiFixture{engine: engine, jwt: jwtService}
}

func (f *apiFixture) token(t *testing.T, staff bool) string {
	t.Helper()
	pair, err := f.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:  uuid.New(),
		Email:   "planner@example.com",
		IsStaff: staff,
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func TestSetupAPI_RegistersRouteTable(t *testing.T) {
	f := newAPIFixture(t)

	registered := map[string]bool{}
	for _, route := range f.engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /health",
		"GET /health/ready",
		"GET /api/v1/ping",
		"GET /api/v1/system/info",
		"POST /api/v1/auth/signup",
		"POST /api/v1/auth/signin",
		"POST /api/v1/auth/refresh",
		"POST /api/v1/auth/logout",
		"GET /api/v1/auth/profile",
		"PUT /api/v1/auth/profile",
		"POST /api/v1/auth/change-password",
		"GET /api/v1/events/",
		"POST /api/v1/events/",
		"GET /api/v1/events/:id",
		"PUT /api/v1/events/:id",
		"DELETE /api/v1/events/:id",
		"GET /api/v1/budget/",
		"DELETE /api/v1/budget/:id",
		"GET /api/v1/guests/",
		"PUT /api/v1/guests/:id",
		"GET /api/v1/vendors/",
		"POST /api/v1/vendors/",
		"GET /api/v1/analytics/event/:event_id",
		"GET /api/v1/analytics/overall",
		"GET /api/v1/settings/",
		"PUT /api/v1/settings/",
		"GET /api/v1/whatsapp/events/:event_id/contacts",
		"POST /api/v1/whatsapp/events/:event_id/group",
		"GET /api/v1/billing/plans/",
		"GET /api/v1/billing/subscription",
		"POST /api/v1/billing/request",
		"GET /api/v1/billing/requests",
		"GET /api/v1/billing/requests/:id",
		"POST /api/v1/billing/cancel",
		"GET /api/v1/billing/history",
		"POST /api/v1/billing/proof-upload",
		"GET /api/v1/admin/payments/",
		"POST /api/v1/admin/payments/:id/verify",
		"POST /api/v1/admin/payments/:id/approve",
		"POST /api/v1/admin/payments/:id/reject",
		"POST /api/v1/admin/plans",
		"PUT /api/v1/admin/plans/:id",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

func TestSetupAPI_ProtectedRoutesNeedToken(t *testing.T) {
	f := newAPIFixture(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/events/"},
		{http.MethodGet, "/api/v1/auth/profile"},
		{http.MethodPost, "/api/v1/auth/logout"},
		{http.MethodGet, "/api/v1/analytics/overall"},
		{http.MethodGet, "/api/v1/billing/subscription"},
		{http.MethodGet, "/api/v1/settings/"},
		{http.MethodGet, "/api/v1/admin/payments/"},
	} {
		w := serve(f.engine, route.method, route.path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestSetupAPI_AdminRoutesNeedStaff(t *testing.T) {
	f := newAPIFixture(t)

	w := serve(f.engine, http.MethodGet, "/api/v1/admin/payments/", f.token(t, false))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(f.engine, http.MethodPost, "/api/v1/admin/payments/"+uuid.NewString()+"/approve", f.token(t, false))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSetupAPI_PublicRoutes(t *testing.T) {
	f := newAPIFixture(t)

	assert.Equal(t, http.StatusOK, serve(f.engine, http.MethodGet, "/api/v1/ping", "").Code)
	assert.Equal(t, http.StatusOK, serve(f.engine, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, serve(f.engine, http.MethodGet, "/api/v1/system/info", "").Code)
}
