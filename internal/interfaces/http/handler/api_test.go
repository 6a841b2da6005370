package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	analyticsapp "github.com/m3shovon/Event-SaaS-Platform/internal/application/analytics"
	billingapp "github.com/m3shovon/Event-SaaS-Platform/internal/application/billing"
	identityapp "github.com/m3shovon/Event-SaaS-Platform/internal/application/identity"
	planningapp "github.com/m3shovon/Event-SaaS-Platform/internal/application/planning"
	settingsapp "github.com/m3shovon/Event-SaaS-Platform/internal/application/settings"
	"github.com/m3shovon/Event-SaaS-Platform/internal/application/whatsapp"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/billing"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/auth"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/cache"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/config"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/persistence"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/persistence/models"
	"github.com/m3shovon/Event-SaaS-Platform/internal/interfaces/http/handler"
	"github.com/m3shovon/Event-SaaS-Platform/internal/interfaces/http/middleware"
	"github.com/m3shovon/Event-SaaS-Platform/internal/interfaces/http/router"
	"github.com/m3shovon/Event-SaaS-Platform/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// apiEnv is the whole HTTP stack on an in-memory database
type apiEnv struct {
	db     *gorm.DB
	engine *gin.Engine
}

type session struct {
	UserID  uuid.UUID
	Access  string
	Refresh string
}

type fakeProofStorage struct{}

func (fakeProofStorage) GenerateUploadURL(_ context.Context, key, _ string, expiresIn time.Duration) (string, time.Time, error) {
	return "https://proofs.example.com/" + key + "?X-Amz-Signature=test", time.Now().Add(expiresIn), nil
}

func (fakeProofStorage) ObjectURL(key string) string {
	return "https://proofs.example.com/" + key
}

type envOptions struct {
	proofStorage billingapp.ProofStorage
}

func newAPIEnv(t *testing.T, opts ...func(*envOptions)) *apiEnv {
	t.Helper()
	o := envOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	db := testutil.NewTestDB(t)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "handler-test-secret-that-is-long-enough",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "event-saas-test",
		MaxRefreshCount:        3,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	users := persistence.NewGormUserRepository(db)
	events := persistence.NewGormEventRepository(db)
	items := persistence.NewGormBudgetItemRepository(db)
	guests := persistence.NewGormGuestRepository(db)
	vendors := persistence.NewGormVendorRepository(db)
	plans := persistence.NewGormPlanRepository(db)
	txScope := persistence.NewGormTransactionScope(db)

	var paymentOpts []billingapp.PaymentServiceOption
	if o.proofStorage != nil {
		paymentOpts = append(paymentOpts, billingapp.WithProofStorage(o.proofStorage))
	}
	paymentService := billingapp.NewPaymentService(
		persistence.NewGormPaymentRequestRepository(db),
		plans,
		persistence.NewGormPaymentHistoryRepository(db),
		txScope,
		nil,
		billingapp.DefaultPaymentServiceConfig(),
		paymentOpts...,
	)
	planService := billingapp.NewPlanService(plans, cache.NewInMemoryPlanCache(), time.Minute, nil)
	subscriptionService := billingapp.NewSubscriptionService(
		persistence.NewGormSubscriptionRepository(db),
		plans,
		users,
		txScope,
		nil,
		"",
		nil,
	)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	router.SetupAPI(engine, router.Handlers{
		Auth:      handler.NewAuthHandler(identityapp.NewAuthService(users, jwtService, blacklist, nil, nil)),
		Event:     handler.NewEventHandler(planningapp.NewEventService(events, nil)),
		Budget:    handler.NewBudgetHandler(planningapp.NewBudgetService(items, events, vendors, nil)),
		Guest:     handler.NewGuestHandler(planningapp.NewGuestService(guests, events, nil)),
		Vendor:    handler.NewVendorHandler(planningapp.NewVendorService(vendors, nil)),
		Analytics: handler.NewAnalyticsHandler(analyticsapp.NewAnalyticsService(events, items, guests, vendors, nil)),
		Settings:  handler.NewSettingsHandler(settingsapp.NewSettingsService(persistence.NewGormSettingsRepository(db), nil)),
		Billing:   handler.NewBillingHandler(planService, paymentService, subscriptionService),
		Admin:     handler.NewAdminHandler(paymentService, planService),
		WhatsApp:  handler.NewWhatsAppHandler(whatsapp.NewWhatsAppService(events, guests, "", nil)),
		System: handler.NewSystemHandler("event-saas-api", "test", func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}, nil),
	}, router.Guards{
		Authenticate: []gin.HandlerFunc{middleware.JWTAuth(middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
		})},
	})

	return &apiEnv{db: db, engine: engine}
}

// do sends a JSON request; token may be empty
func (e *apiEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *apiEnv) signup(t *testing.T, email string) session {
	t.Helper()
	w := e.do(t, http.MethodPost, "/auth/signup", "", map[string]any{
		"email":            email,
		"password":         "planner123",
		"confirm_password": "planner123",
		"first_name":       "Nusrat",
		"business_name":    "Dhaka Weddings",
		"business_type":    "Wedding Planner",
		"city":             "Dhaka",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[identityapp.AuthResponse](t, w)
	return session{UserID: resp.User.ID, Access: resp.AccessToken, Refresh: resp.RefreshToken}
}

// staff promotes the user and signs in again so the token carries the flag
func (e *apiEnv) staff(t *testing.T, email string) session {
	t.Helper()
	s := e.signup(t, email)
	require.NoError(t, e.db.Model(&models.UserModel{}).Where("id = ?", s.UserID).Update("is_staff", true).Error)

	w := e.do(t, http.MethodPost, "/auth/signin", "", map[string]string{"email": email, "password": "planner123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[identityapp.AuthResponse](t, w)
	return session{UserID: resp.User.ID, Access: resp.AccessToken, Refresh: resp.RefreshToken}
}

func (e *apiEnv) seedPlan(t *testing.T, name, monthly string) *billing.Plan {
	t.Helper()
	plan, err := billing.NewPlan(billing.PlanDetails{
		Name:         name,
		DisplayName:  name,
		PriceMonthly: decimal.RequireFromString(monthly),
		PriceYearly:  decimal.RequireFromString(monthly).Mul(decimal.NewFromInt(10)),
		IsActive:     true,
	})
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormPlanRepository(e.db).Save(context.Background(), plan))
	return plan
}

func (e *apiEnv) createEvent(t *testing.T, token, name string) planningapp.EventResponse {
	t.Helper()
	w := e.do(t, http.MethodPost, "/events/", token, map[string]any{
		"name":            name,
		"category":        "wedding",
		"date":            "2030-12-20",
		"time":            "18:30",
		"venue":           "Radisson Blu",
		"budget":          "500000.00",
		"expected_guests": 200,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[planningapp.EventResponse](t, w)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// errorBody mirrors dto.ErrorResponse for assertions
type errorBody struct {
	Message   string              `json:"message"`
	Code      string              `json:"code"`
	Errors    map[string][]string `json:"errors"`
	RequestID string              `json:"request_id"`
}
