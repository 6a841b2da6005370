package router

import (
	"github.com/gin-gonic/gin"
	"github.com/m3shovon/Event-SaaS-Platform/internal/interfaces/http/handler"
	"github.com/m3shovon/Event-SaaS-Platform/internal/interfaces/http/middleware"
)

// Handlers are the HTTP handlers served by the API
type Handlers struct {
	Auth      *handler.AuthHandler
	Event     *handler.EventHandler
	Budget    *handler.BudgetHandler
	Guest     *handler.GuestHandler
	Vendor    *handler.VendorHandler
	Analytics *handler.AnalyticsHandler
	Settings  *handler.SettingsHandler
	Billing   *handler.BillingHandler
	Admin     *handler.AdminHandler
	WhatsApp  *handler.WhatsAppHandler
	System    *handler.SystemHandler
}

// Guards are the middleware that protect route groups
type Guards struct {
	// Authenticate runs before every route that needs a caller, usually
	// JWTAuth followed by span tagging
	Authenticate []gin.HandlerFunc
	// Credentials optionally throttles signup, signin and refresh
	Credentials gin.HandlerFunc
}

// SetupAPI mounts the health probes and every /api/v1 route on the engine
func SetupAPI(engine *gin.Engine, h Handlers, g Guards) *Router {
	engine.GET("/health", h.System.Health)
	engine.GET("/health/ready", h.System.Ready)

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Register(
		systemRoutes(h),
		authRoutes(h, g),
		planningRoutes(h, g),
		billingRoutes(h, g),
		adminRoutes(h, g),
	)
	r.Setup()
	return r
}

func systemRoutes(h Handlers) *DomainGroup {
	system := NewDomainGroup("system", "")
	system.GET("/ping", h.System.Ping).
		GET("/system/info", h.System.Info)
	return system
}

func authRoutes(h Handlers, g Guards) *DomainGroup {
	auth := NewDomainGroup("auth", "/auth")
	auth.POST("/signup", withGuard(g.Credentials, h.Auth.Signup)...).
		POST("/signin", withGuard(g.Credentials, h.Auth.Signin)...).
		POST("/refresh", withGuard(g.Credentials, h.Auth.Refresh)...)

	session := auth.Group("session", "").Use(g.Authenticate...)
	session.POST("/logout", h.Auth.Logout).
		GET("/profile", h.Auth.GetProfile).
		PUT("/profile", h.Auth.UpdateProfile).
		POST("/change-password", h.Auth.ChangePassword)
	return auth
}

func planningRoutes(h Handlers, g Guards) *DomainGroup {
	planning := NewDomainGroup("planning", "").Use(g.Authenticate...)

	planning.Group("events", "/events").
		GET("/", h.Event.List).
		POST("/", h.Event.Create).
		GET("/:id", h.Event.Get).
		PUT("/:id", h.Event.Update).
		DELETE("/:id", h.Event.Delete)

	planning.Group("budget", "/budget").
		GET("/", h.Budget.List).
		POST("/", h.Budget.Create).
		GET("/:id", h.Budget.Get).
		PUT("/:id", h.Budget.Update).
		DELETE("/:id", h.Budget.Delete)

	planning.Group("guests", "/guests").
		GET("/", h.Guest.List).
		POST("/", h.Guest.Create).
		GET("/:id", h.Guest.Get).
		PUT("/:id", h.Guest.Update).
		DELETE("/:id", h.Guest.Delete)

	planning.Group("vendors", "/vendors").
		GET("/", h.Vendor.List).
		POST("/", h.Vendor.Create).
		GET("/:id", h.Vendor.Get).
		PUT("/:id", h.Vendor.Update).
		DELETE("/:id", h.Vendor.Delete)

	planning.Group("analytics", "/analytics").
		GET("/event/:event_id", h.Analytics.Event).
		GET("/overall", h.Analytics.Overall)

	planning.Group("settings", "/settings").
		GET("/", h.Settings.Get).
		PUT("/", h.Settings.Update)

	planning.Group("whatsapp", "/whatsapp/events/:event_id").
		GET("/contacts", h.WhatsApp.Contacts).
		POST("/group", h.WhatsApp.CreateGroup)

	return planning
}

func billingRoutes(h Handlers, g Guards) *DomainGroup {
	billing := NewDomainGroup("billing", "/billing")
	billing.GET("/plans/", h.Billing.ListPlans)

	account := billing.Group("account", "").Use(g.Authenticate...)
	account.GET("/subscription", h.Billing.Subscription).
		POST("/request", h.Billing.SubmitRequest).
		GET("/requests", h.Billing.ListRequests).
		GET("/requests/:id", h.Billing.GetRequest).
		POST("/cancel", h.Billing.Cancel).
		GET("/history", h.Billing.History).
		POST("/proof-upload", h.Billing.ProofUpload)
	return billing
}

func adminRoutes(h Handlers, g Guards) *DomainGroup {
	admin := NewDomainGroup("admin", "/admin").
		Use(g.Authenticate...).
		Use(middleware.RequireStaff())

	admin.Group("payments", "/payments").
		GET("/", h.Admin.ListPayments).
		POST("/:id/verify", h.Admin.VerifyPayment).
		POST("/:id/approve", h.Admin.ApprovePayment).
		POST("/:id/reject", h.Admin.RejectPayment)

	admin.Group("plans", "/plans").
		POST("", h.Admin.CreatePlan).
		PUT("/:id", h.Admin.UpdatePlan)
	return admin
}

// withGuard prepends guard when it is set
func withGuard(guard gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	if guard == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{guard, h}
}
