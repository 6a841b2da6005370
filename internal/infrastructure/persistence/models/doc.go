// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// of ORM concerns.
//
// Structure:
//   - base.go: shared columns (BaseModel, AggregateModel, OwnedAggregateModel)
//   - user.go: users
//   - planning.go: events, budget_items, guests, vendors
//   - billing.go: subscription_plans, payment_requests, user_subscriptions, payment_history
//   - settings.go: user_settings
//
// Schema in production comes from migrations/; AutoMigrate is only used in tests.
package models
