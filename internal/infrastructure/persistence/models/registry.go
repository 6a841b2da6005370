package models

// All returns every persistence model, parents before children.
// Tests pass it to AutoMigrate; production uses the SQL migrations.
func All() []any {
	return []any{
		&UserModel{},
		&UserSettingsModel{},
		&EventModel{},
		&VendorModel{},
		&BudgetItemModel{},
		&GuestModel{},
		&SubscriptionPlanModel{},
		&UserSubscriptionModel{},
		&PaymentRequestModel{},
		&PaymentHistoryModel{},
	}
}
