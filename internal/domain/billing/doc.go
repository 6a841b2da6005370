// Package billing models the manual subscription workflow.
//
// A user submits a PaymentRequest claiming payment for a Plan. Staff review it:
// approval activates the user's single UserSubscription and appends an
// immutable PaymentHistory entry; rejection only records the decision.
//
// Key Aggregates:
//   - Plan: priced catalog tier with declared resource limits
//   - PaymentRequest: pending -> submitted -> (verified) -> approved | rejected
//   - UserSubscription: one row per user, updated in place on every approval
//   - PaymentHistory: append-only ledger, one entry per approved request
package billing
