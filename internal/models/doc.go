// Package models defines the core domain models for splitledger.
//
// # Ledger Facts
//
// The ledger is built from two kinds of immutable facts:
//   - Expense: one payment made by one user for a total amount
//   - Split: one user's obligation toward one Expense
//
// Facts are appended once and never updated. Balances are derived from the
// full set of facts on every read; nothing derived is stored.
//
// # Users
//
// User is the identity every fact refers to. Expense.PaidBy and Split.UserID
// hold user IDs rather than pointers so that models stay free of cycles and
// storage backends can load them independently.
//
// # Money
//
// All amounts are decimal.Decimal. Values are only rounded to two places
// when they leave the system (see calculator.Round).
package models
