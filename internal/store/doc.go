// Package store defines interfaces for study pack persistence together with
// the errors and transaction helper shared by every implementation. Business
// rules depend on these interfaces, never on a specific database.
package store
