// Package service contains the application use cases. PackService validates
// input, runs the generator, extracts articles from URLs and persists packs
// through the repository interfaces defined in internal/store, applying the
// retention rule inside a transaction.
//
// Service methods return sentinel errors for expected conditions (too short
// input, missing pack) and wrap everything else in PackServiceError; the API
// layer maps both to HTTP status codes.
package service
