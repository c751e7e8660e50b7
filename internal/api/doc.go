// Package api exposes the study pack service over HTTP. Handlers decode and
// validate JSON requests, call service.PackService and translate its errors
// into status codes and safe messages; internal error text is only logged.
package api
