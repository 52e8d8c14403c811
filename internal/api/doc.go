// Package api handles incoming HTTP requests for the chart service:
// authentication, stateless chart computation, stored birth profiles and
// generated readings. Handlers decode and validate requests, call the
// service layer, and map service errors to status codes and sanitized
// messages with MapErrorToStatusCode and GetSafeErrorMessage.
package api
