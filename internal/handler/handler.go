// Package handler is the first layer after the router.
//
// It binds path parameters and payloads into typed requests, runs them
// through the shared pipeline in base.go, calls the service layer and
// writes the response. Every error is returned to the global error
// handler, which owns status codes and error bodies.
package handler
