// Package api handles incoming HTTP requests: request decoding and
// validation, calls into the services, and response formatting. Handlers
// never expose internal error text; errors are mapped to a status code and a
// safe message by HandleAPIError.
package api
