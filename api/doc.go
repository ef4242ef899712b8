// Package api provides the HTTP API layer for PostSheet.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Endpoints
//
//	POST /captures              save a captured post
//	PUT  /tabs/{tabId}/pending  stage author metadata for a tab
//	GET  /notifications/{id}    resolve a save notification to its sheet link
//	GET  /records               list saved records
//	GET  /records/{hash}        look up a record by content id
//	GET  /settings              read settings
//	PUT  /settings              update sheet id and license key
//	GET  /quota                 today's AI usage for the caller
//	GET  /health                liveness
//
// The OpenAPI spec is available at /openapi.json and Swagger UI at /docs.
//
// # Middleware
//
// Requests pass through CORS, feature flag injection, client identity
// capture, request logging with request IDs, and per-IP rate limiting
// (active while the rate_limit_enabled flag is on).
//
// # Error Handling
//
// Failed saves keep the envelope the extension renders:
//
//	{
//	    "ok": false,
//	    "error": "duplicate",
//	    "category": "conflict",
//	    "message": "already saved 2 hours ago",
//	    "duplicate": {"urlHash": "...", "savedAgo": "2 hours"}
//	}
//
// Save error codes map to statuses: missing_fields and missing_sheet_id 400,
// unauthorized 401, duplicate 409, sheets_append_failed 502, network_error
// 503, internal 500. Other endpoints use Huma's RFC 7807 errors.
package api
