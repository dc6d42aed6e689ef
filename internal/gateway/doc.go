// Package gateway is the HTTP front door for the support chat backend.
//
// Routes:
//
//	POST /chat/message           send a message, get the assistant reply
//	GET  /chat/history/:session  full ordered history for one session
//	GET  /chat/sessions          recent sessions, most recently active first
//	GET  /health                 liveness probe
//
// Every error body is {"error", "code"} with a stable machine code. A
// "detail" field carrying the underlying error text is added only when the
// server runs in development mode.
//
// CORS is wide open on purpose: the browser frontend is served from another
// origin and no credentials are involved.
package gateway
