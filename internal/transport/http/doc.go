// Package http contains the HTTP transport layer: Chi routers and
// handlers exposing analysis runs, their results, health and websocket
// upgrade endpoints. Handlers validate input, delegate to the services
// layer and render JSON via go-chi/render; errors follow the shared
// APIError shape.
package http
