// Package app wires the application together: configuration, logging,
// services, the websocket hub, the Chi router and the HTTP server with
// graceful shutdown.
package app
