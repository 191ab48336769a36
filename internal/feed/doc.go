// Package feed serves a running game over HTTP for external renderers.
//
// Routes:
//
//	GET  /api/state     current view as JSON
//	POST /api/start     start a game (optional {"center":..,"span":..} body)
//	POST /api/stop      end the running game
//	POST /api/viewport  move the free viewer region before a game
//	GET  /ws            websocket stream of session events
//	GET  /metrics       Prometheus metrics
//	GET  /healthz       liveness probe
package feed
