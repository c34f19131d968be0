// Package notify delivers task mutation events to configured outbound
// webhook targets (slack | teams | http).
//
// Delivery mirrors the WebSocket broadcast contract: fire-and-forget, no
// retry, no ordering guarantee across targets. Failures are logged and
// dropped so they never affect the mutation path. Targets can be swapped at
// runtime via SetWebhooks, which the server wires to config hot-reload.
package notify
