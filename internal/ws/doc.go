// Package ws implements the WebSocket hub for the task service.
//
// Hub manages a set of connected clients and fans out task mutation events
// to all of them as they happen. Delivery is best-effort: there is no
// acknowledgment, no replay for late joiners, and a client whose outgoing
// buffer is full is disconnected.
//
// New() creates a Hub.
// Hub.Run(ctx) blocks until ctx is cancelled, then closes all connections.
// Hub.ServeHTTP upgrades an HTTP connection to WebSocket.
// Hub.Publish(event, data) broadcasts one event to every connected client.
//
// Message format sent to clients:
//
//	{
//	  "event": "taskCreated" | "taskUpdated" | "taskDeleted",
//	  "data":  { /* event payload */ }
//	}
//
// No client-to-server messages are consumed; the read side only services
// control frames. The upgrader accepts all origins — apply CORS restrictions
// at the reverse proxy level. The hub is mounted at /ws by the server.
package ws
