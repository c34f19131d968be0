// Package config loads the server configuration from the `server:` section
// of config.yaml.
//
// Config fields:
//   - HTTPPort            — port for the REST API and WebSocket hub (default 5000,
//     PORT env var takes precedence)
//   - Mongo.URIEnv        — environment variable holding the MongoDB connection
//     string (default "MONGO_URI")
//   - Mongo.Database      — database name (default "task_manager")
//   - Mongo.RetryInterval — fixed delay between connection attempts (default 5s)
//   - Notify.Webhooks     — outbound webhook targets for task mutation events
//
// Load(path) applies defaults before unmarshalling, then validates. An empty
// path returns pure defaults so the service can run from environment variables
// alone. Watch(ctx, path, onChange) hot-reloads the file on change.
package config
