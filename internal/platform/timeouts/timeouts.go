// Package timeouts defines the timeout constants shared by the web service
// and its backend connection.
package timeouts

import "time"

// GRPCDial caps the wait for the backend connection to become ready.
const GRPCDial = 2 * time.Second

// BackendRequest caps one shared backend call made by the query cache.
const BackendRequest = 5 * time.Second

// Upload caps a detached image upload, including retries by the transport.
const Upload = 2 * time.Minute

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
