package config

import "time"

const (
	DefaultHTTPPort          = "8000"
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultUpstreamTimeout   = 10 * time.Second
	DefaultPersistTimeout    = 5 * time.Second
	DefaultPGMaxConns        = 5
	DefaultPGMinConns        = 1
)
