package server

// Server runs every configured transport.
type Server interface {
	// RunServer serves until a shutdown signal arrives or a transport fails.
	RunServer()

	// Shutdown stops all transports; calling it again does nothing.
	Shutdown()
}
