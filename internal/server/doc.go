// Package server binds and runs the auth API transports: the chi HTTP
// router and the gRPC health endpoint.
//
// Listeners are opened by [NewServer] so address errors surface before
// anything is served. [Server.RunServer] blocks until SIGINT, SIGTERM or
// SIGQUIT, or until one transport stops on its own; every transport is then
// shut down once.
package server
