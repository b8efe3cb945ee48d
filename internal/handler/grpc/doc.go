// Package grpc implements the gRPC transport of the application: the
// standard grpc.health.v1 service, kept in sync with store reachability,
// and logging interceptors that carry the caller's trace id.
package grpc
