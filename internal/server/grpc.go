package server

import (
	"context"
	"fmt"
	"net"

	"github.com/MKhiriev/go-auth-service/internal/config"
	myGRPC "github.com/MKhiriev/go-auth-service/internal/handler/grpc"
	"github.com/MKhiriev/go-auth-service/internal/logger"

	"google.golang.org/grpc"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server          *grpc.Server
	gRPCNetListener net.Listener

	// watchCtx scopes the health refresh loop started by RunServer;
	// stopWatch ends it.
	watchCtx  context.Context
	stopWatch context.CancelFunc

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	listener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("gRPC server listen on %q: %w", cfg.GRPCAddress, err)
	}

	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(handler.UnaryInterceptor),
		grpc.ChainStreamInterceptor(handler.StreamInterceptor),
	)
	handler.Register(server)

	watchCtx, stopWatch := context.WithCancel(context.Background())

	return &grpcServer{
		handler:         handler,
		server:          server,
		gRPCNetListener: listener,
		watchCtx:        watchCtx,
		stopWatch:       stopWatch,
		logger:          logger,
	}, nil
}

// Addr returns the bound address, useful when listening on port 0.
func (g *grpcServer) Addr() string {
	return g.gRPCNetListener.Addr().String()
}

func (g *grpcServer) RunServer() {
	go g.handler.Watch(g.watchCtx)

	if err := g.server.Serve(g.gRPCNetListener); err != nil {
		g.logger.Error().Err(err).Msg("gRPC server Serve")
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.handler.Shutdown()
	g.stopWatch()
	g.server.GracefulStop()
	_ = g.gRPCNetListener.Close()
}
