// Package health serves the standard gRPC health-checking protocol for
// bersim-agent, using grpc_health_v1's pre-built service implementation
// rather than a hand-rolled one.
package health

import (
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the service whose status this package flips around a
// sweep's lifecycle; the empty service ("") is also kept in sync so a
// generic health probe against the server as a whole gets the same answer.
const ServiceName = "bersim.Sweep"

// Server wraps a grpc.Server registered with the health service and the
// listener it is bound to.
type Server struct {
	grpcSrv *grpc.Server
	health  *health.Server
	ln      net.Listener
}

// Listen binds addr and registers the health service, initially marked
// NOT_SERVING until the caller starts a sweep.
func Listen(addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	grpcSrv := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, hs)

	return &Server{grpcSrv: grpcSrv, health: hs, ln: ln}, nil
}

// Serve blocks, serving the health endpoint until the listener is closed.
func (s *Server) Serve() error {
	return s.grpcSrv.Serve(s.ln)
}

// SetServing flips both the named service and the whole-server status.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(ServiceName, status)
	s.health.SetServingStatus("", status)
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() {
	s.grpcSrv.GracefulStop()
}
