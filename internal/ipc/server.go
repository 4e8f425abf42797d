package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/proteus-audio/proteus/internal/host"
	"github.com/proteus-audio/proteus/internal/model"
)

// ServiceName is the RPC service name.
const ServiceName = "Proteus"

// Host is the part of the orchestrator reachable over IPC.
type Host interface {
	OpenProjectFile(ctx context.Context, path string) (bool, error)
	NewWindow(ctx context.Context, project *model.Project) (host.SurfaceID, error)
	WindowCount() int
}

// Server exposes the running instance via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	logger    *zap.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer listens on the socket at path, replacing a stale socket file.
func NewServer(ctx context.Context, path string, h Host, logger *zap.Logger) (*Server, error) {
	if h == nil {
		return nil, errors.New("ipc server requires host")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("ipc")

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	rpcServer := rpc.NewServer()
	if err := rpcServer.RegisterName(ServiceName, &service{host: h, logger: logger, ctx: serverCtx}); err != nil {
		cancel()
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	return &Server{
		path:      path,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve accepts connections until Close is called or the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", zap.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				if errors.Is(err, net.ErrClosed) {
					return
				}
				s.logger.Warn("accept failed", zap.Error(err))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket", zap.String("socket", s.path), zap.Error(err))
	}
}

type service struct {
	host   Host
	logger *zap.Logger
	ctx    context.Context
}

func (s *service) OpenProject(req OpenProjectRequest, resp *OpenProjectResponse) error {
	if req.Path == "" {
		return errors.New("path is required")
	}
	opened, err := s.host.OpenProjectFile(s.ctx, req.Path)
	if err != nil {
		s.logger.Warn("forwarded open failed", zap.String("path", req.Path), zap.Error(err))
		return err
	}
	resp.Opened = opened
	return nil
}

func (s *service) NewWindow(_ NewWindowRequest, resp *NewWindowResponse) error {
	id, err := s.host.NewWindow(s.ctx, nil)
	if err != nil {
		return err
	}
	resp.Surface = string(id)
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	resp.Windows = s.host.WindowCount()
	resp.PID = os.Getpid()
	return nil
}
