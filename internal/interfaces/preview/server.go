// Package preview serves the generated report tree over HTTP so pages
// can be checked locally before publishing.
package preview

import (
	"fmt"
	"net"

	"github.com/nuchoate/league-archive/internal/platform/logging"
	"github.com/valyala/fasthttp"
)

type Server struct {
	addr   string
	dir    string
	logger *logging.Logger
	srv    *fasthttp.Server
}

func NewServer(addr, dir string, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}

	fs := &fasthttp.FS{
		Root:               dir,
		IndexNames:         []string{"index.html"},
		GenerateIndexPages: false,
		AcceptByteRange:    true,
	}

	return &Server{
		addr:   addr,
		dir:    dir,
		logger: logger,
		srv: &fasthttp.Server{
			Handler:          fs.NewRequestHandler(),
			Name:             "league-archive-preview",
			DisableKeepalive: false,
		},
	}
}

// ListenAndServe blocks until the listener fails or the process is
// interrupted. The preview is a foreground task, not a daemon.
func (s *Server) ListenAndServe() error {
	s.logger.Info("preview server listening", "addr", s.addr, "dir", s.dir)
	if err := s.srv.ListenAndServe(s.addr); err != nil {
		return fmt.Errorf("preview server: %w", err)
	}
	return nil
}

// Serve runs against an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("preview server listening", "addr", ln.Addr().String(), "dir", s.dir)
	if err := s.srv.Serve(ln); err != nil {
		return fmt.Errorf("preview server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown() error {
	return s.srv.Shutdown()
}
