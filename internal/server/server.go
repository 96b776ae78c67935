// Package server is the connection acceptor spec.md §1 calls an
// external collaborator: a net.Listener loop that spawns one goroutine
// per client connection (grounded on original_source/engine.cpp's
// Engine::accept/connection_thread, and on the teacher's
// cmd/server/main.go goroutine + sync.WaitGroup shutdown idiom).
package server

import (
	"bufio"
	"context"
	"net"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"matchcore/internal/book"
	"matchcore/internal/dispatch"
	"matchcore/internal/logging"
	"matchcore/internal/protocol"
)

type Server struct {
	dispatcher *dispatch.Dispatcher
	logger     *logging.Logger
}

func New(d *dispatch.Dispatcher, logger *logging.Logger) *Server {
	return &Server{dispatcher: d, logger: logger}
}

// Serve accepts connections on ln until ctx is cancelled, at which
// point it stops accepting, closes ln, and waits for every in-flight
// connection's goroutine to finish before returning.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	var wg sync.WaitGroup

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				wg.Wait()
				return nil
			default:
				return err
			}
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handleConn(ctx, conn)
		}()
	}
}

// handleConn reads newline-delimited commands from one client until
// EOF, dispatching each. ctx is checked after each line is read, so a
// cancellation stops the loop at the next line; a read already blocked
// waiting for input is not interrupted by it. Egress events are never
// written back on this connection — per spec.md §6 the event stream
// is process-wide, not per-client, and is owned entirely by the
// Emitter wired into the Dispatcher.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	connID := uuid.NewString()
	connCtx := logging.WithConnID(ctx, connID)

	defer func() {
		if r := recover(); r != nil {
			if iv, ok := r.(*book.InvariantViolation); ok {
				// A core invariant is broken; state is already
				// inconsistent and there is no correct way to keep
				// serving traffic (spec.md §7). Escalate past this
				// connection's goroutine.
				panic(iv)
			}
			s.logger.Error(connCtx, "server.connection_panic_recovered", zap.Any("panic", r))
		}
	}()

	s.logger.Info(connCtx, "server.connection_opened")

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, err := protocol.ParseCommand(line)
		if err != nil {
			s.logger.Warn(connCtx, "server.malformed_command", zap.String("line", line), zap.Error(err))
			continue
		}

		s.dispatcher.HandleCommand(connCtx, cmd)
	}

	if err := scanner.Err(); err != nil {
		s.logger.Warn(connCtx, "server.read_error", zap.Error(err))
	}
	s.logger.Info(connCtx, "server.connection_closed")
}
