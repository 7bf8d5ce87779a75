// Package server exposes one sandbox session to a render collaborator over
// websocket. Clients send canvas operations; the server applies them between
// ticks and broadcasts a derived-state frame after every tick, so the
// canvas always draws the current tick's electrical results.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/myteklab/CircuitSim/internal/core/events"
	"github.com/myteklab/CircuitSim/internal/core/events/bus"
	"github.com/myteklab/CircuitSim/internal/core/observability/log"
	"github.com/myteklab/CircuitSim/internal/core/sandbox"
)

// Server owns one sandbox session and its websocket clients. The sandbox is
// only ever touched from the run loop goroutine: client reads enqueue
// operations, the loop applies them between ticks.
type Server struct {
	config Config
	logger log.Log

	sandbox *sandbox.Sandbox

	httpServer *http.Server

	mu      sync.Mutex
	clients map[*client]struct{}
	started bool

	ops chan queuedOp

	// effects accumulate between frames; the bus handler runs on the run
	// loop goroutine because every publish originates in Tick or an applied
	// op.
	effects []events.DamageEffect
}

type queuedOp struct {
	client *client
	op     Op
}

// NewServer creates a server with a fresh sandbox session.
func NewServer(config Config) *Server {
	logger := log.New(config.Level())

	eventBus := bus.New()
	box := sandbox.New(sandbox.Options{
		HistoryLimit: config.HistoryLimit,
		Logger:       logger,
		Bus:          eventBus,
	})

	s := &Server{
		config:  config,
		logger:  logger.With(log.String("component", "server")),
		sandbox: box,
		clients: make(map[*client]struct{}),
		ops:     make(chan queuedOp, 256),
	}

	_, _ = eventBus.Subscribe(events.TypeDamageEffect, func(ev bus.Event) error {
		if effect, ok := ev.Data().(events.DamageEffect); ok {
			s.effects = append(s.effects, effect)
		}
		return nil
	})

	s.logger.Info("server created",
		log.String("listen_addr", config.ListenAddr),
		log.Int("tick_rate", config.TickRate))
	return s
}

// Start runs the HTTP listener and the tick loop until ctx is cancelled.
// A server starts at most once; a second call fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}
	s.started = true
	s.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)

	s.httpServer = &http.Server{
		Addr:    s.config.ListenAddr,
		Handler: mux,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("listening", log.String("addr", s.config.ListenAddr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return s.run(ctx)
	})

	return g.Wait()
}

// run is the cooperative scheduler: apply queued operations, tick, broadcast.
func (s *Server) run(ctx context.Context) error {
	ticker := time.NewTicker(s.config.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("tick loop stopped")
			return nil
		case q := <-s.ops:
			s.apply(q)
		case <-ticker.C:
			s.drainOps()
			s.sandbox.Tick()
			s.broadcast(s.buildFrame())
		}
	}
}

// drainOps applies every operation already queued, so mutations never
// interleave with the tick that follows.
func (s *Server) drainOps() {
	for {
		select {
		case q := <-s.ops:
			s.apply(q)
		default:
			return
		}
	}
}

func (s *Server) register(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c] = struct{}{}
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.done)
	}
}
