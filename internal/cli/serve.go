package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/rpda"
	"github.com/aretw0/rpda/internal/observability"
	"github.com/aretw0/rpda/pkg/adapters/file"
	httpAdapter "github.com/aretw0/rpda/pkg/adapters/http"
	"github.com/aretw0/rpda/pkg/adapters/memory"
	"github.com/aretw0/rpda/pkg/adapters/redis"
	"github.com/aretw0/rpda/pkg/ports"
	"github.com/aretw0/rpda/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ServeOptions configures the HTTP server.
type ServeOptions struct {
	Port       string
	RedisAddr  string
	StoreDir   string
	SessionTTL time.Duration
}

// Server bundles the handler with the resources it owns.
type Server struct {
	Handler http.Handler
	Metrics *observability.Metrics
	close   func() error
}

// Close releases the session store.
func (s *Server) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// NewServer wires the session store, metrics and routes for m.
// Sessions live in redis when RedisAddr is set, in StoreDir when that is
// set, and in memory otherwise.
// Session steps feed metrics; load m with metrics.Hooks() to count
// batch runs as well.
func NewServer(ctx context.Context, m *rpda.Machine, metrics *observability.Metrics, reg *prometheus.Registry, opts ServeOptions) (*Server, error) {
	logger := m.Logger()

	var store ports.SnapshotStore
	var locker ports.DistributedLocker
	closeFn := func() error { return nil }

	if opts.RedisAddr != "" {
		var redisOpts []redis.Option
		if opts.SessionTTL > 0 {
			redisOpts = append(redisOpts, redis.WithTTL(opts.SessionTTL))
		}
		rs := redis.New(opts.RedisAddr, "", 0, redisOpts...)
		if err := rs.Client().Ping(ctx).Err(); err != nil {
			_ = rs.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.RedisAddr, err)
		}
		store = rs
		locker = redis.NewLocker(rs.Client(), "rpda:")
		closeFn = rs.Close
		logger.Info("sessions stored in redis", "addr", opts.RedisAddr, "ttl", opts.SessionTTL)
	} else if opts.StoreDir != "" {
		store = file.New(opts.StoreDir)
		logger.Info("sessions stored on disk", "dir", opts.StoreDir)
	} else {
		store = memory.NewStore()
	}

	managerOpts := []session.Option{
		session.WithLogger(logger),
		session.WithLifecycleHooks(metrics.Hooks()),
	}
	if locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(locker))
	}
	manager := session.NewManager(store, managerOpts...)

	handler := httpAdapter.NewHandler(m, manager,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetrics(metrics, reg),
	)
	return &Server{Handler: handler, Metrics: metrics, close: closeFn}, nil
}

// NewRegistry returns a registry with the engine metrics and the Go runtime collectors.
func NewRegistry() (*prometheus.Registry, *observability.Metrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg, observability.NewMetrics(reg)
}
