package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Unit is one listener to run. Listener is optional; when nil the server
// listens on Server.Addr.
type Unit struct {
	Name     string
	Server   *http.Server
	Listener net.Listener
}

type Runner struct {
	Log             zerolog.Logger
	ShutdownTimeout time.Duration
}

// Run serves every unit until ctx is done or one of them fails, then shuts
// all of them down. It returns the first serve error, if any.
func (r *Runner) Run(ctx context.Context, units ...Unit) error {
	if len(units) == 0 {
		return errors.New("no servers to run")
	}

	for i := range units {
		if units[i].Listener != nil {
			continue
		}
		ln, err := net.Listen("tcp", units[i].Server.Addr)
		if err != nil {
			closeListeners(units)
			return fmt.Errorf("listen %s on %s: %w", units[i].Name, units[i].Server.Addr, err)
		}
		units[i].Listener = ln
	}

	errCh := make(chan error, len(units))
	var wg sync.WaitGroup
	for _, u := range units {
		wg.Add(1)
		go func(u Unit) {
			defer wg.Done()
			r.Log.Info().Str("server", u.Name).Str("addr", u.Listener.Addr().String()).Msg("http started")
			if err := u.Server.Serve(u.Listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("%s: %w", u.Name, err)
			}
		}(u)
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		r.Log.Error().Err(runErr).Msg("http failed")
	}

	r.Log.Info().Msg("shutdown...")
	shCtx, cancel := context.WithTimeout(context.Background(), r.shutdownTimeout())
	defer cancel()
	for _, u := range units {
		if err := u.Server.Shutdown(shCtx); err != nil {
			r.Log.Warn().Err(err).Str("server", u.Name).Msg("shutdown incomplete, closing")
			_ = u.Server.Close()
		}
	}
	wg.Wait()
	return runErr
}

func (r *Runner) shutdownTimeout() time.Duration {
	if r.ShutdownTimeout <= 0 {
		return 10 * time.Second
	}
	return r.ShutdownTimeout
}

func closeListeners(units []Unit) {
	for _, u := range units {
		if u.Listener != nil {
			_ = u.Listener.Close()
		}
	}
}
