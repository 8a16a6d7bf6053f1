package buses

import (
	"context"
	"net/http"
	"sync"

	"github.com/zjx20/tnbus-gemini/config"
	"github.com/zjx20/tnbus-gemini/gemini"
)

// Build creates the upstream client described by cfg and the router on top
// of it.
func Build(ctx context.Context, cfg config.Config) (http.Handler, error) {
	client, err := gemini.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewRouter(NewHandler(client), cfg.AllowedOrigins), nil
}

// Reloadable serves the router built from the latest good config. Requests
// already running keep the router they started with.
type Reloadable struct {
	mu sync.RWMutex
	h  http.Handler
}

func NewReloadable(ctx context.Context, cfg config.Config) (*Reloadable, error) {
	s := &Reloadable{}
	if err := s.Reload(ctx, cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload swaps in a router built from cfg. On error the current one stays.
func (s *Reloadable) Reload(ctx context.Context, cfg config.Config) error {
	h, err := Build(ctx, cfg)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.h = h
	s.mu.Unlock()
	return nil
}

func (s *Reloadable) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	h := s.h
	s.mu.RUnlock()
	h.ServeHTTP(w, r)
}
