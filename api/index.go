// Package api is the serverless entry point, exposing the same routes as the
// standalone server.
package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/zjx20/tnbus-gemini/buses"
	"github.com/zjx20/tnbus-gemini/config"
	"github.com/zjx20/tnbus-gemini/metrics"
	"github.com/zjx20/tnbus-gemini/util"
)

var (
	once    sync.Once
	handler http.Handler
)

func misconfigured(w http.ResponseWriter, r *http.Request) {
	util.ErrorEvent(w, r, http.StatusInternalServerError, "server misconfigured")
}

func setup() {
	cfg, err := config.Load()
	if err != nil {
		log.Errorf("load config: %s", err)
		handler = http.HandlerFunc(misconfigured)
		return
	}
	metrics.Register(prometheus.DefaultRegisterer)
	h, err := buses.Build(context.Background(), *cfg)
	if err != nil {
		log.Errorf("create upstream client: %s", err)
		handler = http.HandlerFunc(misconfigured)
		return
	}
	handler = h
}

func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(setup)
	handler.ServeHTTP(w, r)
}
