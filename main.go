package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/zjx20/tnbus-gemini/buses"
	"github.com/zjx20/tnbus-gemini/config"
	"github.com/zjx20/tnbus-gemini/metrics"
)

func init() {
	log.SetLevel(config.GetLogLevel())
	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.TextFormatter{
		DisableColors:   runtime.GOOS == "windows",
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	config.AddConfigChangeCallback(func() {
		log.SetLevel(config.GetLogLevel())
	})
}

func watchReload() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGHUP)
	for range ch {
		if err := config.Reload(); err != nil {
			log.Errorf("reload config: %s", err)
			continue
		}
		log.Infof("config reloaded")
	}
}

func main() {
	config.Init()
	cfg := config.ReadConfig()

	metrics.Register(prometheus.DefaultRegisterer)

	srv, err := buses.NewReloadable(context.Background(), cfg)
	if err != nil {
		log.Fatalln(err)
	}
	log.Infof("upstream backend: %s, model: %s", cfg.Backend, cfg.Model)

	// everything but the listen address follows a reload
	config.AddConfigChangeCallback(func() {
		next := config.ReadConfig()
		if next.Listen != cfg.Listen {
			log.Warnf("listen address change to %s needs a restart, still on %s", next.Listen, cfg.Listen)
		}
		if err := srv.Reload(context.Background(), next); err != nil {
			log.Errorf("rebuild handler: %s", err)
			return
		}
		log.Infof("upstream backend: %s, model: %s", next.Backend, next.Model)
	})
	go watchReload()

	l, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		log.Fatalln(err)
	}
	log.Infof("Server listening at %s", l.Addr())
	if err = http.Serve(l, srv); err != nil {
		log.Fatalln(err)
	}
}
