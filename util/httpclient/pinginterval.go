package httpclient

import (
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// CustomPingInterval returns a client whose HTTP/2 connections send a ping
// after interval without reads, so a dead upstream connection is noticed
// even though requests themselves carry no timeout. Zero keeps the http2
// default (no health check).
func CustomPingInterval(interval time.Duration) (*http.Client, error) {
	t1 := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	// make http2.Transport use proxy
	t2, err := http2.ConfigureTransports(t1)
	if err != nil {
		return nil, err
	}
	if interval > 0 {
		t2.ReadIdleTimeout = interval
		t2.PingTimeout = interval / 2
	}
	return &http.Client{
		Transport: t1,
	}, nil
}
