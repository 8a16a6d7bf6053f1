package gemini

import (
	"context"

	"github.com/zjx20/tnbus-gemini/config"
	"github.com/zjx20/tnbus-gemini/util/httpclient"
)

// NewClient builds the Client selected by cfg.Backend.
func NewClient(ctx context.Context, cfg config.Config) (Client, error) {
	if cfg.Backend == config.BackendSDK {
		c, err := NewSDKClient(ctx, SDKConfig{
			APIKey:    cfg.APIKey,
			ModelName: cfg.Model,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	hc, err := httpclient.CustomPingInterval(cfg.PingInterval)
	if err != nil {
		return nil, err
	}
	c, err := NewRESTClient(RESTConfig{
		APIKey:     cfg.APIKey,
		URL:        cfg.UpstreamURL,
		HTTPClient: hc,
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
