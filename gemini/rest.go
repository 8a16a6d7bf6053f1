package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"
)

const maxErrorBody = 4 << 10

type RESTConfig struct {
	APIKey string
	// URL of the generateContent endpoint, without the key parameter.
	URL        string
	HTTPClient *http.Client // nil for http.DefaultClient
}

// RESTClient calls generateContent over plain JSON/HTTP.
type RESTClient struct {
	endpoint string
	hc       *http.Client
}

func NewRESTClient(cfg RESTConfig) (*RESTClient, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("key", cfg.APIKey)
	u.RawQuery = q.Encode()
	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	return &RESTClient{
		endpoint: u.String(),
		hc:       hc,
	}, nil
}

func (c *RESTClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(newRequest(prompt))
	if err != nil {
		return "", &Error{Kind: NetworkFailure, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &Error{Kind: NetworkFailure, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", &Error{Kind: NetworkFailure, Err: redactKey(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Debugf("upstream status %d, body: %s", resp.StatusCode, msg)
		return "", &Error{
			Kind:   UpstreamStatusError,
			Status: resp.StatusCode,
			Err:    errors.New(strings.TrimSpace(http.StatusText(resp.StatusCode))),
		}
	}

	var out GenerateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &Error{Kind: MalformedResponse, Err: err}
	}
	text, err := out.FirstText()
	if err != nil {
		return "", &Error{Kind: MalformedResponse, Err: err}
	}
	return text, nil
}

// redactKey drops the request URL, which carries the API key, from transport
// errors so it never reaches logs or callers.
func redactKey(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
