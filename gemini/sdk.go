package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/zjx20/tnbus-gemini/config"
)

type SDKConfig struct {
	APIKey    string
	ModelName string // empty for config.DefaultModel
}

// SDKClient is a Client backed by the generative-ai-go SDK.
type SDKClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewSDKClient(ctx context.Context, cfg SDKConfig) (*SDKClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	modelName := cfg.ModelName
	if modelName == "" {
		modelName = config.DefaultModel
	}
	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	return &SDKClient{client: client, model: model}, nil
}

func (c *SDKClient) Close() error {
	return c.client.Close()
}

func (c *SDKClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifySDKError(err)
	}
	text, err := firstSDKText(resp)
	if err != nil {
		return "", &Error{Kind: MalformedResponse, Err: err}
	}
	return text, nil
}

// classifySDKError maps a GenerateContent error to a Kind. Blocked prompts
// carry no usable candidate; gRPC codes that mean the call never completed
// count as network failures.
func classifySDKError(err error) *Error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return &Error{Kind: MalformedResponse, Err: err}
	}
	if s, ok := status.FromError(err); ok {
		switch s.Code() {
		case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled, codes.Unknown:
		default:
			return &Error{Kind: UpstreamStatusError, Status: int(s.Code()), Err: err}
		}
	}
	return &Error{Kind: NetworkFailure, Err: err}
}

func firstSDKText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", ErrMissingCandidates
	}
	if resp.Candidates[0].Content == nil {
		return "", ErrMissingContent
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", ErrMissingParts
	}
	text, ok := parts[0].(genai.Text)
	if !ok {
		log.Debugf("first part has type %T, want text", parts[0])
		return "", ErrMissingText
	}
	return string(text), nil
}
