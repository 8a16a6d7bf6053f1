package gemini

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestFirstSDKText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"routes":[]}`), genai.Text("ignored")}},
		}},
	}
	text, err := firstSDKText(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"routes":[]}`, text)

	cases := []struct {
		name string
		resp *genai.GenerateContentResponse
		want error
	}{
		{"nil", nil, ErrMissingCandidates},
		{"no candidates", &genai.GenerateContentResponse{}, ErrMissingCandidates},
		{"no content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, ErrMissingContent},
		{"no parts", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}}, ErrMissingParts},
		{"blob part", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}},
		}}}, ErrMissingText},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := firstSDKText(tc.resp)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestClassifySDKError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		kind   Kind
		status int
	}{
		{"blocked", &genai.BlockedError{}, MalformedResponse, 0},
		{"wrapped blocked", fmt.Errorf("generate: %w", &genai.BlockedError{}), MalformedResponse, 0},
		{"invalid argument", status.Error(codes.InvalidArgument, "bad key"), UpstreamStatusError, int(codes.InvalidArgument)},
		{"permission denied", status.Error(codes.PermissionDenied, "no"), UpstreamStatusError, int(codes.PermissionDenied)},
		{"quota", status.Error(codes.ResourceExhausted, "quota"), UpstreamStatusError, int(codes.ResourceExhausted)},
		{"internal", status.Error(codes.Internal, "oops"), UpstreamStatusError, int(codes.Internal)},
		{"unavailable", status.Error(codes.Unavailable, "conn refused"), NetworkFailure, 0},
		{"deadline", status.Error(codes.DeadlineExceeded, "slow"), NetworkFailure, 0},
		{"canceled", status.Error(codes.Canceled, "gone"), NetworkFailure, 0},
		{"unknown", status.Error(codes.Unknown, "?"), NetworkFailure, 0},
		{"plain", errors.New("dial tcp: no route to host"), NetworkFailure, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := classifySDKError(tc.err)
			assert.Equal(t, tc.kind, e.Kind)
			assert.Equal(t, tc.status, e.Status)
			assert.ErrorIs(t, e, tc.err)
			assert.Equal(t, tc.kind, KindOf(e))
		})
	}
}
