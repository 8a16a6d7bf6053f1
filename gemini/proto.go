package gemini

// Wire types of the generateContent REST endpoint. Every field on the
// response side is a pointer or slice so a missing field can be told apart
// from an empty one.

type Content struct {
	Role  string  `json:"role,omitempty"`
	Parts []*Part `json:"parts"`
}

type Part struct {
	Text *string `json:"text,omitempty"`
}

type GenerationConfig struct {
	ResponseMIMEType string `json:"response_mime_type,omitempty"`
}

type GenerateContentRequest struct {
	Contents         []*Content        `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

type GenerateContentResponse struct {
	Candidates []*Candidate `json:"candidates"`
}

type Candidate struct {
	Content *Content `json:"content"`
}

func newRequest(prompt string) *GenerateContentRequest {
	return &GenerateContentRequest{
		Contents: []*Content{
			{
				Parts: []*Part{
					{Text: &prompt},
				},
			},
		},
		GenerationConfig: &GenerationConfig{
			ResponseMIMEType: "application/json",
		},
	}
}

// FirstText returns candidates[0].content.parts[0].text.
func (r *GenerateContentResponse) FirstText() (string, error) {
	if r == nil || len(r.Candidates) == 0 || r.Candidates[0] == nil {
		return "", ErrMissingCandidates
	}
	content := r.Candidates[0].Content
	if content == nil {
		return "", ErrMissingContent
	}
	if len(content.Parts) == 0 || content.Parts[0] == nil {
		return "", ErrMissingParts
	}
	if content.Parts[0].Text == nil {
		return "", ErrMissingText
	}
	return *content.Parts[0].Text, nil
}
