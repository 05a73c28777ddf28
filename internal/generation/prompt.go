package generation

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompt.tmpl
var promptSource string

var promptTemplate = template.Must(template.New("prompt").Parse(promptSource))

// BuildPrompt renders the provider prompt for req.
func BuildPrompt(req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	data := Request{
		Topic:    strings.TrimSpace(req.Topic),
		AgeRange: strings.TrimSpace(req.AgeRange),
		Count:    req.Count,
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}
