package narrative

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
)

// CleanMarkdown strips an outer code fence the model sometimes wraps its answer in.
func CleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)

	for _, fence := range []string{"```markdown", "```json", "```"} {
		if strings.HasPrefix(cleaned, fence) && strings.HasSuffix(cleaned, "```") && len(cleaned) >= len(fence)+3 {
			cleaned = strings.TrimSuffix(strings.TrimPrefix(cleaned, fence), "```")
			return strings.TrimSpace(cleaned)
		}
	}

	return cleaned
}

// RenderHTML converts the narrative markdown for display. Raw HTML in the
// source is not passed through.
func RenderHTML(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return ""
	}
	return buf.String()
}
