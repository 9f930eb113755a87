package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// Encode renders meta as a YAML header above body. Struct metadata keeps
// its field order in the output.
func Encode(meta any, body string) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(fence + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	buf.WriteString(fence + "\n")
	if !strings.HasPrefix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(body)
	return buf.String(), nil
}

// Decode fills out from the YAML header and returns the body. Content
// without a header is returned whole and out is left untouched. CRLF line
// endings are accepted.
func Decode(content string, out any) (string, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, fence+"\n") {
		return content, nil
	}
	rest := content[len(fence)+1:]
	header, body, ok := cutFence(rest)
	if !ok {
		return "", fmt.Errorf("frontmatter: missing closing %q", fence)
	}
	if err := yaml.Unmarshal([]byte(header), out); err != nil {
		return "", fmt.Errorf("decode frontmatter: %w", err)
	}
	return body, nil
}

// cutFence splits at the first line that is exactly the fence. A fence on
// the final line without a trailing newline also counts.
func cutFence(s string) (string, string, bool) {
	if strings.HasPrefix(s, fence+"\n") {
		return "", s[len(fence)+1:], true
	}
	if i := strings.Index(s, "\n"+fence+"\n"); i >= 0 {
		return s[:i], s[i+len(fence)+2:], true
	}
	if strings.HasSuffix(s, "\n"+fence) {
		return strings.TrimSuffix(s, "\n"+fence), "", true
	}
	return "", "", false
}
