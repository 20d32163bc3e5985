// Package document normalizes inbound legal documents before analysis and
// assigns their identifiers.
package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

var md = goldmark.New()

// PlainText extracts readable text from a (possibly markdown-formatted)
// document so prompts carry content rather than formatting syntax. Plain
// text input passes through unchanged apart from whitespace trimming.
func PlainText(source string) string {
	src := []byte(source)
	root := md.Parser().Parse(gmtext.NewReader(src))

	var sb strings.Builder
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			switch n.(type) {
			case *ast.Paragraph, *ast.Heading, *ast.ListItem:
				sb.WriteString("\n")
			}
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return strings.TrimSpace(source)
	}
	return out
}

// NewID builds a synthetic document identifier from a timestamp and a random
// suffix. It is not guaranteed globally unique; collisions are acceptable
// for correlation purposes and the identifier carries no security weight.
func NewID(now time.Time) string {
	return fmt.Sprintf("doc_%d_%s", now.UnixMilli(), uuid.NewString()[:8])
}
