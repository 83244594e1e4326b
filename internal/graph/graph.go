package graph

import (
	"context"
	"encoding/base64"
	"strings"
)

// Renderer turns an expression in x into an image.
type Renderer interface {
	Render(ctx context.Context, expression string) ([]byte, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, expression string) ([]byte, error)

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, expression string) ([]byte, error) {
	return f(ctx, expression)
}

// ExtractExpression returns the text after the first "=" and before any
// following "=", trimmed. It reports false when the query has no "=" or
// that segment is blank.
//
// The split is naive: "x^2 - 4 = 0" plots the constant 0, not
// the left-hand side.
func ExtractExpression(query string) (string, bool) {
	parts := strings.Split(query, "=")
	if len(parts) < 2 {
		return "", false
	}
	expr := strings.TrimSpace(parts[1])
	return expr, expr != ""
}

// EncodeBase64 returns the standard base64 encoding of png.
func EncodeBase64(png []byte) string {
	return base64.StdEncoding.EncodeToString(png)
}
