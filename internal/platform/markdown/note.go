package markdown

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	delimiter = []byte("---\n")

	ErrNoFrontmatter = errors.New("note has no frontmatter")
)

// Render writes meta as a YAML header followed by body. Struct field order
// is preserved, so pass a struct when key order matters.
func Render(meta any, body string) ([]byte, error) {
	header, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshal frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.Write(delimiter)
	buf.Write(header)
	buf.Write(delimiter)
	if len(body) > 0 && body[0] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString(body)
	return buf.Bytes(), nil
}

// Parse decodes the YAML header of content into meta and returns the body.
// Content without a header yields ErrNoFrontmatter and the whole content as
// body.
func Parse(content []byte, meta any) (string, error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	rest, ok := bytes.CutPrefix(content, delimiter)
	if !ok {
		return string(content), ErrNoFrontmatter
	}
	header, body, found := bytes.Cut(rest, append([]byte("\n"), delimiter...))
	if !found {
		return "", fmt.Errorf("frontmatter is not closed")
	}
	if err := yaml.Unmarshal(header, meta); err != nil {
		return "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return string(bytes.TrimPrefix(body, []byte("\n"))), nil
}
