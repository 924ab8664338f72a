package markdown

import "strings"

func blockMarkers(name string) (string, string) {
	return "<!-- learnhub:" + name + " -->", "<!-- /learnhub:" + name + " -->"
}

// UpsertBlock replaces the generated block called name inside body, or
// appends it when body has none. Text outside the markers is left alone so
// learners can keep their own notes next to generated content.
func UpsertBlock(body, name, content string) string {
	open, closing := blockMarkers(name)
	block := open + "\n" + strings.TrimRight(content, "\n") + "\n" + closing

	if start := strings.Index(body, open); start >= 0 {
		if end := strings.Index(body[start:], closing); end >= 0 {
			end += start + len(closing)
			return body[:start] + block + body[end:]
		}
	}

	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}

// Block returns the content of the generated block called name.
func Block(body, name string) (string, bool) {
	open, closing := blockMarkers(name)
	_, after, ok := strings.Cut(body, open+"\n")
	if !ok {
		return "", false
	}
	inner, _, ok := strings.Cut(after, "\n"+closing)
	return inner, ok
}
