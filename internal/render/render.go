package render

import "strings"

// Markdown renders markdown for the terminal with a pooled renderer.
// Trailing newlines added by glamour are removed so the result can be
// placed inside a bordered bubble.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	out, err := renderer.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// MarkdownOrPlain renders content, or returns it unchanged when the
// renderer fails.
func MarkdownOrPlain(content string, opts Options) string {
	out, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return out
}
