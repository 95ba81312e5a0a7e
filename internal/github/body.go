package github

import "strings"

// Markers delimiting the stack section of a PR body
const (
	StackSectionStart = "<!-- Stacky Stack Info -->"
	StackSectionEnd   = "<!-- End Stacky Stack Info -->"
)

// ReplaceStackSection returns body with its stack section set to section.
// An existing section is replaced in place; otherwise it is appended.
func ReplaceStackSection(body, section string) string {
	block := StackSectionStart + "\n" + strings.TrimRight(section, "\n") + "\n" + StackSectionEnd

	start := strings.Index(body, StackSectionStart)
	if start >= 0 {
		if end := strings.Index(body[start:], StackSectionEnd); end >= 0 {
			end += start + len(StackSectionEnd)
			return body[:start] + block + body[end:]
		}
	}

	body = strings.TrimRight(body, "\n")
	if body == "" {
		return block
	}
	return body + "\n\n" + block
}
