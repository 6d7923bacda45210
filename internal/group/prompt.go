package group

import (
	"fmt"
	"strings"
)

// BuildPrompt constructs the classification prompt for one tab. Title and
// URL must already be sanitized by the caller.
func BuildPrompt(title, url string, existing []ExistingGroup) string {
	var b strings.Builder

	b.WriteString("You are organizing browser tabs into named, colored groups.\n\n")
	fmt.Fprintf(&b, "Tab title: %s\n", title)
	fmt.Fprintf(&b, "Tab URL: %s\n\n", url)

	if len(existing) > 0 {
		b.WriteString("Existing groups in this window:\n")
		for _, g := range existing {
			fmt.Fprintf(&b, "  - %s (%s)\n", g.Name, g.Color)
		}
		b.WriteString("If the tab fits an existing group, reuse that group's name verbatim.\n\n")
	}

	fmt.Fprintf(&b, "Valid colors: %s\n\n", strings.Join(Palette, ", "))

	b.WriteString("Respond with ONLY a minimal JSON object, no markdown, no explanation:\n")
	b.WriteString(`{"groupName": "short group name", "color": "one valid color"}`)
	b.WriteString("\n")

	return b.String()
}
