package markdown

import "strings"

// UpdateSection replaces or appends content under the named H2 heading in a
// document body. A missing section is added at the end. The heading argument
// is given without the "## " marker.
func UpdateSection(body, heading, content string, appendMode bool) string {
	lines := strings.Split(body, "\n")
	target := "## " + heading

	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == target {
			start = i
			break
		}
	}

	if start < 0 {
		var out []string
		out = append(out, lines...)
		if len(out) > 0 && strings.TrimSpace(out[len(out)-1]) != "" {
			out = append(out, "")
		}
		out = append(out, target)
		if strings.TrimSpace(content) != "" {
			out = append(out, "")
			out = append(out, strings.Split(content, "\n")...)
		}
		return strings.Join(out, "\n")
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "## ") {
			end = i
			break
		}
	}

	var out []string
	out = append(out, lines[:start+1]...)
	if appendMode {
		out = append(out, lines[start+1:end]...)
		if strings.TrimSpace(content) != "" {
			if end > start+1 {
				out = append(out, "")
			}
			out = append(out, strings.Split(content, "\n")...)
		}
	} else if strings.TrimSpace(content) != "" {
		out = append(out, "")
		out = append(out, strings.Split(content, "\n")...)
	}
	if end < len(lines) {
		out = append(out, "")
		out = append(out, lines[end:]...)
	}
	return strings.Join(out, "\n")
}
