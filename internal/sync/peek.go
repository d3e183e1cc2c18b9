package sync

import (
	"bufio"
	"os"
	"strings"
)

// readShortCode pulls the short_code value out of a file's frontmatter
// without a full parse, so counter recovery still sees codes in files that
// fail validation.
func readShortCode(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	inFrontmatter := false
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "---" {
			if inFrontmatter {
				return "", false
			}
			inFrontmatter = true
			continue
		}
		if !inFrontmatter {
			return "", false
		}
		if value, ok := strings.CutPrefix(line, "short_code:"); ok {
			return strings.Trim(strings.TrimSpace(value), `"'`), true
		}
	}
	return "", false
}
