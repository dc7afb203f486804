// Package listfile parses the static list files that drive the installers:
// UTF-8 text, one identifier per line, # comments and blank lines ignored.
package listfile

import (
	"bufio"
	"os"
	"strings"
)

// Read returns the entries of the list file at path in file order.
// Leading and trailing whitespace is trimmed from every line; blank lines and
// lines whose first non-whitespace character is '#' are skipped. Duplicates
// are kept, an entry has no identity beyond its string value.
//
// A missing file is returned as the underlying os error so callers can
// distinguish "create this file" from other read failures. An existing file
// with no entries yields an empty slice and no error.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var items []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
