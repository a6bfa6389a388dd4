package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseURLList reads one URL per line, skipping blanks, # comments and
// duplicates. CSV lines keep their last column.
func ParseURLList(r io.Reader) ([]string, error) {
	var urls []string
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, ",") {
			parts := strings.Split(line, ",")
			line = strings.TrimSpace(parts[len(parts)-1])
		}
		if line == "" {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}

// ReadURLList reads a URL list file
func ReadURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open url list: %w", err)
	}
	defer f.Close()
	return ParseURLList(f)
}
