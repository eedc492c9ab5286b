package gerrit

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
)

// ParseReviewID extracts the review id from a review URL or a bare id.
// Both https://host/#/c/561507/ and https://host/555353/ are understood.
func ParseReviewID(line string) string {
	u, err := url.Parse(line)
	if err != nil {
		id, _, _ := strings.Cut(strings.TrimLeft(line, "/"), "/")
		return id
	}
	if u.Fragment != "" {
		id, _, _ := strings.Cut(strings.TrimLeft(u.Fragment, "/c"), "/")
		return id
	}
	id, _, _ := strings.Cut(strings.TrimLeft(u.Path, "/"), "/")
	return id
}

// ParseReviewList reads one review URL or id per line, skipping blank
// lines and lines starting with #.
func ParseReviewList(r io.Reader) ([]string, error) {
	var ids []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, ParseReviewID(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// ParseReviewLists reads review ids from each file in turn
func ParseReviewLists(filenames ...string) ([]string, error) {
	var ids []string
	for _, filename := range filenames {
		f, err := os.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to open review list: %w", err)
		}
		fileIDs, err := ParseReviewList(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read review list %s: %w", filename, err)
		}
		ids = append(ids, fileIDs...)
	}
	return ids, nil
}
