// Package pagerange parses 1-based page selection expressions into page
// number lists. Supported forms: "3", "1-5", "1,3,5", "2-4,7,9-",
// "-3" (start at 1) and "5-" (end at maxPage). Results are deduplicated
// and sorted.
package pagerange

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Parsing errors.
var (
	ErrInvalidRange = errors.New("invalid page range")
	ErrOutOfRange   = errors.New("page number out of range")
)

// Parse evaluates a selection expression against a document of maxPage
// pages and returns the selected page numbers in ascending order.
func Parse(expr string, maxPage int) ([]int, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidRange)
	}

	seen := make(map[int]bool)

	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if strings.Contains(part, "-") {
			start, end, err := parseSpan(part, maxPage)
			if err != nil {
				return nil, err
			}
			for i := start; i <= end; i++ {
				seen[i] = true
			}
		} else {
			page, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid page %q", ErrInvalidRange, part)
			}
			if page < 1 || page > maxPage {
				return nil, fmt.Errorf("%w: page %d outside [1-%d]", ErrOutOfRange, page, maxPage)
			}
			seen[page] = true
		}
	}

	if len(seen) == 0 {
		return nil, fmt.Errorf("%w: no pages selected", ErrInvalidRange)
	}

	pages := make([]int, 0, len(seen))
	for page := range seen {
		pages = append(pages, page)
	}
	sort.Ints(pages)

	return pages, nil
}

// Except returns the ascending complement of pages within [1, maxPage].
func Except(pages []int, maxPage int) []int {
	selected := make(map[int]bool, len(pages))
	for _, p := range pages {
		selected[p] = true
	}

	var rest []int
	for p := 1; p <= maxPage; p++ {
		if !selected[p] {
			rest = append(rest, p)
		}
	}

	return rest
}

func parseSpan(part string, maxPage int) (int, int, error) {
	idx := strings.Index(part, "-")

	startStr := strings.TrimSpace(part[:idx])
	endStr := strings.TrimSpace(part[idx+1:])

	start, end := 1, maxPage
	var err error

	if startStr != "" {
		start, err = strconv.Atoi(startStr)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: invalid start %q", ErrInvalidRange, startStr)
		}
	}
	if endStr != "" {
		end, err = strconv.Atoi(endStr)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: invalid end %q", ErrInvalidRange, endStr)
		}
	}

	if start < 1 {
		return 0, 0, fmt.Errorf("%w: start page must be >= 1", ErrInvalidRange)
	}
	if end > maxPage {
		return 0, 0, fmt.Errorf("%w: end page %d exceeds document pages (%d)", ErrOutOfRange, end, maxPage)
	}
	if start > end {
		return 0, 0, fmt.Errorf("%w: start > end in %q", ErrInvalidRange, part)
	}

	return start, end, nil
}
