package transcripts

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// DefaultFetchLimit is the page size CollectMessages uses when given zero.
const DefaultFetchLimit = 100

// ErrInvalidFetchLimit is returned by CollectMessages for a negative page size.
var ErrInvalidFetchLimit = errors.New("fetch page size must not be negative")

// MessageSource supplies chat history page by page.
//
// FetchMessages returns up to limit messages starting at cursor ("" for the
// first page) and the cursor of the next page. An empty next cursor marks
// the last page. Order within and across pages is not significant; the
// renderer sorts the full set.
type MessageSource interface {
	FetchMessages(ctx context.Context, cursor string, limit int) (msgs []Message, next string, err error)
}

// CollectMessages drains src into a single slice. The full set must be
// materialized before rendering, since ordering is decided over all messages.
func CollectMessages(ctx context.Context, src MessageSource, pageSize int) ([]Message, error) {
	if pageSize < 0 {
		return nil, ErrInvalidFetchLimit
	}
	if pageSize == 0 {
		pageSize = DefaultFetchLimit
	}

	var (
		all    []Message
		cursor string
		seen   = make(map[string]struct{})
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, next, err := src.FetchMessages(ctx, cursor, pageSize)
		if err != nil {
			return nil, fmt.Errorf("fetching messages (cursor %q): %w", cursor, err)
		}
		all = append(all, page...)

		if next == "" {
			return all, nil
		}
		if _, loop := seen[next]; loop || next == cursor {
			return nil, fmt.Errorf("fetching messages: cursor %q repeated", next)
		}
		seen[next] = struct{}{}
		cursor = next
	}
}

// SliceSource serves an in-memory message slice in pages. Cursors are
// decimal offsets.
type SliceSource []Message

// FetchMessages implements MessageSource.
func (s SliceSource) FetchMessages(ctx context.Context, cursor string, limit int) ([]Message, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	offset := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil || n < 0 || n > len(s) {
			return nil, "", fmt.Errorf("invalid cursor %q", cursor)
		}
		offset = n
	}
	if limit <= 0 {
		limit = DefaultFetchLimit
	}

	end := min(offset+limit, len(s))
	next := ""
	if end < len(s) {
		next = strconv.Itoa(end)
	}
	return s[offset:end], next, nil
}

// Compile-time interface check.
var _ MessageSource = SliceSource(nil)
