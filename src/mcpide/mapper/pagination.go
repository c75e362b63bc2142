package mapper

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

// CursorToOffset decodes an opaque list cursor. The empty cursor is the first page.
func CursorToOffset(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, wrapErrInvalidParams(fmt.Errorf("invalid cursor %q", cursor))
	}
	offset, err := strconv.Atoi(string(raw))
	if err != nil || offset < 0 {
		return 0, wrapErrInvalidParams(fmt.Errorf("invalid cursor %q", cursor))
	}
	return offset, nil
}

// OffsetToCursor encodes the start of the next page.
func OffsetToCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

// Page returns the bounds of the page starting at offset, and the cursor of the next page if there is one.
func Page(total, offset, pageSize int) (start, end int, next string) {
	if offset > total {
		offset = total
	}
	end = total
	if pageSize > 0 && offset+pageSize < total {
		end = offset + pageSize
		next = OffsetToCursor(end)
	}
	return offset, end, next
}
