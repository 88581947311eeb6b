package repository

import (
	"strconv"
	"strings"
)

// spans_shift_ids is stored as a comma separated text column; it is tiny
// (a flexible shift spans a handful of templates at most).

func int64Array(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func parseInt64Array(raw []byte) []int64 {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
