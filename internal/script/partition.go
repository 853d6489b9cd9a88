package script

import "javaxify/internal/logging"

// Partition returns the business-logic lines of text (every line not consumed
// by a binding, in original order and unmodified) and the set of consumed
// 1-based line numbers.
func Partition(text string, vars []Variable) ([]string, map[int]struct{}) {
	consumed := make(map[int]struct{}, len(vars))
	for _, v := range vars {
		consumed[v.Line] = struct{}{}
	}

	lines := Lines(text)
	body := make([]string, 0, len(lines))
	for i, line := range lines {
		if _, ok := consumed[i+1]; ok {
			continue
		}
		body = append(body, line)
	}

	logging.ExtractDebug("Partition: %d business line(s), %d consumed", len(body), len(consumed))
	return body, consumed
}
