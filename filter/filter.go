// Package filter contains phenotype text filters.
package filter

import (
	"strings"
)

const (
	blockOpen  = "{:"
	blockClose = ":}"
)

// Blocks converts block markers to indentation. {: opens and :} closes a block,
// each marker is replaced with a line break followed by one tab per open block.
// Lines containing only whitespace are removed.
func Blocks(text string) string {
	var sb strings.Builder
	level := 0
	for i := 0; i < len(text); {
		rest := text[i:]
		switch {
		case strings.HasPrefix(rest, blockOpen):
			level++
		case strings.HasPrefix(rest, blockClose):
			if level > 0 {
				level--
			}
		default:
			sb.WriteByte(text[i])
			i++
			continue
		}

		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat("\t", level))
		i += len(blockOpen)
	}

	lines := strings.Split(sb.String(), "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}
