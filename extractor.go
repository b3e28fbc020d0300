package masteryls

import (
	"fmt"
	"strings"
)

// masterylsInfo is the fence info string that marks a quiz block
const masterylsInfo = "masteryls"

// ExtractBlocks scans markdown source for fenced code blocks tagged
// `masteryls` and returns their raw contents along with the 1-based line
// number of each opening fence. Other fenced blocks (```js, ```yaml, ...)
// are skipped wholesale so checkbox-looking lines inside them are never
// mistaken for quiz content. A masteryls fence still open at end of file
// is reported as a diagnostic against its opening line; the partial block
// is dropped. The first matching closing fence is authoritative.
func ExtractBlocks(file, source string) ([]RawBlock, []Diagnostic) {
	var (
		blocks      []RawBlock
		diags       []Diagnostic
		current     *RawBlock
		insideOther bool
	)

	lines := strings.Split(source, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if current != nil {
			if isClosingFence(trimmed) {
				blocks = append(blocks, *current)
				current = nil
				continue
			}
			current.Lines = append(current.Lines, line)
			continue
		}

		if insideOther {
			if isClosingFence(trimmed) {
				insideOther = false
			}
			continue
		}

		info, ok := fenceInfo(trimmed)
		if !ok {
			continue
		}
		if info == masterylsInfo {
			current = &RawBlock{StartLine: i + 1}
		} else {
			insideOther = true
		}
	}

	if current != nil {
		diags = append(diags, Diagnostic{
			Kind:    KindUnterminatedBlock,
			File:    file,
			Line:    current.StartLine,
			Message: fmt.Sprintf("masteryls fence opened at line %d is never closed", current.StartLine),
		})
	}

	return blocks, diags
}

// fenceInfo reports whether a trimmed line opens a fence and returns its
// info string. Info strings with extra words ("masteryls v2") do not match
// the bare tag and are treated as foreign fences.
func fenceInfo(trimmed string) (string, bool) {
	if !strings.HasPrefix(trimmed, "```") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(trimmed, "```")), true
}

// isClosingFence matches a bare closing fence line
func isClosingFence(trimmed string) bool {
	if !strings.HasPrefix(trimmed, "```") {
		return false
	}
	return strings.TrimRight(trimmed, "`") == ""
}
