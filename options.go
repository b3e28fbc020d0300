package masteryls

import "regexp"

// optionLinePattern matches "- [ ] text" and "- [x] text" list items.
// The x is case-insensitive and * is accepted as a list marker. Option
// text is free markdown and is kept verbatim.
var optionLinePattern = regexp.MustCompile(`^\s*[-*]\s*\[([ xX])\]\s*(.*)$`)

// blankLinePattern matches lines with no visible content
var blankLinePattern = regexp.MustCompile(`^\s*$`)

// ParseOptions reads answer choices from the lines following a block
// header. Blank lines between options are tolerated; the first non-blank
// line that is not a checkbox item terminates the list, anything after it
// belongs to no one and is ignored. Order of appearance is preserved,
// correctness is carried only by the checkbox flag, never by position.
func ParseOptions(lines []string) []Option {
	var options []Option
	for _, line := range lines {
		if blankLinePattern.MatchString(line) {
			continue
		}
		m := optionLinePattern.FindStringSubmatch(line)
		if m == nil {
			break
		}
		options = append(options, Option{
			Text:    m[2],
			Correct: m[1] == "x" || m[1] == "X",
		})
	}
	return options
}
