// File: internal/protocol/parser.go
package protocol

import (
	"strconv"
	"strings"
)

// Parse turns model free text into an ordered command sequence. One command
// per line; blank lines and #-comments are skipped; the first token selects
// the kind case-insensitively. Malformed or unrecognized lines contribute
// nothing — model output must never abort a cycle, so Parse cannot fail.
func Parse(text string) []Command {
	var commands []Command
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		keyword, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch strings.ToUpper(keyword) {
		case "CLICK":
			if nums, ok := numericTokens(rest, 2); ok {
				commands = append(commands, Click{X: nums[0], Y: nums[1]})
			}
		case "DRAG":
			if nums, ok := numericTokens(rest, 4); ok {
				commands = append(commands, Drag{X1: nums[0], Y1: nums[1], X2: nums[2], Y2: nums[3]})
			}
		case "TYPE":
			commands = append(commands, TypeText{Text: rest})
		case "KEY":
			if fields := strings.Fields(rest); len(fields) > 0 {
				commands = append(commands, KeyPress{Name: strings.ToLower(fields[0])})
			}
		case "PYTHON_EXECUTE":
			commands = append(commands, Calculate{Code: rest})
		case "WAIT":
			if nums, ok := numericTokens(rest, 1); ok {
				commands = append(commands, Wait{Millis: nums[0]})
			}
		}
	}
	return commands
}

// numericTokens extracts exactly n leading numeric tokens from the argument
// string. Fractional values are truncated toward zero, matching how models
// tend to emit coordinates like "500.0".
func numericTokens(args string, n int) ([]int, bool) {
	fields := strings.Fields(args)
	if len(fields) < n {
		return nil, false
	}
	nums := make([]int, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, false
		}
		nums[i] = int(f)
	}
	return nums, true
}
