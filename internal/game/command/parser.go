package command

import "strings"

// ParseResult holds the parsed command name and arguments from a text line.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining words after the command.
	Args []string
}

// Parse splits a text line into a command and arguments.
//
// Postcondition: Returns a ParseResult. If line is empty, Command is empty.
func Parse(line string) ParseResult {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ParseResult{}
	}
	res := ParseResult{Command: strings.ToLower(fields[0])}
	if len(fields) > 1 {
		res.Args = fields[1:]
	}
	return res
}

// NormalizeKey turns a terminal key name into a command line. The space bar
// becomes "space" and a digit 1-9 becomes "slot <digit>"; anything else is
// lowercased.
func NormalizeKey(key string) string {
	if key == " " {
		return "space"
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return "slot " + key
	}
	return strings.ToLower(strings.TrimSpace(key))
}
