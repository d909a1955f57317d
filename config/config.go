package config

import (
	"fmt"
	"os"
	"strings"
)

// FromString parses the AWS shared configuration format into a Value tree.
//
// The format is line oriented: "[section]" lines open a top-level table,
// "key = value" lines assign within the current table, and a key assigned an
// empty value opens a sub-table that deeper-indented lines fill. Dedenting
// returns to the enclosing table. Lines outside any section, without an "=",
// or blank are skipped rather than treated as errors.
func FromString(s string) *Value {
	root := &Value{}

	type frame struct {
		indent int
		value  *Value
	}
	var stack []frame
	var last *Value

	for _, line := range splitLines(s) {
		if line[0] == '[' {
			if strings.HasSuffix(line, "]") {
				section := &Value{}
				root.setChild(strings.TrimSpace(line[1:len(line)-1]), section)
				stack = []frame{{0, section}}
				last = nil
			}
			continue
		}

		indent := strings.IndexFunc(line, func(r rune) bool { return r != ' ' })
		if indent < 0 {
			continue
		}
		for len(stack) > 0 && indent < stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			continue
		}
		if indent > stack[len(stack)-1].indent {
			if last == nil {
				continue
			}
			stack = append(stack, frame{indent, last})
			last = nil
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		child := &Value{text: strings.TrimSpace(value)}
		stack[len(stack)-1].value.setChild(strings.TrimSpace(key), child)
		last = child
	}

	return root
}

// FromFile reads and parses a shared configuration file.
func FromFile(path string) (*Value, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return FromString(string(contents)), nil
}

// splitLines splits on any run of carriage returns and line feeds, dropping
// empty lines.
func splitLines(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '\r' || r == '\n'
	})
}
