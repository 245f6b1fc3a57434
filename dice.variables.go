package dice

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// variableAssignSeparator splits NAME=VALUE assignments
const variableAssignSeparator = "="

var (
	// variableReference finds @NAME references in notation
	variableReference = regexp.MustCompile(`(?i)@([a-z_][a-z0-9_]*)`)
	// variableName is the shape of a valid variable name, without the @
	variableName = regexp.MustCompile(`(?i)^[a-z_][a-z0-9_]*$`)
)

// ExtractVariables returns the variables an expression references,
// uppercased and deduplicated in order of first appearance.
func ExtractVariables(expression string) []string {
	matches := variableReference.FindAllStringSubmatch(expression, -1)
	seen := make(map[string]bool, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.ToUpper(m[1])
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// MissingVariables returns the referenced variables absent from the table
func MissingVariables(expression string, variables map[string]int) []string {
	table := NormalizeVariables(variables)
	var missing []string
	for _, name := range ExtractVariables(expression) {
		if _, ok := table[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// LoadVariables reads a character sheet of integer variables from a YAML or
// JSON file. The format follows the extension; anything that is not .json
// is read as YAML.
func LoadVariables(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewVariablesFileError(ErrMsgVariablesRead, path, err)
	}
	vars, err := ParseVariables(data, formatForPath(path))
	if err != nil {
		return nil, NewVariablesFileError(ErrMsgVariablesDecode, path, err)
	}
	return vars, nil
}

// ParseVariables decodes a YAML or JSON mapping of names to integers. Keys
// are normalized like Roll's variable table.
func ParseVariables(data []byte, format string) (map[string]int, error) {
	raw := make(map[string]int)
	switch strings.ToLower(format) {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, NewVariablesFormatError(ErrMsgVariablesDecode, FormatYAML, err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, NewVariablesFormatError(ErrMsgVariablesDecode, FormatJSON, err)
		}
	default:
		return nil, NewVariablesFormatError(ErrMsgVariablesFormat, format, nil)
	}

	for name := range raw {
		if !variableName.MatchString(strings.TrimPrefix(name, "@")) {
			return nil, NewVariablesError(ErrMsgVariableName, name, nil)
		}
	}
	return NormalizeVariables(raw), nil
}

// ParseAssignments turns NAME=VALUE strings into a variable table.
// Later assignments override earlier ones.
func ParseAssignments(assignments []string) (map[string]int, error) {
	vars := make(map[string]int, len(assignments))
	for _, assignment := range assignments {
		name, value, ok := strings.Cut(assignment, variableAssignSeparator)
		name = strings.TrimPrefix(strings.TrimSpace(name), "@")
		if !ok || name == "" {
			return nil, NewVariablesError(ErrMsgVariableAssign, assignment, nil)
		}
		if !variableName.MatchString(name) {
			return nil, NewVariablesError(ErrMsgVariableName, name, nil)
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, NewVariablesError(ErrMsgVariableValue, name, err)
		}
		vars[strings.ToUpper(name)] = n
	}
	return vars, nil
}

// MergeVariables combines tables; later tables win on conflicts.
func MergeVariables(tables ...map[string]int) map[string]int {
	merged := make(map[string]int)
	for _, table := range tables {
		for name, value := range NormalizeVariables(table) {
			merged[name] = value
		}
	}
	return merged
}

func formatForPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ExtJSON) {
		return FormatJSON
	}
	return FormatYAML
}
