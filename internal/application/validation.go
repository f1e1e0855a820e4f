package application

import (
	"fmt"
	"strings"

	"ruleweaver/internal/domain"
	"ruleweaver/internal/ports"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "entryID" -> "entry ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"entryID":     "entry ID",
		"artifactID":  "artifact ID",
		"conflictID":  "conflict ID",
		"candidateID": "candidate ID",
		"url":         "URL",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateAdapters checks that every id exists in the registry
func ValidateAdapters(fieldName string, ids []domain.AdapterID, registry ports.AdapterRegistry) error {
	var unknown []string
	for _, id := range ids {
		if _, ok := registry.GetAdapter(id); !ok {
			unknown = append(unknown, string(id))
		}
	}
	if len(unknown) > 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("unknown adapter(s): %s", strings.Join(unknown, ", ")),
		}
	}
	return nil
}

// ValidateScope checks that local artifacts carry at least one target path
func ValidateScope(scope domain.Scope, targetPaths []string) error {
	switch scope {
	case domain.ScopeGlobal:
		return nil
	case domain.ScopeLocal:
		if len(targetPaths) == 0 {
			return &ValidationError{Field: "targetPaths", Message: "local scope requires at least one target path"}
		}
		return nil
	}
	return &ValidationError{Field: "scope", Message: fmt.Sprintf("unknown scope %q", scope)}
}
