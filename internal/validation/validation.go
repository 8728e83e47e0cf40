package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// cardIDRegex matches valid card identifiers
var cardIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateCardID validates a card identifier
func ValidateCardID(id string) error {
	id = strings.TrimSpace(id)

	if id == "" {
		return &ValidationError{Field: "id", Message: "id cannot be empty"}
	}

	if len(id) > 64 {
		return &ValidationError{Field: "id", Message: "id too long (max 64 characters)"}
	}

	if !cardIDRegex.MatchString(id) {
		return &ValidationError{Field: "id", Message: "id must start with letter/number and contain only letters, numbers, dots, dashes, or underscores"}
	}

	return nil
}

// ValidateColumnTitle validates a board column title
func ValidateColumnTitle(title string) error {
	title = SanitizeInput(title)

	if title == "" {
		return &ValidationError{Field: "title", Message: "column title cannot be empty"}
	}

	if len(title) > 100 {
		return &ValidationError{Field: "title", Message: "column title too long (max 100 characters)"}
	}

	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch {
	case path == "~":
		return home, nil
	case strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\"):
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// ValidateConfigPath validates a config file path. The file itself may be
// missing; a directory is rejected.
func ValidateConfigPath(path string) error {
	path = strings.TrimSpace(path)

	if path == "" {
		return &ValidationError{Field: "config", Message: "path cannot be empty"}
	}

	expanded, err := ExpandHome(path)
	if err != nil {
		return &ValidationError{Field: "config", Message: "cannot resolve home directory"}
	}

	info, err := os.Stat(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &ValidationError{Field: "config", Message: fmt.Sprintf("cannot access path: %v", err)}
	}

	if info.IsDir() {
		return &ValidationError{Field: "config", Message: "path is a directory"}
	}

	return nil
}

// SanitizeInput removes potentially dangerous characters from input
func SanitizeInput(input string) string {
	// Remove control characters
	input = strings.Map(func(r rune) rune {
		if r < 32 && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, input)

	return strings.TrimSpace(input)
}
