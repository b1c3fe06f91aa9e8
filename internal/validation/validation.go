// Package validation checks command-line input before it reaches the domain packages.
package validation

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/budget-tracker/internal/dateutils"
	"fjacquet/budget-tracker/internal/parsererror"
)

// IsValidInputFile checks that path names an existing regular file.
func IsValidInputFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return &parsererror.ValidationError{Subject: "input", Reason: "no input file given"}
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	return nil
}

// IsValidOutputFormat checks if the given report format is supported.
func IsValidOutputFormat(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'text', 'json', 'yaml'", format)
	}
}

// IsValidUserID rejects empty or whitespace-containing user ids.
func IsValidUserID(userID string) error {
	if userID == "" {
		return &parsererror.ValidationError{Subject: "user", Reason: "user id is required"}
	}
	if strings.ContainsAny(userID, " \t\r\n") {
		return &parsererror.ValidationError{Subject: "user", Reason: "user id must not contain whitespace"}
	}
	return nil
}

// IsValidMonth checks a YYYY-MM month.
func IsValidMonth(month string) error {
	if _, err := dateutils.ParseMonth(month); err != nil {
		return &parsererror.ValidationError{Subject: "month", Reason: fmt.Sprintf("%q is not in YYYY-MM form", month)}
	}
	return nil
}

// IsValidFilePermissions rejects modes that grant any access to other users.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode&0007 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600 or 0640", mode.String())
	}
	return nil
}
