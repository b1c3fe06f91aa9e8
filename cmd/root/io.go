package root

import (
	"encoding/json"
	"fmt"

	"fjacquet/budget-tracker/internal/common"
	"fjacquet/budget-tracker/internal/fileutils"
	"fjacquet/budget-tracker/internal/parsererror"
	"fjacquet/budget-tracker/internal/validation"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Messages returns the SMS texts to process: the contents of --input when set,
// otherwise the command arguments.
func Messages(csv *common.CSVHandler, args []string) ([]string, error) {
	if SharedFlags.Input != "" {
		if err := validation.IsValidInputFile(SharedFlags.Input); err != nil {
			return nil, err
		}
		return csv.ReadMessages(SharedFlags.Input)
	}
	if len(args) == 0 {
		return nil, &parsererror.ValidationError{Subject: "input", Reason: "pass messages as arguments or use --input"}
	}
	return args, nil
}

// UserID returns the validated --user value.
func UserID() (string, error) {
	if err := validation.IsValidUserID(SharedFlags.User); err != nil {
		return "", err
	}
	return SharedFlags.User, nil
}

// OutputFormat resolves a --format flag value, falling back to report.format.
func OutputFormat(flag string) (string, error) {
	format := flag
	if format == "" && AppConfig != nil {
		format = AppConfig.Report.Format
	}
	if format == "" {
		format = FormatText
	}
	if err := validation.IsValidOutputFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// Encode renders v as JSON or YAML.
func Encode(v interface{}, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteOutput writes data to --output, or to the command's stdout.
func WriteOutput(cmd *cobra.Command, data []byte) error {
	return fileutils.WriteOutput(SharedFlags.Output, data, cmd.OutOrStdout())
}
