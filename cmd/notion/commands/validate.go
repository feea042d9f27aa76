package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pageforge-io/notion-client/internal/constants"
	"github.com/pageforge-io/notion-client/pkg/notion"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	var (
		payloadType string
		applyFix    bool
		outFile     string
	)

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a request payload",
		Long: "Check a JSON request payload against the API limits before sending it. " +
			"With --fix, over-long text segments are split into compliant chunks and the " +
			"repaired payload is written out.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], payloadType, applyFix, outFile)
		},
	}

	cmd.Flags().StringVar(&payloadType, "type", "page", "payload type: page, blocks, or comment")
	cmd.Flags().BoolVar(&applyFix, "fix", false, "split over-long text and write the repaired payload")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "file for the repaired payload (default stdout)")

	return cmd
}

func runValidate(file, payloadType string, applyFix bool, outFile string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading payload file: %w", err)
	}

	switch payloadType {
	case "page":
		var request notion.PageCreateRequest
		if err := json.Unmarshal(data, &request); err != nil {
			return fmt.Errorf("parsing payload file: %w", err)
		}

		result := notion.ValidatePageCreate(&request)
		if applyFix {
			fixed := notion.AutoFixPageCreate(&request, result)

			return reportFix(fixed.Request, fixed.Fixed, fixed.Remaining, fixed.ChangeLog, outFile)
		}

		return reportValidation(result)
	case "blocks":
		var request notion.AppendBlockChildrenRequest
		if err := json.Unmarshal(data, &request); err != nil {
			return fmt.Errorf("parsing payload file: %w", err)
		}

		result := notion.ValidateAppendBlockChildren(&request)
		if applyFix {
			fixed := notion.AutoFixAppendBlockChildren(&request, result)

			return reportFix(fixed.Request, fixed.Fixed, fixed.Remaining, fixed.ChangeLog, outFile)
		}

		return reportValidation(result)
	case "comment":
		var request notion.CommentCreateRequest
		if err := json.Unmarshal(data, &request); err != nil {
			return fmt.Errorf("parsing payload file: %w", err)
		}

		result := notion.ValidateCommentCreate(&request)
		if applyFix {
			fixed := notion.AutoFixCommentCreate(&request, result)

			return reportFix(fixed.Request, fixed.Fixed, fixed.Remaining, fixed.ChangeLog, outFile)
		}

		return reportValidation(result)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownPayloadType, payloadType)
	}
}

// reportValidation prints the violations and fails the command when any are
// error-class.
func reportValidation(result *notion.ValidationResult) error {
	if err := outputViolations(result.Violations); err != nil {
		return err
	}

	if result.HasErrors() {
		return &notion.ValidationError{Result: result}
	}

	return nil
}

// reportFix writes the repaired payload and fails when blocking violations
// remain after the fix.
func reportFix(request any, fixed, remaining []notion.Violation, changeLog []string, outFile string) error {
	repaired, err := json.MarshalIndent(request, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding repaired payload: %w", err)
	}

	if outFile != "" {
		if err := os.WriteFile(outFile, append(repaired, '\n'), constants.ConfigFilePerm); err != nil {
			return fmt.Errorf("writing repaired payload: %w", err)
		}
	} else {
		fmt.Println(string(repaired))
	}

	for _, change := range changeLog {
		fmt.Fprintf(os.Stderr, "fixed: %s\n", change)
	}

	for _, violation := range remaining {
		fmt.Fprintf(os.Stderr, "remaining: %s\n", notion.FormatViolation(violation))
	}

	fmt.Fprintf(os.Stderr, "Fixed %d violation(s), %d remaining\n", len(fixed), len(remaining))

	if notion.HasBlockingViolations(remaining) {
		return &notion.ValidationError{Result: &notion.ValidationResult{Violations: remaining}}
	}

	return nil
}

func outputViolations(violations []notion.Violation) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON, OutputFormatYAML:
		return renderStructured(violations, output)
	default:
		if len(violations) == 0 {
			fmt.Println("Payload is valid")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Severity", "Kind", "Field", "Message", "Fixable")

		for _, violation := range violations {
			_ = table.Append(
				string(violation.Severity),
				string(violation.Kind),
				violation.Field,
				violation.Message,
				fmt.Sprintf("%t", violation.AutoFixAvailable),
			)
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	return nil
}
