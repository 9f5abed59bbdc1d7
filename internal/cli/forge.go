package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"tradcv/internal/ai"
	"tradcv/internal/common"
	"tradcv/internal/cv"
	"tradcv/internal/tailor"

	"github.com/spf13/cobra"
)

var forgeCmd = &cobra.Command{
	Use:   "forge [record-file] [job-description-file]",
	Short: "Forge a structured CV record against a job description",
	Long: `Forge a structured CV record against a specific job description using AI.
The command takes two arguments: the path to a structured record file (JSON,
as produced by the parse command) and the path to the job description file
in plain text format. Static fields like name, contact and education are
preserved; summary, competencies and accomplishments are rewritten to
target the job.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if forgeConfig.OutputFormat == "" {
			forgeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(forgeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runForge,
}

var forgeConfig common.CommandConfig

// forgeInput bundles the source record with the target job description
type forgeInput struct {
	Record         cv.Record
	JobDescription string
}

func init() {
	forgeCmd.Flags().StringVarP(&forgeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	forgeCmd.Flags().StringVar(&forgeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = forgeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return cfg.App.SupportedFormats, cobra.ShellCompDirectiveNoFileComp
	})
}

func runForge(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for the forge operation
	forgeAIConfig := cfg.GetForgeConfig()
	aiService, err := ai.NewService(&forgeAIConfig, ai.OperationForge, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	engine := tailor.New(aiService.Provider, logger)

	createInput := func(contents []string) (forgeInput, error) {
		if len(contents) != 2 {
			return forgeInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		var record cv.Record
		if err := json.Unmarshal([]byte(contents[0]), &record); err != nil {
			return forgeInput{}, fmt.Errorf("record file is not valid JSON: %w", err)
		}
		return forgeInput{
			Record:         record,
			JobDescription: contents[1],
		}, nil
	}

	logDetails := func(input forgeInput, cfg common.CommandConfig) {
		logger.Info("Starting CV forging",
			"candidate", input.Record.CandidateName,
			"history_roles", len(input.Record.ProfessionalHistory),
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	// Create a wrapper function that uses our specific AI service
	forgeOperation := func(ctx context.Context, input forgeInput) (cv.Record, *ai.TokenUsage, error) {
		return engine.Forge(ctx, input.Record, input.JobDescription)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		forgeConfig,
		args,
		createInput,
		forgeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to forge CV: %w", err)
	}
	logger.Info("CV forging completed successfully")
	return nil
}
