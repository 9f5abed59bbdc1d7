package cli

import (
	"fmt"

	"tradcv/internal/ai"
	"tradcv/internal/common"
	"tradcv/internal/extract"
	"tradcv/internal/parser"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [cv-file]",
	Short: "Parse a CV document into a structured record",
	Long: `Parse a CV document into a structured record using AI.
The command takes one argument: the path to a CV in PDF or DOCX format.
Text is extracted from the document and deconstructed into a structured
record with candidate details, competencies and professional history.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if parseConfig.OutputFormat == "" {
			parseConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(parseConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runParse,
}

var parseConfig common.CommandConfig

func init() {
	parseCmd.Flags().StringVarP(&parseConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	parseCmd.Flags().StringVar(&parseConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = parseCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return cfg.App.SupportedFormats, cobra.ShellCompDirectiveNoFileComp
	})
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	filename := args[0]

	format, err := extract.DetectFormat(filename, "")
	if err != nil {
		return err
	}

	fileProcessor := common.NewFileProcessor(logger)
	data, err := fileProcessor.ReadBinaryFile(filename)
	if err != nil {
		return err
	}

	rawText, err := extract.Text(data, format)
	if err != nil {
		return err
	}

	logger.Info("Starting CV parsing",
		"file", filename,
		"format", string(format),
		"text_chars", len(rawText),
		"output_format", parseConfig.OutputFormat)

	// Create AI service for the parse operation
	parseAIConfig := cfg.GetParseConfig()
	aiService, err := ai.NewService(&parseAIConfig, ai.OperationParse, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	cvParser := parser.New(aiService.Provider, logger)
	record, tokenUsage, err := cvParser.Parse(cmd.Context(), rawText)
	if err != nil {
		return fmt.Errorf("failed to parse CV: %w", err)
	}

	if tokenUsage != nil {
		logger.Info("AI token usage",
			"input_tokens", tokenUsage.InputTokens,
			"output_tokens", tokenUsage.OutputTokens,
			"total_tokens", tokenUsage.TotalTokens)
	}

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(record, parseConfig); err != nil {
		return err
	}

	logger.Info("CV parsing completed successfully",
		"candidate", record.CandidateName,
		"history_roles", len(record.ProfessionalHistory))
	return nil
}
