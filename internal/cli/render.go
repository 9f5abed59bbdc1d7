package cli

import (
	"encoding/json"
	"fmt"

	"tradcv/internal/common"
	"tradcv/internal/cv"
	"tradcv/internal/render"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [record-file]",
	Short: "Render a structured CV record to an A4 PDF",
	Long: `Render a structured CV record to a print-ready A4 PDF document using a
headless Chrome instance. The record file must be JSON as produced by the
parse or forge commands. The output filename defaults to one derived from
the candidate name.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var renderOutputFile string

func init() {
	renderCmd.Flags().StringVarP(&renderOutputFile, "output", "o", "", "Output PDF path (default: derived from candidate name)")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	data, err := fileProcessor.ReadBinaryFile(args[0])
	if err != nil {
		return err
	}

	var record cv.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("record file is not valid JSON: %w", err)
	}
	if record.CandidateName == "" {
		return fmt.Errorf("record has no candidate name, refusing to render an empty CV")
	}

	outputFile := renderOutputFile
	if outputFile == "" {
		outputFile = render.Filename(record.CandidateName)
	}

	logger.Info("Starting PDF rendering",
		"candidate", record.CandidateName,
		"output_file", outputFile)

	backend := render.NewChromeBackend(cfg.Render.ChromePath, cfg.Render.Timeout)
	adapter := render.New(backend, logger)

	pdf, err := adapter.RenderPDF(cmd.Context(), record)
	if err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}

	if err := fileProcessor.WriteBinaryFile(outputFile, pdf); err != nil {
		return err
	}

	logger.Info("PDF rendering completed successfully", "output_file", outputFile, "bytes", len(pdf))
	return nil
}
