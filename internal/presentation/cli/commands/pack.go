package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jbctechsolutions/gzio"
	"github.com/jbctechsolutions/gzio/internal/infrastructure/logging"
)

// packFlags holds the flags for the pack command.
type packFlags struct {
	JSON bool
}

var packOpts packFlags

// NewPackCmd creates the pack command.
func NewPackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack <out.gz> [input...]",
		Short: "Compress files or stdin into a gzip file",
		Long: `Compress the given input files into a single gzip file at <out.gz>.
Inputs are concatenated in argument order with no separator inserted.
With no inputs, stdin is compressed.

With --json the combined input is parsed as JSON and written in compact
form (no inter-token whitespace, non-ASCII as literal UTF-8), so the
output is normalized regardless of the input's formatting.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(cmd.InOrStdin(), args[0], args[1:])
		},
	}

	cmd.Flags().BoolVarP(&packOpts.JSON, "json", "j", false, "parse input as JSON and write it in compact form")

	return cmd
}

func runPack(stdin io.Reader, outPath string, inputs []string) error {
	formatter := GetFormatter()
	logger := logging.Default()

	ctx := logging.WithOperation(commandContext(), "pack")
	ctx = logging.WithPath(ctx, outPath)

	chunks, err := readInputs(stdin, inputs)
	if err != nil {
		return err
	}

	if packOpts.JSON {
		var combined []byte
		for _, chunk := range chunks {
			combined = append(combined, chunk...)
		}
		var v any
		if err := json.Unmarshal(combined, &v); err != nil {
			return fmt.Errorf("input is not valid JSON: %w", err)
		}

		ctx, span := GetTracer().StartFileSpan(ctx, "write_json", outPath)
		if err := gzio.WriteJSONGz(outPath, v); err != nil {
			span.EndWithError(err)
			logger.ErrorContext(ctx, "write failed", "error", err)
			return err
		}
		span.SetBytes(len(combined), compressedSize(outPath))
		span.End()
		logger.DebugContext(ctx, "wrote json payload", "bytes", len(combined))
		return formatter.Success("wrote %s", outPath)
	}

	lines := make([]string, 0, len(chunks))
	var total int
	for _, chunk := range chunks {
		lines = append(lines, string(chunk))
		total += len(chunk)
	}

	ctx, span := GetTracer().StartFileSpan(ctx, "write_text", outPath)
	if err := gzio.WriteTextLinesGz(outPath, lines); err != nil {
		span.EndWithError(err)
		logger.ErrorContext(ctx, "write failed", "error", err)
		return err
	}
	span.SetBytes(total, compressedSize(outPath))
	span.End()
	logger.DebugContext(ctx, "wrote text payload", "bytes", total)

	return formatter.Success("wrote %s", outPath)
}

// readInputs collects the raw bytes of each input file, or stdin when
// no inputs are given.
func readInputs(stdin io.Reader, inputs []string) ([][]byte, error) {
	if len(inputs) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return [][]byte{data}, nil
	}

	chunks := make([][]byte, 0, len(inputs))
	for _, input := range inputs {
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, fmt.Errorf("failed to read input %s: %w", input, err)
		}
		chunks = append(chunks, data)
	}
	return chunks, nil
}

// compressedSize returns the on-disk size of the written file, or 0 if
// it cannot be determined.
func compressedSize(path string) int {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return int(info.Size())
}
