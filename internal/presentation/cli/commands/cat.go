package commands

import (
	"github.com/spf13/cobra"

	"github.com/jbctechsolutions/gzio"
	"github.com/jbctechsolutions/gzio/internal/infrastructure/logging"
)

// catFlags holds the flags for the cat command.
type catFlags struct {
	JSON bool
}

var catOpts catFlags

// NewCatCmd creates the cat command.
func NewCatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat <file.gz>",
		Short: "Decompress a gzip file and print its contents",
		Long: `Decompress the given gzip file and print its contents to stdout.

By default the payload is treated as UTF-8 text and printed verbatim.
With --json the payload is parsed as JSON and pretty-printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCat(args[0])
		},
	}

	cmd.Flags().BoolVarP(&catOpts.JSON, "json", "j", false, "parse the payload as JSON and pretty-print it")

	return cmd
}

func runCat(path string) error {
	formatter := GetFormatter()
	logger := logging.Default()

	ctx := logging.WithOperation(commandContext(), "cat")
	ctx = logging.WithPath(ctx, path)

	if catOpts.JSON {
		ctx, span := GetTracer().StartFileSpan(ctx, "read_json", path)
		data, err := gzio.ReadJSONGz(path)
		if err != nil {
			span.EndWithError(err)
			logger.ErrorContext(ctx, "read failed", "error", err)
			return err
		}
		span.End()
		logger.DebugContext(ctx, "read json payload")
		return formatter.JSON(data)
	}

	ctx, span := GetTracer().StartFileSpan(ctx, "read_text", path)
	content, err := gzio.ReadTextGz(path)
	if err != nil {
		span.EndWithError(err)
		logger.ErrorContext(ctx, "read failed", "error", err)
		return err
	}
	span.SetBytes(len(content), 0)
	span.End()
	logger.DebugContext(ctx, "read text payload", "bytes", len(content))

	return formatter.Print("%s", content)
}
