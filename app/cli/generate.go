package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"codedoc/app/config"
	"codedoc/internal/domain/entity"
	"codedoc/internal/infrastructure/logging"
)

var (
	errOverwriteDeclined = errors.New("output file exists, not overwritten")
	errNotInteractive    = errors.New("output file exists, pass --yes to overwrite")
)

// GenerateFlags holds flags for the generate command.
type GenerateFlags struct {
	JSON   bool
	Output string
	Yes    bool
}

// confirmOverwrite asks before replacing an existing output file. Without a
// terminal on stdin there is nobody to ask.
var confirmOverwrite = func(path string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errNotInteractive
	}

	overwrite := false
	err := huh.NewConfirm().
		Title(fmt.Sprintf("%s already exists. Overwrite?", path)).
		Affirmative("Overwrite").
		Negative("Keep").
		Value(&overwrite).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return overwrite, err
}

func newGenerateCmd(configPath *string) *cobra.Command {
	flags := &GenerateFlags{}

	cmd := &cobra.Command{
		Use:   "generate <github-file-url>",
		Short: "Generate documentation for one file without running the gateway",
		Long: `Fetch a single GitHub file, generate documentation for it and print the
result.

Examples:
  codedoc generate https://github.com/user/repo/blob/main/app.js
  codedoc generate --json https://github.com/user/repo/blob/main/app.js
  codedoc generate -o APP.md https://github.com/user/repo/blob/main/app.js`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, *configPath, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.JSON, "json", false, "Print the full result as JSON")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Write documentation to file")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Overwrite the output file without asking")

	return cmd
}

func runGenerate(cmd *cobra.Command, configPath, repoURL string, flags *GenerateFlags) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging)

	shutdownTracing, err := initTracing(ctx, cfg.Tracing, cfg.Logging.Service, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("tracer shutdown error", "err", err)
		}
	}()

	docsService, err := buildDocsService(cfg, logger)
	if err != nil {
		return err
	}

	res, err := docsService.Generate(ctx, entity.GenerationRequest{RepoURL: repoURL})
	if err != nil {
		return err
	}

	return writeResult(cmd.OutOrStdout(), res, flags)
}

// writeResult prints the documentation, or the whole result with --json. With
// --output the documentation goes to the file instead of stdout.
func writeResult(w io.Writer, res entity.GenerationResult, flags *GenerateFlags) error {
	if flags.Output != "" {
		if err := writeOutputFile(flags.Output, res.Documentation, flags.Yes); err != nil {
			return err
		}
		if !flags.JSON {
			_, err := fmt.Fprintf(w, "Documentation for %s written to %s\n", res.FileName, flags.Output)
			return err
		}
	}

	if flags.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if flags.Output == "" {
		_, err := fmt.Fprintln(w, res.Documentation)
		return err
	}
	return nil
}

func writeOutputFile(path, content string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		ok, err := confirmOverwrite(path)
		if err != nil {
			return err
		}
		if !ok {
			return errOverwriteDeclined
		}
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
