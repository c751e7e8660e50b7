package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/phrazzld/scry-lite/internal/config"
	"github.com/phrazzld/scry-lite/internal/export"
	"github.com/phrazzld/scry-lite/internal/litepack"
	"github.com/phrazzld/scry-lite/internal/telegram"
	"github.com/spf13/cobra"
)

const (
	formatJSON = "json"
	formatText = "text"
	formatPDF  = "pdf"

	// textWidth is large enough that text output is never split.
	textWidth = 1 << 20
)

type generateOptions struct {
	file   string
	lang   string
	title  string
	seed   uint64
	format string
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a study pack from a text file or standard input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, root, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read text from this file instead of standard input")
	cmd.Flags().StringVarP(&opts.lang, "lang", "l", string(litepack.English), "Pack language: en or pl")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "Pack title for PDF output (defaults to pack.default_title)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Seed for quiz shuffling (0 picks a random seed)")
	cmd.Flags().StringVar(&opts.format, "format", formatJSON, "Output format: json, text or pdf")
	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootOptions, opts *generateOptions) error {
	lang, err := litepack.ParseLanguage(opts.lang)
	if err != nil {
		return fmt.Errorf("unsupported language %q: use en or pl", opts.lang)
	}
	if err := checkFormat(opts.format); err != nil {
		return err
	}

	cfg, log, err := root.load(cmd)
	if err != nil {
		return err
	}

	text, err := readInput(cmd, opts.file)
	if err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if n := utf8.RuneCountInString(text); n < cfg.Pack.MinInputLength {
		return fmt.Errorf("text is too short: got %d characters, need at least %d", n, cfg.Pack.MinInputLength)
	}

	genOpts := []litepack.Option{litepack.WithLogger(log)}
	if opts.seed != 0 {
		genOpts = append(genOpts, litepack.WithSeed(opts.seed))
	}
	pack := litepack.NewGenerator(genOpts...).Generate(text, lang)

	title := opts.title
	if strings.TrimSpace(title) == "" {
		title = cfg.Pack.DefaultTitle
	}
	return writePack(cmd.OutOrStdout(), packOutput{
		title:  title,
		lang:   lang,
		pack:   pack,
		format: opts.format,
	}, cfg, log)
}

func readInput(cmd *cobra.Command, file string) (string, error) {
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read standard input: %w", err)
	}
	return string(b), nil
}

func checkFormat(format string) error {
	switch format {
	case formatJSON, formatText, formatPDF:
		return nil
	}
	return fmt.Errorf("unknown format %q: use json, text or pdf", format)
}

type packOutput struct {
	title  string
	lang   litepack.Language
	pack   *litepack.LitePack
	format string
}

// writePack prints the pack as indented JSON, as the plain text layout the
// chat bot sends, or as a PDF document.
func writePack(w io.Writer, out packOutput, cfg *config.Config, log *slog.Logger) error {
	switch out.format {
	case formatText:
		_, err := fmt.Fprintln(w, strings.Join(telegram.FormatPack(out.pack, out.lang, "", textWidth), "\n\n"))
		return err
	case formatPDF:
		renderer := export.NewPDFRenderer(export.Config{
			FontDir: cfg.Export.FontDir,
			AppURL:  cfg.Export.AppURL,
		}, log)
		return renderer.Render(w, out.title, out.lang, out.pack)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.pack)
}
