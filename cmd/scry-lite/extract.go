package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/phrazzld/scry-lite/internal/extract"
	"github.com/phrazzld/scry-lite/internal/litepack"
	"github.com/spf13/cobra"
)

type extractOptions struct {
	url      string
	generate bool
	lang     string
	format   string
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract the readable text of a web article",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExtract(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.url, "url", "", "Article URL (http or https)")
	cmd.Flags().BoolVar(&opts.generate, "generate", false, "Also generate a study pack from the article")
	cmd.Flags().StringVarP(&opts.lang, "lang", "l", string(litepack.English), "Pack language when generating: en or pl")
	cmd.Flags().StringVar(&opts.format, "format", formatJSON, "Pack output format: json, text or pdf")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func runExtract(cmd *cobra.Command, root *rootOptions, opts *extractOptions) error {
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

	extractor := extract.New(extract.Config{
		MaxChars:  cfg.Extract.MaxChars,
		Timeout:   time.Duration(cfg.Extract.TimeoutSeconds) * time.Second,
		UserAgent: cfg.Extract.UserAgent,
	}, nil, log)

	article, err := extractor.Extract(cmd.Context(), opts.url)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !opts.generate {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(article)
	}

	if opts.format != formatPDF {
		if _, err := fmt.Fprintf(out, "%s\n%s\n\n", article.Title, article.URL); err != nil {
			return err
		}
	}
	pack := litepack.NewGenerator(litepack.WithLogger(log)).Generate(article.Text, lang)
	return writePack(out, packOutput{
		title:  article.Title,
		lang:   lang,
		pack:   pack,
		format: opts.format,
	}, cfg, log)
}
