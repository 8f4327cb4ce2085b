package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"wikiparser/pkg/simplify"
)

func newSimplifyCmd() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:     "simplify",
		Short:   "Apply article simplification to stdin, writing to stdout",
		Example: "  wikiparser simplify < article.html > simplified.html",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}

			doc, err := html.Parse(bytes.NewReader(input))
			if err != nil {
				return fmt.Errorf("parsing html: %w", err)
			}

			if lang == "" {
				detected, ok := simplify.DetectLang(doc)
				if !ok {
					detected = "en"
				}
				lang = detected
			}

			if err := simplify.Process(doc, lang); err != nil {
				return err
			}
			return html.Render(cmd.OutOrStdout(), doc)
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Article language; detected from the document's base url when empty")
	return cmd
}
