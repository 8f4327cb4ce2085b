package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"wikiparser/pkg/dump"
	"wikiparser/pkg/tagfile"
	"wikiparser/pkg/wm"
)

func newGetArticlesCmd() *cobra.Command {
	var (
		osmTags       string
		wikidataQids  string
		wikipediaURLs string
		writeNewQids  string
		passthrough   string
		noSimplify    bool
	)

	cmd := &cobra.Command{
		Use:   "get-articles [flags] [OUTPUT_DIR]",
		Short: "Extract, filter, and simplify article HTML from a dump",
		Long: `Extract, filter, and simplify article HTML from Wikipedia Enterprise HTML dumps.

Expects an uncompressed dump (newline-delimited JSON) connected to stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := dump.ParsePassFilter(passthrough)
			if err != nil {
				return err
			}

			var outputDir string
			if len(args) > 0 {
				outputDir = args[0]
			}
			if outputDir == "" && pass == dump.PassNone {
				return fmt.Errorf("an OUTPUT_DIR argument or --passthrough is required")
			}
			if osmTags == "" && wikidataQids == "" && wikipediaURLs == "" {
				return fmt.Errorf("at least one of --osm-tags, --wikidata-qids, --wikipedia-urls is required")
			}

			titles := make(map[wm.Title]struct{})
			qids := make(map[wm.Qid]struct{})

			if wikipediaURLs != "" {
				slog.Info("Loading article urls", "path", wikipediaURLs)
				if err := loadFile(wikipediaURLs, func(f *os.File) error {
					return tagfile.ParseTitleFile(f, titles)
				}); err != nil {
					return err
				}
			}

			if wikidataQids != "" {
				slog.Info("Loading wikidata QIDs", "path", wikidataQids)
				if err := loadFile(wikidataQids, func(f *os.File) error {
					return tagfile.ParseQidFile(f, qids)
				}); err != nil {
					return err
				}
			}

			if osmTags != "" {
				slog.Info("Loading wikipedia/wikidata osm tags", "path", osmTags)
				before := len(qids) + len(titles)
				errorCount := 0
				if err := loadFile(osmTags, func(f *os.File) error {
					return tagfile.ParseOSMTagFile(f, qids, titles, func(e tagfile.ParseLineError) {
						errorCount++
						slog.Warn("Bad osm tag row", "error", e.Error())
					})
				}); err != nil {
					return err
				}
				if errorCount != 0 {
					added := len(qids) + len(titles) - before
					percentage := 0.0
					if added > 0 {
						percentage = 100.0 * float64(errorCount) / float64(added)
					}
					slog.Warn("Errors parsing osm tags",
						"path", osmTags,
						"errors", errorCount,
						"percentage", fmt.Sprintf("%.4f%%", percentage),
					)
				}
			}

			slog.Debug("Parsed unique article titles", "count", len(titles))
			slog.Debug("Parsed unique wikidata QIDs", "count", len(qids))

			processor := &dump.Processor{
				Qids:        qids,
				Titles:      titles,
				OutputDir:   outputDir,
				NoSimplify:  noSimplify,
				Passthrough: pass,
			}

			if writeNewQids != "" {
				f, err := dump.OpenDiscoveryLog(writeNewQids)
				if err != nil {
					return fmt.Errorf("opening new QID file %q: %w", writeNewQids, err)
				}
				defer f.Close()
				processor.NewQids = f
			}

			if outputDir != "" {
				fi, err := os.Stat(outputDir)
				if err != nil || !fi.IsDir() {
					return fmt.Errorf("output dir %q does not exist", outputDir)
				}
			}

			slog.Info("Processing dump")
			if err := processor.Run(os.Stdin, cmd.OutOrStdout()); err != nil {
				return err
			}

			slog.Info("Finished processing dump",
				"matched", processor.Matched,
				"errors", processor.Errors,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&osmTags, "osm-tags", "",
		"TSV file with `wikidata`/`wikipedia` columns, e.g. from osmconvert --csv-headline")
	cmd.Flags().StringVar(&wikidataQids, "wikidata-qids", "",
		"File with one Wikidata QID to extract per line (e.g. Q12345)")
	cmd.Flags().StringVar(&wikipediaURLs, "wikipedia-urls", "",
		"File with one Wikipedia article url to extract per line")
	cmd.Flags().StringVar(&writeNewQids, "write-new-qids", "",
		"Append the QIDs of articles matched by title but not QID to this file, for reuse with --wikidata-qids on another language's dump")
	cmd.Flags().StringVar(&passthrough, "passthrough", "",
		"Copy matching raw input records to stdout: match, error, or panic")
	cmd.Flags().BoolVar(&noSimplify, "no-simplify", false,
		"Don't simplify extracted HTML; write the original text to disk")

	return cmd
}

func loadFile(path string, parse func(*os.File) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()
	if err := parse(f); err != nil {
		return fmt.Errorf("parsing %q: %w", path, err)
	}
	return nil
}
