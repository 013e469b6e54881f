// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/poiesic/lexicon"
	"github.com/poiesic/lexicon/archive"
	"github.com/poiesic/lexicon/config"
	"github.com/poiesic/lexicon/core"
	"github.com/poiesic/lexicon/enrich"
	"github.com/poiesic/lexicon/ranking"
	"github.com/poiesic/lexicon/search"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(os.Stdout).RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "lexicon",
		Usage:     "Keep a personal lexicon of words, phrases, quotes and hypotheticals",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory (overrides config)",
			},
		},
		Before: func(c *cli.Context) error {
			if err := setupLogger(c); err != nil {
				return err
			}
			return loadConfig(c)
		},
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add an entry",
				ArgsUsage: "<word|phrase|quote|hypothetical> <text>",
				Action:    addCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "definition", Usage: "Definition (words and phrases)"},
					&cli.StringFlag{Name: "source", Usage: "Attribution (quotes)"},
					&cli.StringFlag{Name: "notes", Usage: "Free-form notes"},
					&cli.StringSliceFlag{Name: "tag", Aliases: []string{"t"}, Usage: "Tag (repeatable)"},
				},
			},
			{
				Name:      "show",
				Usage:     "Show an entry",
				ArgsUsage: "<id>",
				Action:    showCommand,
			},
			{
				Name:      "rm",
				Usage:     "Remove entries",
				ArgsUsage: "<id>...",
				Action:    rmCommand,
			},
			{
				Name:      "search",
				Usage:     "Search entries by relevance; with no query, list alphabetically",
				ArgsUsage: "[query]",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Usage: "Restrict to one kind"},
					&cli.StringSliceFlag{Name: "tag", Aliases: []string{"t"}, Usage: "Require tag (repeatable)"},
					&cli.StringFlag{Name: "letter", Usage: "Restrict to entries starting with this letter"},
					&cli.IntFlag{Name: "offset", Usage: "Number of results to skip"},
					&cli.IntFlag{Name: "limit", Usage: "Page size (default from config)"},
					&cli.BoolFlag{Name: "explain", Usage: "Show which rules matched"},
				},
			},
			{
				Name:   "tags",
				Usage:  "List tags with usage counts",
				Action: tagsCommand,
			},
			{
				Name:      "define",
				Usage:     "Look up a term with the configured model",
				ArgsUsage: "<term>",
				Action:    defineCommand,
			},
			{
				Name:   "enrich",
				Usage:  "Fill in missing definitions with the configured model",
				Action: enrichCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of entries saved per batch",
						Value: 25,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N entries",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts per lookup",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "overwrite",
						Usage: "Replace existing definitions",
					},
				},
			},
			{
				Name:      "export",
				Usage:     "Write every entry to a CBOR archive",
				ArgsUsage: "<file>",
				Action:    exportCommand,
			},
			{
				Name:      "import",
				Usage:     "Add entries from a CBOR archive, skipping duplicates",
				ArgsUsage: "<file>",
				Action:    importCommand,
			},
		},
	}
}

// loadConfig reads the config file and environment, applies --db and stores
// the result in the app metadata.
func loadConfig(c *cli.Context) error {
	cfg, errs := config.Load(c.String("config"))
	if db := c.String("db"); db != "" && cfg != nil {
		cfg.DBPath = db
	}
	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

func getConfig(c *cli.Context) *config.Config {
	return c.App.Metadata[configKey].(*config.Config)
}

func openDatabase(c *cli.Context) (*lexicon.Database, error) {
	cfg := getConfig(c)
	db, err := lexicon.Open(cfg.DBPath, lexicon.WithAIConfig(cfg.AIConfig()))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func addCommand(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("add requires a kind and text")
	}
	kind, err := core.ParseKind(c.Args().First())
	if err != nil {
		return err
	}
	text := strings.Join(c.Args().Tail(), " ")

	entry, err := buildEntry(kind, text, c.String("definition"), c.String("source"), c.String("notes"))
	if err != nil {
		return err
	}
	entry.Meta().Tags = c.StringSlice("tag")

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	added, err := db.EntryRepository().AddEntries(c.Context, entry)
	if err != nil {
		return fmt.Errorf("failed to add entry: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "added %s %d\n", kind, added[0].Meta().Id)
	return nil
}

// buildEntry creates an entry of kind, rejecting fields the kind does not have.
func buildEntry(kind core.Kind, text, definition, source, notes string) (core.Entry, error) {
	if definition != "" && kind != core.KindWord && kind != core.KindPhrase {
		return nil, fmt.Errorf("--definition is only valid for words and phrases")
	}
	if source != "" && kind != core.KindQuote {
		return nil, fmt.Errorf("--source is only valid for quotes")
	}

	switch kind {
	case core.KindWord:
		return &core.Word{Name: text, Definition: definition, Notes: notes}, nil
	case core.KindPhrase:
		return &core.Phrase{Body: text, Definition: definition, Notes: notes}, nil
	case core.KindQuote:
		return &core.Quote{Body: text, Source: source, Notes: notes}, nil
	case core.KindHypothetical:
		return &core.Hypothetical{Body: text, Notes: notes}, nil
	}
	return nil, core.ErrInvalidKind
}

func parseID(s string) (core.ID, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return core.ID(id), nil
}

func showCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("show requires exactly one id")
	}
	id, err := parseID(c.Args().First())
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	entry, err := db.EntryRepository().GetEntry(c.Context, id)
	if err != nil {
		return err
	}
	printEntry(c.App.Writer, entry)
	return nil
}

func printEntry(w io.Writer, entry core.Entry) {
	rec := archive.ToRecord(entry)
	meta := entry.Meta()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "id:\t%d\n", meta.Id)
	fmt.Fprintf(tw, "kind:\t%s\n", rec.Kind)
	fmt.Fprintf(tw, "text:\t%s\n", rec.Text)
	for _, field := range []struct{ name, value string }{
		{"definition", rec.Definition},
		{"source", rec.Source},
		{"notes", rec.Notes},
		{"tags", strings.Join(rec.Tags, ", ")},
	} {
		if field.value != "" {
			fmt.Fprintf(tw, "%s:\t%s\n", field.name, field.value)
		}
	}
	fmt.Fprintf(tw, "added:\t%s\n", meta.InsertedAt.Local().Format(time.DateTime))
	tw.Flush()
}

func rmCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("rm requires at least one id")
	}
	ids := make([]core.ID, c.NArg())
	for i, arg := range c.Args().Slice() {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		ids[i] = id
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.EntryRepository().DeleteEntries(c.Context, ids...); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "removed %d entries\n", len(ids))
	return nil
}

func searchCommand(c *cli.Context) error {
	cfg := getConfig(c)

	req := search.Request{
		Query:   strings.Join(c.Args().Slice(), " "),
		Tags:    c.StringSlice("tag"),
		Letter:  c.String("letter"),
		Offset:  c.Int("offset"),
		Limit:   c.Int("limit"),
		Explain: c.Bool("explain"),
	}
	if k := c.String("kind"); k != "" {
		kind, err := core.ParseKind(k)
		if err != nil {
			return err
		}
		req.Kind = kind
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ranker, err := ranking.NewRanker(ranking.WithPoolSize(cfg.PoolSize))
	if err != nil {
		return err
	}
	defer ranker.Release()

	searcher, err := db.NewSearcher(
		search.WithRanker(ranker),
		search.WithLimits(cfg.PageSize, search.MaxLimit),
	)
	if err != nil {
		return err
	}
	defer searcher.Close()

	resp, err := searcher.Search(c.Context, req)
	if err != nil {
		return err
	}
	printResults(c.App.Writer, resp)
	return nil
}

func printResults(w io.Writer, resp *search.Response) {
	if resp.Total == 0 {
		fmt.Fprintln(w, "no entries found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, result := range resp.Results {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n",
			result.Entry.Meta().Id, result.Entry.Kind(), result.Score, core.PrimaryText(result.Entry))
		if result.Breakdown != nil {
			for _, m := range result.Breakdown.Matches {
				fmt.Fprintf(tw, "\t\t+%d\t%s\n", m.Weight, m.Name)
			}
		}
	}
	tw.Flush()

	if len(resp.Results) == 0 {
		fmt.Fprintf(w, "no results past offset %d of %d\n", resp.Offset, resp.Total)
		return
	}
	fmt.Fprintf(w, "%d-%d of %d\n", resp.Offset+1, resp.Offset+len(resp.Results), resp.Total)
}

func tagsCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	counts, err := db.TagRepository().TagCounts(c.Context)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	for _, tc := range counts {
		fmt.Fprintf(tw, "%s\t%d\n", tc.Tag, tc.Count)
	}
	return tw.Flush()
}

func defineCommand(c *cli.Context) error {
	term := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(term) == "" {
		return fmt.Errorf("define requires a term")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	senses, err := db.Definer().Define(c.Context, term)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	if len(senses) == 0 {
		fmt.Fprintf(c.App.Writer, "no definition found for %q\n", term)
		return nil
	}

	for i, s := range senses {
		fmt.Fprintf(c.App.Writer, "%d. (%s) %s\n", i+1, s.PartOfSpeech, s.Definition)
		if s.Example != "" {
			fmt.Fprintf(c.App.Writer, "   e.g. %s\n", s.Example)
		}
	}
	return nil
}

func enrichCommand(c *cli.Context) error {
	cfg := getConfig(c)

	enrichConfig := &enrich.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		Overwrite:      c.Bool("overwrite"),
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	enricher, err := db.NewEnricher(enrichConfig, c.App.ErrWriter)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.ErrWriter, "Database: %s\n", cfg.DBPath)
	fmt.Fprintf(c.App.ErrWriter, "Model host: %s\n", cfg.AIHost)
	fmt.Fprintf(c.App.ErrWriter, "Model: %s\n", cfg.AIModel)
	fmt.Fprintln(c.App.ErrWriter)

	report, err := enricher.Run(c.Context)
	if err != nil {
		return fmt.Errorf("enrichment failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "defined %d of %d entries (%d unknown, %d failed) in %s\n",
		report.Defined, report.Candidates, report.Unknown, report.Failed, report.Elapsed.Round(time.Millisecond))
	return nil
}

func exportCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("export requires a file name")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	f, err := os.Create(c.Args().First())
	if err != nil {
		return err
	}

	manifest, err := archive.Export(c.Context, db.EntryRepository(), f)
	if err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "exported %d entries (%s)\n", manifest.Count, manifest.ExportID)
	return nil
}

func importCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("import requires a file name")
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	report, err := archive.Import(c.Context, db.EntryRepository(), f)
	if report != nil {
		fmt.Fprintf(c.App.Writer, "imported %d entries, skipped %d duplicates\n", report.Imported, report.Skipped)
	}
	return err
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return nil
}
