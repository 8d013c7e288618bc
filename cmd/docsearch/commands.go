package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"docsearch/internal/domain"
	"docsearch/internal/export"
	"docsearch/internal/summarizer"
	"docsearch/internal/tui"
)

var scoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		verbose bool
		a       *app
	)

	root := &cobra.Command{
		Use:   "docsearch",
		Short: "Search Reddit posts and arXiv papers with TF-IDF ranking",
		Long: `docsearch fetches documents from Reddit and arXiv (plus local YAML files),
indexes their content with TF-IDF and ranks them against free-text queries
by cosine similarity.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			log, err := newLogger(cfg.Log.Level, verbose)
			if err != nil {
				return err
			}
			a = newApp(cfg, log)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return cmd.Help()
			}
			return runTUI(cmd, a)
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file (uses ./config.yaml or ~/.config/docsearch/config.yaml if not provided)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	getApp := func() *app { return a }
	root.AddCommand(newFetchCmd(getApp), newListCmd(getApp), newStatsCmd(getApp), newSearchCmd(getApp), newTUICmd(getApp))
	return root
}

func newFetchCmd(getApp func() *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch documents from the configured sources and export them to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			if err := a.ingest(cmd.Context()); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			docs := a.corpus.All()
			for _, d := range docs {
				fmt.Fprintln(w, d.String())
			}
			path := a.cfg.Export.Path
			if out != "" {
				path = out
			}
			if err := export.SaveCSV(path, docs, a.cfg.Export.CreatorSeparator); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			fmt.Fprintf(w, "\n%d documents saved to %s\n", len(docs), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "CSV output path (overrides export.path)")
	return cmd
}

func newListCmd(getApp func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Fetch and print every document with a short digest",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			if err := a.ingest(cmd.Context()); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			docs := a.corpus.All()
			for i, d := range docs {
				fmt.Fprintf(w, "[%d] %s\n", i+1, d.String())
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, a.corpus.Stats().String())
			digest, err := summarizer.Digest(summarizer.NewFrequencySummarizer(), docs, a.cfg.Summarizer.MaxSentences)
			if err != nil {
				return err
			}
			if digest != "" {
				fmt.Fprintln(w)
				fmt.Fprintln(w, "Digest: "+digest)
			}
			return nil
		},
	}
}

func newStatsCmd(getApp func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Fetch and print document counts per kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			if err := a.ingest(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), a.corpus.Stats().String())
			return err
		},
	}
}

type jsonResult struct {
	Title     string   `json:"title"`
	Creators  []string `json:"creators"`
	Timestamp string   `json:"timestamp"`
	Type      string   `json:"type"`
	Comments  *int     `json:"comments,omitempty"`
	Content   string   `json:"content"`
	Score     float64  `json:"score"`
}

func newSearchCmd(getApp func() *app) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Fetch, index and run a single query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			if err := a.ingest(cmd.Context()); err != nil {
				return err
			}
			query := strings.Join(args, " ")
			results, err := a.engine.Search(query)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			if limit > 0 && len(results) > limit {
				results = results[:limit]
			}
			if asJSON {
				return printJSON(cmd, results)
			}
			w := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(w, "No results found.")
				return nil
			}
			for _, r := range results {
				fmt.Fprintf(w, "%s | %s\n", r.Document.String(), scoreStyle.Render(fmt.Sprintf("Score: %.4f", r.Score)))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output results as JSON")
	return cmd
}

func printJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	out := make([]jsonResult, len(results))
	for i, r := range results {
		d := r.Document
		out[i] = jsonResult{
			Title:     d.Title(),
			Creators:  d.Creators(),
			Timestamp: d.Timestamp(),
			Type:      d.Type(),
			Content:   d.Content(),
			Score:     r.Score,
		}
		if n, ok := d.CommentCount(); ok {
			out[i].Comments = &n
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func newTUICmd(getApp func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Fetch documents and open the interactive search UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, getApp())
		},
	}
}

func runTUI(cmd *cobra.Command, a *app) error {
	if err := a.ingest(cmd.Context()); err != nil {
		return err
	}
	if err := a.engine.Index(); err != nil {
		return err
	}
	summary, err := summarizer.Digest(summarizer.NewFrequencySummarizer(), a.corpus.All(), 1)
	if err != nil {
		return err
	}
	// the alt screen owns the terminal from here on
	a.log.Logger.SetOutput(io.Discard)
	model := tui.New(a.engine, summary).WithSources(a.log, a.fetchers()...)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
