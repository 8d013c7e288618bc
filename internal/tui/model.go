package tui

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"docsearch/internal/domain"
	"docsearch/internal/service"
)

// EnginePort is the TUI-facing subset of the search engine.
type EnginePort interface {
	Index() error
	Search(query string) ([]domain.SearchResult, error)
	State() service.State
	Corpus() *domain.Corpus
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	engine    EnginePort
	input     textinput.Model
	viewport  viewport.Model
	results   []domain.SearchResult
	summary   string
	status    string
	cursor    int
	ready     bool
	lastQuery string
	sources   []domain.Fetcher
	log       *logrus.Entry
	loading   bool
}

// sourceLoadedMsg reports the end of a single-source ingest started from the UI.
type sourceLoadedMsg struct {
	source string
	added  int
	err    error
}

// New creates a new TUI model instance.
func New(engine EnginePort, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type query and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{engine: engine, input: ti, viewport: vp, summary: summary, status: "Loaded. Type to search, ctrl+r to re-index."}
}

// WithSources binds fetchers to the keys f1, f2, ... in order. Each key appends
// that source's documents to the engine's corpus; the index then goes stale
// until ctrl+r.
func (m Model) WithSources(log *logrus.Entry, fetchers ...domain.Fetcher) Model {
	m.sources = fetchers
	m.log = log
	if len(fetchers) > 0 {
		names := make([]string, len(fetchers))
		for i, f := range fetchers {
			names[i] = fmt.Sprintf("f%d %s", i+1, f.Name())
		}
		m.status += " Load more: " + strings.Join(names, ", ") + "."
	}
	return m
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around result and query boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2                                    // header + summary
		totalFooterLines := 1                                    // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1 // 1 spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	case sourceLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("Loaded %d documents from %s.", msg.added, msg.source)
		}
		if m.engine.State() == service.Stale {
			m.status += " (index is stale, ctrl+r to rebuild)"
		}
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m = m.runQuery(q)
				return m, nil
			}
		case "ctrl+r":
			if err := m.engine.Index(); err != nil {
				m.status = "Error: " + err.Error()
			} else {
				m.status = "Index rebuilt."
				if m.lastQuery != "" {
					m = m.runQuery(m.lastQuery)
				}
			}
			return m, nil
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		default:
			if i, ok := m.sourceIndex(msg); ok {
				if m.loading {
					return m, nil
				}
				m.loading = true
				m.status = "Loading " + m.sources[i].Name() + "..."
				return m, m.loadSource(m.sources[i])
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) runQuery(q string) Model {
	res, err := m.engine.Search(q)
	switch {
	case errors.Is(err, domain.ErrEmptyCorpus):
		m.status = "No documents loaded."
		m.results = nil
	case err != nil:
		m.status = "Error: " + err.Error()
		m.results = nil
	case len(res) == 0:
		m.status = fmt.Sprintf("No results for %q", q)
		m.results = nil
		m.lastQuery = q
	default:
		m.status = fmt.Sprintf("%d results for %q", len(res), q)
		m.results = res
		m.cursor = 0
		m.lastQuery = q
	}
	if m.engine.State() == service.Stale {
		m.status += " (index is stale, ctrl+r to rebuild)"
	}
	m.viewport.SetContent(m.renderCurrentResult())
	return m
}

func (m Model) sourceIndex(msg tea.KeyMsg) (int, bool) {
	key := msg.String()
	if msg.Type == tea.KeyRunes || !strings.HasPrefix(key, "f") {
		return 0, false
	}
	n, err := strconv.Atoi(key[1:])
	if err != nil || n < 1 || n > len(m.sources) {
		return 0, false
	}
	return n - 1, true
}

func (m Model) loadSource(f domain.Fetcher) tea.Cmd {
	corpus, log := m.engine.Corpus(), m.log
	return func() tea.Msg {
		report, err := service.Ingest(context.Background(), corpus, log, f)
		return sourceLoadedMsg{source: f.Name(), added: report.Added, err: err}
	}
}

// Results returns the results of the last query.
func (m Model) Results() []domain.SearchResult { return m.results }

// Status returns the status line.
func (m Model) Status() string { return m.status }

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Document Search")
	line := m.engine.Corpus().Stats().String()
	if m.summary != "" {
		line += " | " + m.summary
	}
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(line)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	r := m.results[m.cursor]
	d := r.Document
	title := fmt.Sprintf("Result %d/%d  score=%.4f", m.cursor+1, len(m.results), r.Score)
	meta := metaStyle.Render(fmt.Sprintf("%s | %s | %s | %s", d.Title(), d.Type(), d.CreatorsJoined(", "), d.Timestamp()))
	body := highlightBestSentence(d.Content(), m.lastQuery)
	return title + "\n" + meta + "\n\n" + body
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	metaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	wordRe         = regexp.MustCompile(`[\p{L}\p{N}]+`)
	sentenceRe     = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
)

func highlightBestSentence(text, query string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	sentences := splitSentences(text)
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 {
		return strings.Join(sentences, " ")
	}
	bestIdx := 0
	bestScore := -1
	for i, s := range sentences {
		score := tokenOverlapScore(qTokens, s)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	for i := range sentences {
		sent := strings.TrimSpace(sentences[i])
		if i == bestIdx {
			sentences[i] = highlightStyle.Render(sent)
		} else {
			sentences[i] = sent
		}
	}
	return strings.Join(sentences, " ")
}

// splitSentences keeps an unterminated tail as the last sentence.
func splitSentences(text string) []string {
	var out []string
	end := 0
	for _, loc := range sentenceRe.FindAllStringIndex(text, -1) {
		out = append(out, text[loc[0]:loc[1]])
		end = loc[1]
	}
	if tail := strings.TrimSpace(text[end:]); tail != "" {
		out = append(out, tail)
	}
	return out
}

func toTokenSet(s string) map[string]struct{} {
	tokens := wordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

func tokenOverlapScore(queryTokens map[string]struct{}, sentence string) int {
	score := 0
	tokens := wordRe.FindAllString(strings.ToLower(sentence), -1)
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}
