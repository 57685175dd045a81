package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wordgen/internal/language"
	"wordgen/internal/source"
)

// ---------------------------------------------------------------------------
// play
// ---------------------------------------------------------------------------

// maxBatches is how many generated batches the play screen keeps.
const maxBatches = 8

type playStyles struct {
	title lipgloss.Style
	batch lipgloss.Style
	dim   lipgloss.Style
	warn  lipgloss.Style
}

func newPlayStyles() playStyles {
	brand := lipgloss.AdaptiveColor{Light: "26", Dark: "81"}
	subtle := lipgloss.AdaptiveColor{Light: "245", Dark: "244"}
	return playStyles{
		title: lipgloss.NewStyle().Bold(true).Foreground(brand),
		batch: lipgloss.NewStyle().PaddingLeft(2),
		dim:   lipgloss.NewStyle().Foreground(subtle),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}

type playKeys struct {
	Generate key.Binding
	Quit     key.Binding
}

func (k playKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.Quit}
}

func (k playKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newPlayKeys() playKeys {
	return playKeys{
		Generate: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "generate")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "quit")),
	}
}

// playModel generates a batch of words each time enter is pressed.
type playModel struct {
	name     string
	lang     *language.Language
	rng      language.Rand
	count    int
	retries  int
	input    textinput.Model
	batches  []string
	err      error
	styles   playStyles
	keys     playKeys
	help     help.Model
	quitting bool
}

func newPlayModel(name string, lang *language.Language, rng language.Rand, count, retries int) playModel {
	ti := textinput.New()
	ti.Placeholder = strconv.Itoa(count)
	ti.CharLimit = 4
	ti.Focus()
	return playModel{
		name:    name,
		lang:    lang,
		rng:     rng,
		count:   count,
		retries: retries,
		input:   ti,
		styles:  newPlayStyles(),
		keys:    newPlayKeys(),
		help:    help.New(),
	}
}

func (m playModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Generate):
			m.generate()
			m.input.Reset()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// generate draws one batch using the typed count, or the default when the
// input is empty.
func (m *playModel) generate() {
	m.err = nil
	n := m.count
	if v := strings.TrimSpace(m.input.Value()); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			m.err = fmt.Errorf("%q is not a positive word count", v)
			return
		}
		n = parsed
	}
	words, err := m.lang.Words(n, m.retries, m.rng)
	if err != nil {
		m.err = err
		return
	}
	m.batches = append(m.batches, strings.Join(words, " "))
	if len(m.batches) > maxBatches {
		m.batches = m.batches[len(m.batches)-maxBatches:]
	}
}

func (m playModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.title.Render("wordgen") + m.styles.dim.Render(" · "+m.name) + "\n\n")
	for _, batch := range m.batches {
		b.WriteString(m.styles.batch.Render(batch) + "\n")
	}
	if len(m.batches) > 0 {
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(m.styles.warn.Render("error: "+m.err.Error()) + "\n\n")
	}
	b.WriteString("words: " + m.input.View() + "\n")
	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}

func runPlay(args []string) error {
	s, lib, err := setup()
	if err != nil {
		return err
	}

	fs := newFlags("play")
	seed := fs.Uint64("seed", 0, "random seed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: %s", playUsage)
	}

	src := &source.File{Ref: fs.Arg(0), Library: lib}
	lang, err := compile(src, s)
	if err != nil {
		return err
	}
	rng, _ := newRand(*seed, isSet(fs, "seed"))

	count := s.Count
	if count < 1 {
		count = 1
	}
	p := tea.NewProgram(newPlayModel(src.Name(), lang, rng, count, s.Retries))
	_, err = p.Run()
	return err
}
