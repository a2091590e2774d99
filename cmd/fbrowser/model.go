package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ogefest/fbrowser/app"
	"github.com/ogefest/fbrowser/internal/logging"
	"github.com/ogefest/fbrowser/internal/metrics"
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Margin(0, 0, 1, 0)
	inputStyle = lipgloss.NewStyle().
			Margin(1, 0, 0, 0)
	tableStyle = lipgloss.NewStyle().
			Margin(0, 0, 1, 0)
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

const (
	browseMode = "browse"
	renameMode = "rename"

	sizeCol     = 10
	modifiedCol = 16
)

var keys = struct {
	open, parent, refresh, remove, rename, home, quit key.Binding
}{
	open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("⏎", "open")),
	parent:  key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "parent")),
	refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	remove:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	rename:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "rename")),
	home:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "home")),
	quit:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
}

// batchMsg carries one batch of the scan reading from ch.
type batchMsg struct {
	ch    <-chan app.Batch
	batch app.Batch
}

// scanDoneMsg reports that the scan reading from ch has closed its channel.
type scanDoneMsg struct {
	ch <-chan app.Batch
}

type model struct {
	listing   *app.Model
	events    chan app.Event
	table     table.Model
	textInput textinput.Model
	mode      string
	status    string
	err       error

	batchSize int
	nameWidth int
	scan      <-chan app.Batch
	scanStart time.Time
	cancel    context.CancelFunc
	acc       app.Accumulator
	loading   bool

	// opener hands files to the OS; replaced in tests.
	opener func(string) error
	// init is returned by Init, usually the scan of the start directory.
	init tea.Cmd
}

func newModel(listing *app.Model, batchSize, width int) model {
	ti := textinput.New()
	ti.Placeholder = "New name"
	ti.CharLimit = 255
	ti.Width = 50

	nameCol := width - sizeCol - modifiedCol - 8
	if nameCol < 10 {
		nameCol = 10
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: nameCol},
			{Title: "Size", Width: sizeCol},
			{Title: "Modified", Width: modifiedCol},
		}),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(styles)

	m := model{
		listing:   listing,
		events:    make(chan app.Event, 16),
		table:     t,
		textInput: ti,
		mode:      browseMode,
		batchSize: batchSize,
		nameWidth: nameCol,
		opener:    openFile,
	}

	events := m.events
	listing.Subscribe(func(e app.Event) {
		select {
		case events <- e:
		default:
			logging.L().Debug("event queue full", logging.String("event", e.Type.String()))
		}
	})

	m.syncTable()
	return m
}

func (m model) Init() tea.Cmd {
	return m.init
}

// navigate starts a background scan of path. A scan still running is
// abandoned; the listing only changes once the new scan completes.
func (m *model) navigate(path string) tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.scan = app.ScanBatches(ctx, path, m.batchSize)
	m.scanStart = time.Now()
	m.acc = app.Accumulator{}
	m.loading = true
	m.err = nil
	m.status = ""
	return waitForBatch(m.scan)
}

func waitForBatch(ch <-chan app.Batch) tea.Cmd {
	return func() tea.Msg {
		b, ok := <-ch
		if !ok {
			return scanDoneMsg{ch: ch}
		}
		return batchMsg{ch: ch, batch: b}
	}
}

func (m *model) stopScan() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.scan = nil
	m.loading = false
}

// drainEvents applies queued model events to the table.
func (m *model) drainEvents() {
	moved := false
	for {
		select {
		case e := <-m.events:
			switch e.Type {
			case app.EventPathChanged:
				moved = true
			case app.EventListingChanged:
				m.syncTable()
				if moved {
					m.table.SetCursor(0)
					moved = false
				}
			}
		default:
			return
		}
	}
}

func (m *model) syncTable() {
	n := m.listing.RowCount()
	rows := make([]table.Row, 0, n)
	for i := 0; i < n; i++ {
		name, _ := m.listing.Field(i, "fileName").(string)
		size, _ := m.listing.Field(i, "fileSize").(string)
		modified, _ := m.listing.Field(i, "modifiedDate").(time.Time)
		if isDir, _ := m.listing.Field(i, "isDir").(bool); isDir {
			name += string(filepath.Separator)
			size = ""
		}
		rows = append(rows, table.Row{truncate(name, m.nameWidth), size, modified.Format("2006-01-02 15:04")})
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= n && n > 0 {
		m.table.SetCursor(n - 1)
	}
}

func (m *model) fail(err error) {
	m.err = err
	m.status = ""
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case batchMsg:
		if msg.ch != m.scan {
			return m, nil
		}
		if err := m.acc.Add(msg.batch); err != nil {
			m.stopScan()
			m.fail(err)
			return m, nil
		}
		return m, waitForBatch(m.scan)

	case scanDoneMsg:
		if msg.ch != m.scan {
			return m, nil
		}
		acc := m.acc
		m.stopScan()
		if acc.Dir != "" {
			if err := m.listing.Commit(acc.Dir, acc.Entries); err != nil {
				m.fail(err)
			} else {
				metrics.ObserveLoadDuration(time.Since(m.scanStart))
			}
		}
		m.drainEvents()
		return m, nil

	case tea.KeyMsg:
		if m.mode == renameMode {
			return m.updateRename(msg)
		}
		return m.updateBrowse(msg)

	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	row := m.table.Cursor()

	switch {
	case key.Matches(msg, keys.quit):
		m.stopScan()
		return m, tea.Quit

	case key.Matches(msg, keys.open):
		e, ok := m.listing.Entry(row)
		if !ok {
			return m, nil
		}
		if e.IsDir {
			cmd = m.navigate(e.FilePath)
			return m, cmd
		}
		if err := m.opener(e.FilePath); err != nil {
			m.fail(err)
		}
		return m, nil

	case key.Matches(msg, keys.parent):
		if m.listing.Path() == "" {
			return m, nil
		}
		cmd = m.navigate(filepath.Dir(m.listing.Path()))
		return m, cmd

	case key.Matches(msg, keys.home):
		home := app.PathsToHome()
		cmd = m.navigate(home[len(home)-1])
		return m, cmd

	case key.Matches(msg, keys.refresh):
		if err := m.listing.Refresh(); err != nil {
			m.fail(err)
		} else {
			m.err = nil
			m.status = "refreshed"
		}
		m.drainEvents()
		return m, nil

	case key.Matches(msg, keys.remove):
		e, ok := m.listing.Entry(row)
		if !ok {
			return m, nil
		}
		if err := m.listing.Remove([]string{e.FilePath}); err != nil {
			m.fail(err)
		} else {
			m.err = nil
			m.status = fmt.Sprintf("removed %s", e.Name)
		}
		m.drainEvents()
		return m, nil

	case key.Matches(msg, keys.rename):
		e, ok := m.listing.Entry(row)
		if !ok {
			return m, nil
		}
		m.mode = renameMode
		m.textInput.SetValue(e.Name)
		m.textInput.CursorEnd()
		m.table.Blur()
		cmd = m.textInput.Focus()
		return m, cmd
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.Type {
	case tea.KeyEsc:
		m.endRename()
		return m, nil

	case tea.KeyEnter:
		name := strings.TrimSpace(m.textInput.Value())
		if !app.ValidEntryName(name) {
			m.fail(fmt.Errorf("invalid name %q", name))
			return m, nil
		}
		row := m.table.Cursor()
		if err := m.listing.Rename(row, name); err != nil {
			m.fail(err)
		} else {
			m.err = nil
			m.status = fmt.Sprintf("renamed to %s", name)
			m.drainEvents()
			if r := m.listing.RowOf(name); r >= 0 {
				m.table.SetCursor(r)
			}
		}
		m.endRename()
		return m, nil
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *model) endRename() {
	m.mode = browseMode
	m.textInput.Blur()
	m.textInput.Reset()
	m.table.Focus()
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(crumbs(m.listing.Path())))
	b.WriteString("\n")
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n")

	if m.mode == renameMode {
		b.WriteString(inputStyle.Render("Rename: " + m.textInput.View()))
		b.WriteString("\n")
	}

	st := m.listing.Stats()
	footer := fmt.Sprintf("%d dirs, %d files, %s", st.Dirs, st.Files, app.FormatSize(st.TotalSize))
	if m.loading {
		footer += fmt.Sprintf(" | loading %d entries...", len(m.acc.Entries))
	}
	if m.status != "" {
		footer += " | " + m.status
	}
	b.WriteString(statusStyle.Render(footer))
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	instructions := "Enter open, Backspace parent, r refresh, d delete, n rename, h home, Esc quit."
	if m.mode == renameMode {
		instructions = "Enter to rename, Esc to cancel."
	}

	return baseStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			b.String(),
			lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Render(instructions),
		),
	)
}
