package review

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prooflab/redline/internal/api"
	"github.com/prooflab/redline/internal/core/styles"
	"github.com/prooflab/redline/internal/core/suggest"
	"github.com/prooflab/redline/internal/tui/components"
)

// Opts configures a review View.
type Opts struct {
	// Required.
	Client *api.Client
	RunID  string

	// Optional.
	ExportDir string
	ExportExt string
	Logger    zerolog.Logger
}

// View is the Bubble Tea model for reviewing a run's suggestions.
type View struct {
	ctx    context.Context
	client *api.Client
	runID  string
	logger zerolog.Logger

	ctrl        *Controller
	searchInput textinput.Model
	searching   bool
	spin        spinner.Model

	// Mode resolution: the persistent-suggestion fetch is attempted exactly
	// once; on failure the view settles into read-only legacy mode and never
	// re-attempts the primary path for this run.
	loading bool
	legacy  bool

	// busy disables all mutating controls while a server call is in flight.
	busy bool

	modal       *components.ConfirmModal
	modalAction suggest.Status

	cursor   int
	docIdx   int // index into ctrl.Documents(), -1 = all
	width    int
	height   int
	errMsg   string
	notice   string
	quitting bool

	exportDir string
	exportExt string
}

// New creates a review view for the given run.
func New(ctx context.Context, opts Opts) *View {
	if opts.Client == nil || opts.RunID == "" {
		panic("review.New: Client and RunID are required")
	}

	ti := textinput.New()
	ti.Placeholder = "filter (word, reason, sentence)"
	ti.CharLimit = 100
	ti.Prompt = "/"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.ColorPrimary)

	ext := opts.ExportExt
	if ext == "" {
		ext = "docx"
	}

	return &View{
		ctx:         ctx,
		client:      opts.Client,
		runID:       opts.RunID,
		logger:      opts.Logger,
		ctrl:        NewController(),
		searchInput: ti,
		spin:        sp,
		loading:     true,
		docIdx:      -1,
		exportDir:   opts.ExportDir,
		exportExt:   ext,
	}
}

// Init starts the spinner and the primary suggestion fetch.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.spin.Tick, v.loadSuggestions())
}

// --- Commands ---

func (v *View) loadSuggestions() tea.Cmd {
	return func() tea.Msg {
		list, err := v.client.ListSuggestions(v.ctx, v.runID, "")
		return suggestionsMsg{list: list, err: err}
	}
}

func (v *View) loadLegacy() tea.Cmd {
	return func() tea.Msg {
		rows, err := loadLegacyRows(v.ctx, v.client, v.runID)
		return legacyMsg{rows: rows, err: err}
	}
}

func (v *View) acceptRejectOne(id string, status suggest.Status) tea.Cmd {
	return func() tea.Msg {
		_, err := v.client.UpdateSuggestion(v.ctx, id, status)
		return mutationMsg{action: string(status), err: err}
	}
}

func (v *View) bulkUpdate(ids []string, status suggest.Status) tea.Cmd {
	return func() tea.Msg {
		_, err := v.client.BulkUpdate(v.ctx, v.runID, ids, status)
		return mutationMsg{action: "bulk " + string(status), err: err}
	}
}

func (v *View) updateAll(status suggest.Status) tea.Cmd {
	return func() tea.Msg {
		var err error
		if status == suggest.StatusAccepted {
			_, err = v.client.AcceptAll(v.ctx, v.runID)
		} else {
			_, err = v.client.RejectAll(v.ctx, v.runID)
		}
		return mutationMsg{action: string(status) + " all", err: err}
	}
}

func (v *View) export() tea.Cmd {
	return func() tea.Msg {
		data, err := v.client.ExportAccepted(v.ctx, v.runID)
		if err != nil {
			return exportMsg{err: err}
		}
		path := filepath.Join(v.exportDir, ExportFilename(v.runID, v.exportExt))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return exportMsg{err: fmt.Errorf("write export: %w", err)}
		}
		return exportMsg{path: path}
	}
}

// ExportFilename is the download name for an accepted-only export:
// run_<first-8-hex-of-id>_accepted.<ext>.
func ExportFilename(runID, ext string) string {
	short := runID
	if parsed, err := uuid.Parse(runID); err == nil {
		short = parsed.String()
	}
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("run_%s_accepted.%s", short, ext)
}

// --- Update ---

// Update handles messages for the review view.
func (v *View) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case spinner.TickMsg:
		if !v.loading && !v.busy {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case suggestionsMsg:
		return v.onSuggestions(msg)

	case legacyMsg:
		return v.onLegacy(msg)

	case mutationMsg:
		v.busy = false
		if msg.err != nil {
			// Prior state stays intact; the server applied nothing we can
			// see until the next successful refetch.
			v.errMsg = fmt.Sprintf("%s failed: %v", msg.action, msg.err)
			v.logger.Error().Err(msg.err).Str("action", msg.action).Msg("mutation failed")
			return v, nil
		}
		v.notice = msg.action + " applied"
		v.ctrl.ClearSelection()
		v.loading = true
		return v, tea.Batch(v.spin.Tick, v.loadSuggestions())

	case exportMsg:
		v.busy = false
		if msg.err != nil {
			v.errMsg = fmt.Sprintf("export failed: %v", msg.err)
			return v, nil
		}
		v.notice = "exported to " + msg.path
		return v, nil

	case tea.KeyMsg:
		return v.onKey(msg)
	}

	return v, nil
}

func (v *View) onSuggestions(msg suggestionsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if v.legacy {
			// Refetch raced a fallback; legacy mode already active.
			return v, nil
		}
		v.logger.Debug().Err(msg.err).Msg("no persistent suggestions, falling back to artifacts")
		v.legacy = true
		return v, v.loadLegacy()
	}

	v.loading = false
	rows := make([]suggest.Row, 0, len(msg.list.Suggestions))
	for _, s := range msg.list.Suggestions {
		rows = append(rows, suggest.FromSuggestion(s))
	}
	v.ctrl.SetRows(rows)
	v.clampCursor()
	return v, nil
}

func (v *View) onLegacy(msg legacyMsg) (tea.Model, tea.Cmd) {
	v.loading = false
	if msg.err != nil {
		v.errMsg = fmt.Sprintf("load corrections: %v", msg.err)
		return v, nil
	}

	rows := make([]suggest.Row, 0, len(msg.rows))
	for _, c := range msg.rows {
		rows = append(rows, suggest.FromCorrection(c))
	}
	v.ctrl.SetRows(rows)
	v.clampCursor()
	return v, nil
}

func (v *View) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal captures all input while open.
	if v.modal != nil {
		modal, cmd := v.modal.Update(msg)
		v.modal = &modal
		switch {
		case modal.Confirmed():
			action := v.modalAction
			v.modal = nil
			v.busy = true
			return v, tea.Batch(v.spin.Tick, v.updateAll(action))
		case modal.Cancelled():
			v.modal = nil
		}
		return v, cmd
	}

	// Search input captures printable keys while focused.
	if v.searching {
		switch msg.String() {
		case "enter":
			v.searching = false
			v.searchInput.Blur()
			return v, nil
		case "esc":
			v.searching = false
			v.searchInput.Blur()
			v.searchInput.SetValue("")
			v.ctrl.SetQuery("")
			v.clampCursor()
			return v, nil
		default:
			var cmd tea.Cmd
			v.searchInput, cmd = v.searchInput.Update(msg)
			v.ctrl.SetQuery(v.searchInput.Value())
			v.clampCursor()
			return v, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		v.quitting = true
		return v, tea.Quit

	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.ctrl.Visible())-1 {
			v.cursor++
		}

	case "/":
		v.searching = true
		v.errMsg = ""
		return v, v.searchInput.Focus()

	case "v":
		v.ctrl.CycleView()

	case "d":
		v.cycleDocument()

	case " ":
		if row, ok := v.currentRow(); ok && !v.legacy {
			v.ctrl.ToggleSelect(row.ID)
		}

	case "ctrl+a":
		if !v.legacy {
			v.ctrl.ToggleAll()
		}

	case "a":
		return v.mutateSelection(suggest.StatusAccepted)
	case "r":
		return v.mutateSelection(suggest.StatusRejected)

	case "A":
		return v.openAllModal(suggest.StatusAccepted)
	case "R":
		return v.openAllModal(suggest.StatusRejected)

	case "e":
		if v.legacy || v.busy {
			return v, nil
		}
		v.busy = true
		v.errMsg = ""
		return v, tea.Batch(v.spin.Tick, v.export())
	}

	return v, nil
}

// mutateSelection accepts or rejects the current selection, or the cursor
// row when nothing is selected.
func (v *View) mutateSelection(status suggest.Status) (tea.Model, tea.Cmd) {
	if v.legacy || v.busy {
		return v, nil
	}

	v.errMsg = ""
	if ids := v.ctrl.Selected(); len(ids) > 0 {
		v.busy = true
		return v, tea.Batch(v.spin.Tick, v.bulkUpdate(ids, status))
	}
	if row, ok := v.currentRow(); ok && row.Pending() {
		v.busy = true
		return v, tea.Batch(v.spin.Tick, v.acceptRejectOne(row.ID, status))
	}
	return v, nil
}

func (v *View) openAllModal(status suggest.Status) (tea.Model, tea.Cmd) {
	if v.legacy || v.busy {
		return v, nil
	}
	pending := v.ctrl.Stats().Pending
	if pending == 0 {
		return v, nil
	}

	verb := "Accept"
	if status == suggest.StatusRejected {
		verb = "Reject"
	}
	modal := components.NewConfirmModal(fmt.Sprintf("%s ALL %d pending suggestions for this run?", verb, pending))
	v.modal = &modal
	v.modalAction = status
	return v, nil
}

func (v *View) cycleDocument() {
	docs := v.ctrl.Documents()
	if len(docs) == 0 {
		return
	}
	v.docIdx++
	if v.docIdx >= len(docs) {
		v.docIdx = -1
	}
	if v.docIdx < 0 {
		v.ctrl.SetDocument("")
	} else {
		v.ctrl.SetDocument(docs[v.docIdx])
	}
	v.clampCursor()
}

func (v *View) currentRow() (suggest.Row, bool) {
	visible := v.ctrl.Visible()
	if v.cursor < 0 || v.cursor >= len(visible) {
		return suggest.Row{}, false
	}
	return visible[v.cursor], true
}

func (v *View) clampCursor() {
	if n := len(v.ctrl.Visible()); v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// --- View ---

// View renders the review table.
func (v *View) View() string {
	if v.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(v.renderHeader())
	b.WriteString("\n")

	if v.loading {
		b.WriteString(v.spin.View() + " loading corrections...\n")
		return b.String()
	}

	if v.modal != nil {
		b.WriteString(v.modal.View())
		b.WriteString("\n")
		return b.String()
	}

	if v.searching || v.searchInput.Value() != "" {
		b.WriteString(v.searchInput.View())
		b.WriteString("\n")
	}

	visible := v.ctrl.Visible()
	if len(visible) == 0 {
		if len(v.ctrl.Rows()) == 0 {
			b.WriteString(styles.TextMutedStyle.Render("No corrections found for this run."))
		} else {
			b.WriteString(styles.TextMutedStyle.Render("No rows match the current filter."))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(v.renderRows(visible))
	}

	b.WriteString(v.renderFooter())
	return b.String()
}

func (v *View) renderHeader() string {
	short := v.runID
	if len(short) > 8 {
		short = short[:8]
	}
	title := styles.TitleStyle.Render("Corrections · run " + short)
	if v.legacy {
		title += " " + styles.WarningStyle.Render("[read-only]")
	}

	st := v.ctrl.Stats()
	var parts []string
	parts = append(parts, fmt.Sprintf("%d total", st.Total))
	if !v.legacy {
		parts = append(parts,
			styles.StatusBadge["pending"].Render(fmt.Sprintf("%d pending", st.Pending)),
			styles.StatusBadge["accepted"].Render(fmt.Sprintf("%d accepted", st.Accepted)),
			styles.StatusBadge["rejected"].Render(fmt.Sprintf("%d rejected", st.Rejected)),
		)
	}
	if doc := v.ctrl.Document(); doc != "" {
		parts = append(parts, styles.SubtitleStyle.Render("doc: "+doc))
	}
	stats := styles.StatusBarStyle.Render(strings.Join(parts, " · "))

	out := title + "\n" + stats
	if !v.legacy && st.Total > 0 {
		out += "\n" + v.renderProgress(st)
	}
	return out + "\n"
}

func (v *View) renderProgress(st suggest.Stats) string {
	width := v.width - 20
	if width < 10 {
		width = 40
	}
	filled := 0
	if st.Total > 0 {
		filled = width * st.Reviewed() / st.Total
	}
	bar := styles.ProgressFillStyle.Render(strings.Repeat("█", filled)) +
		styles.ProgressTrackStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %d/%d reviewed", bar, st.Reviewed(), st.Total)
}

func (v *View) renderRows(visible []suggest.Row) string {
	// Window the rows around the cursor so the cursor is always on screen.
	perRow := 2
	if v.ctrl.View() != ViewInline {
		perRow = 3
	}
	max := 10
	if v.height > 0 {
		max = (v.height - 8) / perRow
		if max < 3 {
			max = 3
		}
	}

	start := 0
	if v.cursor >= max {
		start = v.cursor - max + 1
	}
	end := start + max
	if end > len(visible) {
		end = len(visible)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(v.renderRow(i, visible[i]))
	}
	return b.String()
}

func (v *View) renderRow(index int, row suggest.Row) string {
	cursor := "  "
	if index == v.cursor {
		cursor = styles.TextPrimaryStyle.Render("> ")
	}

	marker := "   "
	if !v.legacy {
		switch {
		case v.ctrl.IsSelected(row.ID):
			marker = styles.SelectedRowStyle.Render("[x]")
		case row.Pending():
			marker = "[ ]"
		default:
			marker = " " + styles.StatusBadge[string(row.Status)].Render(statusGlyph(row.Status)) + " "
		}
	}

	line := "-"
	if row.Line > 0 {
		line = fmt.Sprintf("%d", row.Line)
	}
	meta := styles.TextMutedStyle.Render(fmt.Sprintf("#%d · line %s", index+1, line))
	if row.Reason != "" {
		meta += " · " + styles.TextMutedStyle.Render(row.Reason)
	}
	if row.Document != "" {
		meta += " · " + styles.SubtitleStyle.Render(row.Document)
	}

	var body string
	snippet := row.Snippet()
	switch v.ctrl.View() {
	case ViewStacked:
		body = "  " + Highlight(snippet, row.Original, row.Corrected, ModeBefore) + "\n" +
			"  " + Highlight(snippet, row.Original, row.Corrected, ModeAfter)
	case ViewSide:
		before := Highlight(snippet, row.Original, row.Corrected, ModeBefore)
		after := Highlight(snippet, row.Original, row.Corrected, ModeAfter)
		body = "  " + lipgloss.JoinHorizontal(lipgloss.Top, before, styles.ArrowStyle.Render("  │  "), after)
	default:
		body = "  " + Highlight(snippet, row.Original, row.Corrected, ModeInline)
	}

	return fmt.Sprintf("%s%s %s\n%s\n", cursor, marker, meta, body)
}

func (v *View) renderFooter() string {
	var b strings.Builder

	if v.errMsg != "" {
		b.WriteString(styles.ErrorStyle.Render(v.errMsg))
		b.WriteString("\n")
	} else if v.notice != "" {
		b.WriteString(styles.SuccessStyle.Render(v.notice))
		b.WriteString("\n")
	}

	if v.busy {
		b.WriteString(v.spin.View() + " working...\n")
	}

	var help string
	if v.legacy {
		help = "↑/↓ navigate · / filter · v view · d document · q quit"
	} else {
		n := v.ctrl.SelectedCount()
		bulk := "a/r accept/reject row"
		if n > 0 {
			bulk = fmt.Sprintf("a/r accept/reject %d selected", n)
		}
		help = "↑/↓ navigate · space select · ctrl+a select all · " + bulk +
			" · A/R all · e export · / filter · v view · q quit"
	}
	b.WriteString(styles.HelpStyle.Render(help))
	return b.String()
}

func statusGlyph(s suggest.Status) string {
	switch s {
	case suggest.StatusAccepted:
		return "✓"
	case suggest.StatusRejected:
		return "✗"
	default:
		return "·"
	}
}
