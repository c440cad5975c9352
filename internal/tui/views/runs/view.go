// Package runs implements the run watch TUI: a live run-status view that
// polls the backend until the run finishes and hands off to review.
package runs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/prooflab/redline/internal/api"
	"github.com/prooflab/redline/internal/core/styles"
	"github.com/prooflab/redline/internal/core/suggest"
)

const (
	pollRun       = "run"
	pollArtifacts = "artifacts"
)

// Opts configures a watch View.
type Opts struct {
	// Required.
	Client *api.Client
	RunID  string

	// Poll cadence; zero values fall back to the defaults below.
	RunInterval      time.Duration
	ArtifactInterval time.Duration

	Logger zerolog.Logger
}

// Default poll cadence when the config does not say otherwise.
const (
	DefaultRunInterval      = 2 * time.Second
	DefaultArtifactInterval = 3 * time.Second
)

type runStatusMsg struct {
	run api.Run
	err error
}

type artifactsMsg struct {
	files []string
	err   error
}

// View is the Bubble Tea model watching one run to completion.
type View struct {
	ctx    context.Context
	client *api.Client
	runID  string
	logger zerolog.Logger

	spin spinner.Model

	runPoll      *poller
	artifactPoll *poller

	run       api.Run
	haveRun   bool
	artifacts []string
	errMsg    string
	quitting  bool

	// reviewRequested is read by the caller after the program exits to decide
	// whether to launch the review view on this run.
	reviewRequested bool
}

// New creates a watch view for the given run.
func New(ctx context.Context, opts Opts) *View {
	if opts.Client == nil || opts.RunID == "" {
		panic("runs.New: Client and RunID are required")
	}

	runIv := opts.RunInterval
	if runIv <= 0 {
		runIv = DefaultRunInterval
	}
	artIv := opts.ArtifactInterval
	if artIv <= 0 {
		artIv = DefaultArtifactInterval
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.ColorPrimary)

	return &View{
		ctx:          ctx,
		client:       opts.Client,
		runID:        opts.RunID,
		logger:       opts.Logger,
		spin:         sp,
		runPoll:      newPoller(pollRun, runIv),
		artifactPoll: newPoller(pollArtifacts, artIv),
	}
}

// ReviewRequested reports whether the user asked to open the review view.
func (v *View) ReviewRequested() bool { return v.reviewRequested }

// Init fetches the run once immediately and arms both pollers.
func (v *View) Init() tea.Cmd {
	return tea.Batch(
		v.spin.Tick,
		v.fetchRun(),
		v.fetchArtifacts(),
		v.runPoll.Start(),
		v.artifactPoll.Start(),
	)
}

func (v *View) fetchRun() tea.Cmd {
	return func() tea.Msg {
		run, err := v.client.GetRun(v.ctx, v.runID)
		return runStatusMsg{run: run, err: err}
	}
}

func (v *View) fetchArtifacts() tea.Cmd {
	return func() tea.Msg {
		list, err := v.client.ListArtifacts(v.ctx, v.runID)
		return artifactsMsg{files: list.Files, err: err}
	}
}

// Update handles messages for the watch view.
func (v *View) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if v.finished() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case pollTickMsg:
		switch {
		case v.runPoll.Owns(msg):
			return v, tea.Batch(v.fetchRun(), v.runPoll.Next())
		case v.artifactPoll.Owns(msg):
			return v, tea.Batch(v.fetchArtifacts(), v.artifactPoll.Next())
		}
		// Stale tick from a disposed schedule.
		return v, nil

	case runStatusMsg:
		if msg.err != nil {
			v.errMsg = fmt.Sprintf("poll run: %v", msg.err)
			return v, nil
		}
		v.errMsg = ""
		v.run = msg.run
		v.haveRun = true
		if v.run.Finished() {
			// Terminal status; one last artifact listing, then stop polling.
			v.runPoll.Dispose()
			v.artifactPoll.Dispose()
			return v, v.fetchArtifacts()
		}
		return v, nil

	case artifactsMsg:
		if msg.err != nil {
			// Artifacts trail the run; a failed listing is not fatal.
			v.logger.Debug().Err(msg.err).Msg("artifact poll failed")
			return v, nil
		}
		v.artifacts = msg.files
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return v, v.teardown()
		case "r", "enter":
			if v.haveRun && v.run.Status == api.RunCompleted {
				v.reviewRequested = true
				return v, v.teardown()
			}
		}
	}

	return v, nil
}

// teardown disposes both pollers before the program exits so no scheduled
// tick outlives the view.
func (v *View) teardown() tea.Cmd {
	v.runPoll.Dispose()
	v.artifactPoll.Dispose()
	v.quitting = true
	return tea.Quit
}

func (v *View) finished() bool {
	return v.haveRun && v.run.Finished()
}

// View renders the run status and the artifacts produced so far.
func (v *View) View() string {
	if v.quitting {
		return ""
	}

	var b strings.Builder

	short := v.runID
	if len(short) > 8 {
		short = short[:8]
	}
	b.WriteString(styles.TitleStyle.Render("Run " + short))
	b.WriteString("\n")

	if !v.haveRun {
		b.WriteString(v.spin.View() + " fetching run...\n")
	} else {
		b.WriteString(v.renderStatus())
	}

	if len(v.artifacts) > 0 {
		b.WriteString("\n" + styles.SubtitleStyle.Render("Artifacts") + "\n")
		for _, f := range v.artifacts {
			marker := "  "
			if suggest.IsCorrectionArtifact(f) {
				marker = styles.SuccessStyle.Render("▸ ")
			}
			b.WriteString("  " + marker + f + "\n")
		}
	}

	if v.errMsg != "" {
		b.WriteString(styles.ErrorStyle.Render(v.errMsg) + "\n")
	}

	help := "q quit"
	if v.haveRun && v.run.Status == api.RunCompleted {
		help = "r review · q quit"
	}
	b.WriteString(styles.HelpStyle.Render(help))
	return b.String()
}

func (v *View) renderStatus() string {
	var badge string
	switch v.run.Status {
	case api.RunCompleted:
		badge = styles.SuccessStyle.Render("completed")
	case api.RunFailed:
		badge = styles.ErrorStyle.Render("failed")
	case api.RunRunning:
		badge = v.spin.View() + styles.WarningStyle.Render("running")
	default:
		badge = v.spin.View() + styles.TextMutedStyle.Render(v.run.Status)
	}

	out := "status: " + badge + "\n"
	if !v.run.CreatedAt.IsZero() {
		out += styles.TextMutedStyle.Render("started "+v.run.CreatedAt.Local().Format("2006-01-02 15:04:05")) + "\n"
	}
	return out
}
