package runs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prooflab/redline/internal/api"
)

func TestPollerLifecycle(t *testing.T) {
	p := newPoller("run", time.Millisecond)

	cmd := p.Start()
	require.NotNil(t, cmd)

	tick := cmd().(pollTickMsg)
	assert.True(t, p.Owns(tick))

	// Disposal invalidates ticks already in flight.
	p.Dispose()
	assert.False(t, p.Owns(tick))
	assert.Nil(t, p.Next())

	// Restarting opens a new generation; the stale tick stays dead.
	cmd = p.Start()
	fresh := cmd().(pollTickMsg)
	assert.True(t, p.Owns(fresh))
	assert.False(t, p.Owns(tick))
}

func TestPollerIgnoresOtherNames(t *testing.T) {
	run := newPoller("run", time.Millisecond)
	art := newPoller("artifacts", time.Millisecond)
	_ = run.Start()
	_ = art.Start()

	tick := art.schedule()().(pollTickMsg)
	assert.True(t, art.Owns(tick))
	assert.False(t, run.Owns(tick))
}

func runBackend(status *atomic.Value, files *atomic.Value) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /runs/run-1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.Run{ID: "run-1", Status: status.Load().(string)})
	})
	mux.HandleFunc("GET /runs/run-1/artifacts", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.ArtifactList{Files: files.Load().([]string)})
	})
	return mux
}

func newTestView(t *testing.T, srvURL string) *View {
	t.Helper()
	client, err := api.New(srvURL, nil)
	require.NoError(t, err)
	return New(context.Background(), Opts{Client: client, RunID: "run-1"})
}

func TestWatchStopsPollingOnTerminalStatus(t *testing.T) {
	var status, files atomic.Value
	status.Store(api.RunRunning)
	files.Store([]string{})
	srv := httptest.NewServer(runBackend(&status, &files))
	defer srv.Close()

	v := newTestView(t, srv.URL)

	msg := v.fetchRun()()
	_, _ = v.Update(msg)
	require.True(t, v.haveRun)
	assert.Equal(t, api.RunRunning, v.run.Status)
	assert.True(t, v.runPoll.active)

	// A live tick re-arms the schedule.
	_, cmd := v.Update(pollTickMsg{name: pollRun, gen: v.runPoll.gen})
	assert.NotNil(t, cmd)

	status.Store(api.RunCompleted)
	files.Store([]string{"a.docx.corrections.jsonl", "summary.md"})

	msg = v.fetchRun()()
	_, cmd = v.Update(msg)
	assert.True(t, v.run.Finished())
	assert.False(t, v.runPoll.active, "terminal status disposes the run poller")
	assert.False(t, v.artifactPoll.active, "terminal status disposes the artifact poller")

	// The final artifact fetch scheduled by the terminal transition.
	require.NotNil(t, cmd)
	_, _ = v.Update(cmd())
	assert.Equal(t, []string{"a.docx.corrections.jsonl", "summary.md"}, v.artifacts)

	// Ticks still in flight from before disposal are dropped, not re-armed.
	_, cmd = v.Update(pollTickMsg{name: pollRun, gen: v.runPoll.gen - 1})
	assert.Nil(t, cmd)
}

func TestWatchQuitDisposesPollers(t *testing.T) {
	var status, files atomic.Value
	status.Store(api.RunRunning)
	files.Store([]string{})
	srv := httptest.NewServer(runBackend(&status, &files))
	defer srv.Close()

	v := newTestView(t, srv.URL)
	_ = v.Init()
	require.True(t, v.runPoll.active)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.False(t, v.runPoll.active)
	assert.False(t, v.artifactPoll.active)
	assert.False(t, v.ReviewRequested())
}

func TestWatchReviewHandoff(t *testing.T) {
	var status, files atomic.Value
	status.Store(api.RunCompleted)
	files.Store([]string{})
	srv := httptest.NewServer(runBackend(&status, &files))
	defer srv.Close()

	v := newTestView(t, srv.URL)
	_, _ = v.Update(v.fetchRun()().(runStatusMsg))

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)
	assert.True(t, v.ReviewRequested())
}

func TestWatchReviewUnavailableWhileRunning(t *testing.T) {
	var status, files atomic.Value
	status.Store(api.RunRunning)
	files.Store([]string{})
	srv := httptest.NewServer(runBackend(&status, &files))
	defer srv.Close()

	v := newTestView(t, srv.URL)
	_, _ = v.Update(v.fetchRun()().(runStatusMsg))

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Nil(t, cmd)
	assert.False(t, v.ReviewRequested())
}

func TestWatchPollErrorIsTransient(t *testing.T) {
	v := newTestView(t, "http://127.0.0.1:0")

	_, _ = v.Update(v.fetchRun()().(runStatusMsg))
	assert.NotEmpty(t, v.errMsg)
	assert.False(t, v.haveRun)

	// Artifact poll failures never surface; listings trail the run.
	_, _ = v.Update(artifactsMsg{err: assert.AnError})
	assert.Empty(t, v.artifacts)
}
