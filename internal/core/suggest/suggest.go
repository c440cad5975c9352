// Package suggest holds the domain model for correction suggestions: the
// persistent server-owned Suggestion, the ephemeral CorrectionRow parsed from
// JSONL artifacts, and the Row union both normalize into for review.
package suggest

// Status is the review status of a persistent suggestion. Transitions are
// pending→accepted or pending→rejected only; the client never reverses them.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Suggestion is the server-owned persistent suggestion record. The server is
// the sole owner of suggestion truth; the client only holds snapshots of it.
type Suggestion struct {
	ID             string   `json:"id"`
	RunID          string   `json:"run_id"`
	DocumentID     string   `json:"document_id"`
	TokenID        int      `json:"token_id"`
	Line           int      `json:"line"`
	SuggestionType string   `json:"suggestion_type"`
	Severity       string   `json:"severity"`
	Before         string   `json:"before"`
	After          string   `json:"after"`
	Reason         string   `json:"reason"`
	Source         string   `json:"source"`
	Confidence     *float64 `json:"confidence"`
	Context        string   `json:"context"`
	Sentence       string   `json:"sentence"`
	Status         Status   `json:"status"`
}

// CorrectionRow is a single entry of a .corrections.jsonl artifact. It has no
// identity; equality is positional within the parsed slice.
type CorrectionRow struct {
	TokenID    int    `json:"token_id"`
	Line       int    `json:"line"`
	Original   string `json:"original"`
	Corrected  string `json:"corrected"`
	Reason     string `json:"reason"`
	Context    string `json:"context"`
	Sentence   string `json:"sentence"`
	ChunkIndex int    `json:"chunk_index"`
	Document   string `json:"document,omitempty"`
}

// Kind discriminates the two row shapes a review table can receive.
type Kind int

const (
	// KindLegacy is a row parsed from a JSONL artifact: no identity, no
	// status, read-only in the review UI.
	KindLegacy Kind = iota
	// KindPersistent is a row backed by a server-side Suggestion with an id
	// and a mutable status.
	KindPersistent
)

// Row is the single rendering contract the review table consumes. Consumers
// switch on Kind; ID and Status are only meaningful for KindPersistent.
type Row struct {
	Kind      Kind
	ID        string
	Original  string
	Corrected string
	Reason    string
	Context   string
	Sentence  string
	Line      int
	Document  string
	Status    Status
}

// FromSuggestion normalizes a persistent suggestion into a Row
// (before→Original, after→Corrected).
func FromSuggestion(s Suggestion) Row {
	return Row{
		Kind:      KindPersistent,
		ID:        s.ID,
		Original:  s.Before,
		Corrected: s.After,
		Reason:    s.Reason,
		Context:   s.Context,
		Sentence:  s.Sentence,
		Line:      s.Line,
		Status:    s.Status,
	}
}

// FromCorrection normalizes a legacy JSONL row into a Row. The document tag
// carries the originating artifact's display name in multi-document mode.
func FromCorrection(c CorrectionRow) Row {
	return Row{
		Kind:      KindLegacy,
		Original:  c.Original,
		Corrected: c.Corrected,
		Reason:    c.Reason,
		Context:   c.Context,
		Sentence:  c.Sentence,
		Line:      c.Line,
		Document:  c.Document,
	}
}

// Snippet returns the text the highlighter should decorate for this row:
// the sentence when present, otherwise the context.
func (r Row) Snippet() string {
	if r.Sentence != "" {
		return r.Sentence
	}
	return r.Context
}

// Pending reports whether the row is a persistent suggestion still awaiting
// review. Legacy rows are never pending.
func (r Row) Pending() bool {
	return r.Kind == KindPersistent && r.Status == StatusPending
}

// Stats are derived counts over a row collection. They are recomputed on
// every refresh and never persisted.
type Stats struct {
	Pending  int
	Accepted int
	Rejected int
	Total    int
}

// Compute tallies statuses over the given rows. Legacy rows only contribute
// to Total.
func Compute(rows []Row) Stats {
	st := Stats{Total: len(rows)}
	for _, r := range rows {
		if r.Kind != KindPersistent {
			continue
		}
		switch r.Status {
		case StatusPending:
			st.Pending++
		case StatusAccepted:
			st.Accepted++
		case StatusRejected:
			st.Rejected++
		}
	}
	return st
}

// Reviewed returns the number of persistent rows that are no longer pending.
func (s Stats) Reviewed() int {
	return s.Accepted + s.Rejected
}
