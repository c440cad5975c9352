package suggest

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// ArtifactSuffix marks correction artifacts among a run's files. The portion
// before the suffix is the originating document's display name.
const ArtifactSuffix = ".corrections.jsonl"

// IsCorrectionArtifact reports whether the artifact filename is a correction
// log this client knows how to parse.
func IsCorrectionArtifact(name string) bool {
	return strings.HasSuffix(name, ArtifactSuffix)
}

// DocumentName extracts the display name of the document an artifact was
// generated from. Non-artifact names are returned unchanged.
func DocumentName(artifact string) string {
	return strings.TrimSuffix(artifact, ArtifactSuffix)
}

// ParseJSONL reads line-delimited JSON correction rows. Blank lines and
// lines that fail to parse are skipped, never fatal. Lines have no length
// limit; a ReadString loop avoids bufio.Scanner's token cap, which would
// abort the whole parse on one oversized line.
func ParseJSONL(r io.Reader) []CorrectionRow {
	var out []CorrectionRow

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			var row CorrectionRow
			if jsonErr := json.Unmarshal([]byte(trimmed), &row); jsonErr == nil {
				out = append(out, row)
			}
		}
		if err != nil {
			return out
		}
	}
}

// ParseJSONLString is a convenience wrapper over ParseJSONL for artifact
// bodies already held in memory.
func ParseJSONLString(text string) []CorrectionRow {
	return ParseJSONL(strings.NewReader(text))
}
