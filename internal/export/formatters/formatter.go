// Package formatters renders extraction and generation results in the
// formats accepted by the export command.
package formatters

import (
	"time"

	"github.com/unhappychoice/gittype-sub005/internal/challenge"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
)

// DocumentVersion is the schema version written into every export.
const DocumentVersion = 1

// Document is the payload handed to a Formatter. Either slice may be empty.
type Document struct {
	Version    int                   `json:"version" yaml:"version" toml:"version"`
	ExportedAt time.Time             `json:"exported_at" yaml:"exported_at" toml:"exported_at"`
	Root       string                `json:"root,omitempty" yaml:"root,omitempty" toml:"root,omitempty"`
	Summary    Summary               `json:"summary" yaml:"summary" toml:"summary"`
	Chunks     []chunkers.Chunk      `json:"chunks,omitempty" yaml:"chunks,omitempty" toml:"chunks,omitempty"`
	Challenges []challenge.Challenge `json:"challenges,omitempty" yaml:"challenges,omitempty" toml:"challenges,omitempty"`
}

// Summary aggregates counts over a Document.
type Summary struct {
	ChunkCount     int            `json:"chunk_count" yaml:"chunk_count" toml:"chunk_count"`
	ChallengeCount int            `json:"challenge_count" yaml:"challenge_count" toml:"challenge_count"`
	Languages      map[string]int `json:"languages,omitempty" yaml:"languages,omitempty" toml:"languages,omitempty"`
	Difficulties   map[string]int `json:"difficulties,omitempty" yaml:"difficulties,omitempty" toml:"difficulties,omitempty"`
}

// NewDocument builds a document and fills in its summary.
func NewDocument(root string, chunks []chunkers.Chunk, challenges []challenge.Challenge) *Document {
	doc := &Document{
		Version:    DocumentVersion,
		ExportedAt: time.Now().UTC().Truncate(time.Second),
		Root:       root,
		Chunks:     chunks,
		Challenges: challenges,
	}
	doc.Summarize()
	return doc
}

// Summarize recomputes the summary from the current chunks and challenges.
func (d *Document) Summarize() {
	s := Summary{
		ChunkCount:     len(d.Chunks),
		ChallengeCount: len(d.Challenges),
	}
	for _, c := range d.Chunks {
		if s.Languages == nil {
			s.Languages = make(map[string]int)
		}
		s.Languages[c.Language]++
	}
	for _, c := range d.Challenges {
		if s.Difficulties == nil {
			s.Difficulties = make(map[string]int)
		}
		s.Difficulties[c.Difficulty.String()]++
	}
	d.Summary = s
}

// Formatter formats a document into a specific output format.
type Formatter interface {
	// Format converts the document to the output format.
	Format(doc *Document) ([]byte, error)

	// Name returns the formatter name.
	Name() string

	// ContentType returns the MIME content type.
	ContentType() string

	// FileExtension returns the typical file extension.
	FileExtension() string
}
