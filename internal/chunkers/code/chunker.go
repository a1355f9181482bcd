package code

import (
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
)

// Size thresholds applied during extraction.
const (
	// MinChunkBytes is the smallest top-level chunk kept.
	MinChunkBytes = 10

	// MinNestedParentLines is the smallest chunk searched for nested chunks.
	MinNestedParentLines = 3

	// MinNestedLines, MinNestedBytes and MaxNestedBytes bound nested chunks.
	MinNestedLines = 2
	MinNestedBytes = 30
	MaxNestedBytes = 2000
)

// Extractor walks a syntax tree with a language's queries and emits chunks.
type Extractor struct {
	logger *slog.Logger
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithExtractorLogger sets the logger used for debug output.
func WithExtractorLogger(logger *slog.Logger) ExtractorOption {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates an Extractor.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type byteSpan struct {
	start, end uint32
}

type topLevel struct {
	chunk chunkers.Chunk
	node  *sitter.Node
}

// Extract returns the File chunk for source followed by one chunk per
// top-level construct and then the nested implementation chunks of each
// top-level construct. A tree with no matches yields only the File chunk.
func (e *Extractor) Extract(tree *sitter.Tree, source []byte, filePath string, lang *Language) []chunkers.Chunk {
	text := string(source)
	cache := chunkers.NewPositionCache(text)
	comments := ExtractComments(tree, source, lang, cache)

	chunks := []chunkers.Chunk{{
		Language:      lang.Name(),
		Kind:          chunkers.KindFile,
		Name:          filepath.Base(filePath),
		FilePath:      filePath,
		StartLine:     1,
		EndLine:       chunkers.CountLines(text),
		Content:       text,
		CommentRanges: comments,
	}}

	seen := make(map[byteSpan]bool)
	var tops []topLevel

	eachCapture(lang.ChunkQuery, tree.RootNode(), source, func(kind chunkers.Kind, node *sitter.Node) {
		span := byteSpan{node.StartByte(), node.EndByte()}
		if seen[span] {
			return
		}
		raw := text[span.start:span.end]
		if len(raw) < MinChunkBytes || strings.TrimSpace(raw) == "" {
			return
		}
		seen[span] = true

		content, indent := normalize(raw, text, node, cache)
		ranges := chunkers.ClipRanges(comments, cache.ByteToChar(int(span.start)), cache.ByteToChar(int(span.end)))

		tops = append(tops, topLevel{
			chunk: chunkers.Chunk{
				Language:      lang.Name(),
				Kind:          kind,
				Name:          lang.Strategy.ExtractName(node, source),
				FilePath:      filePath,
				StartLine:     int(node.StartPoint().Row) + 1,
				EndLine:       endLine(node),
				Content:       content,
				CommentRanges: chunkers.ShiftRanges(ranges, utf8.RuneCountInString(indent)),
				Indent:        indent,
			},
			node: node,
		})
	})

	for _, top := range tops {
		chunks = append(chunks, top.chunk)
	}

	for _, top := range tops {
		chunks = append(chunks, e.extractNested(top, text, source, lang, cache, seen)...)
	}

	e.logger.Debug("extracted chunks",
		"path", filePath,
		"language", lang.Name(),
		"top_level", len(tops),
		"total", len(chunks))

	return chunks
}

func (e *Extractor) extractNested(parent topLevel, text string, source []byte, lang *Language, cache *chunkers.PositionCache, seen map[byteSpan]bool) []chunkers.Chunk {
	if parent.chunk.LineCount() < MinNestedParentLines {
		return nil
	}

	parentCache := chunkers.NewPositionCache(parent.chunk.Content)
	var nested []chunkers.Chunk

	eachCapture(lang.NestedQuery, parent.node, source, func(kind chunkers.Kind, node *sitter.Node) {
		span := byteSpan{node.StartByte(), node.EndByte()}
		if seen[span] {
			return
		}
		raw := text[span.start:span.end]
		startLine := int(node.StartPoint().Row) + 1
		lines := endLine(node) - startLine + 1
		if lines < MinNestedLines || len(raw) < MinNestedBytes || len(raw) > MaxNestedBytes {
			return
		}
		seen[span] = true

		content, indent := normalize(raw, text, node, cache)
		nested = append(nested, chunkers.Chunk{
			Language:      lang.Name(),
			Kind:          kind,
			Name:          lang.Strategy.ExtractName(node, source),
			FilePath:      parent.chunk.FilePath,
			StartLine:     startLine,
			EndLine:       endLine(node),
			Content:       content,
			CommentRanges: chunkers.RemapToChild(parent.chunk.CommentRanges, parentCache, parent.chunk.Content, content),
			Indent:        indent,
		})
	})

	return nested
}

func normalize(raw, text string, node *sitter.Node, cache *chunkers.PositionCache) (string, string) {
	start := node.StartPoint()
	return chunkers.NormalizeIndent(raw, text, int(start.Row), int(start.Column), cache)
}

// endLine returns the 1-indexed last line of node. A node whose span ends
// at column zero stops on the previous line.
func endLine(node *sitter.Node) int {
	start, end := node.StartPoint(), node.EndPoint()
	if end.Column == 0 && end.Row > start.Row {
		return int(end.Row)
	}
	return int(end.Row) + 1
}
