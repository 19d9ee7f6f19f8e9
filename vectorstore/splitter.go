// Copyright (c) Microsoft. All rights reserved.

package vectorstore

import "strings"

// Splitter chunks text recursively by a separator hierarchy: paragraphs
// first, then lines, then words, then runes. Chunks respect ChunkSize where
// possible and adjacent chunks share ChunkOverlap characters of context.
type Splitter struct {
	// ChunkSize is the target maximum chunk length in characters. Default: 1000.
	ChunkSize int

	// ChunkOverlap is how many characters consecutive chunks share. Default: 200.
	ChunkOverlap int

	separators []string
}

// NewSplitter creates a Splitter with the given chunk size and overlap.
func NewSplitter(chunkSize, chunkOverlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 5
	}
	return &Splitter{
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
		separators:   []string{"\n\n", "\n", " ", ""},
	}
}

// SplitText splits text into chunks of at most ChunkSize characters.
func (s *Splitter) SplitText(text string) []string {
	if text == "" {
		return nil
	}
	return s.split(text, s.separators)
}

// SplitDocuments splits each document's content, producing one document per
// chunk. Metadata is carried over to every chunk; chunk documents get fresh
// IDs assigned by the store on insert.
func (s *Splitter) SplitDocuments(docs []Document) []Document {
	var out []Document
	for _, d := range docs {
		for _, chunk := range s.SplitText(d.Content) {
			out = append(out, Document{
				Content:  chunk,
				Metadata: d.Metadata,
			})
		}
	}
	return out
}

func (s *Splitter) split(text string, separators []string) []string {
	if len(text) <= s.ChunkSize {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			return []string{trimmed}
		}
		return nil
	}

	sep := separators[0]
	rest := separators
	if len(separators) > 1 {
		rest = separators[1:]
	}

	// Rune-level fallback: hard split with overlap.
	if sep == "" {
		return s.hardSplit(text)
	}

	parts := strings.Split(text, sep)

	var chunks []string
	var current strings.Builder
	flush := func() {
		if trimmed := strings.TrimSpace(current.String()); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
		current.Reset()
	}

	for _, part := range parts {
		if len(part) > s.ChunkSize {
			// Part alone exceeds the chunk size: flush and recurse with finer separators.
			flush()
			chunks = append(chunks, s.split(part, rest)...)
			continue
		}
		if current.Len() > 0 && current.Len()+len(sep)+len(part) > s.ChunkSize {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(sep)
		}
		current.WriteString(part)
	}
	flush()

	return s.withOverlap(chunks)
}

// hardSplit cuts text at rune boundaries every ChunkSize characters.
func (s *Splitter) hardSplit(text string) []string {
	runes := []rune(text)
	step := s.ChunkSize - s.ChunkOverlap
	if step <= 0 {
		step = s.ChunkSize
	}

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + s.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}

// withOverlap prefixes each chunk after the first with the tail of its
// predecessor.
func (s *Splitter) withOverlap(chunks []string) []string {
	if s.ChunkOverlap == 0 || len(chunks) < 2 {
		return chunks
	}
	out := make([]string, len(chunks))
	out[0] = chunks[0]
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		overlap := s.ChunkOverlap
		if overlap > len(prev) {
			overlap = len(prev)
		}
		tail := strings.TrimSpace(string(prev[len(prev)-overlap:]))
		if tail != "" {
			out[i] = tail + " " + chunks[i]
		} else {
			out[i] = chunks[i]
		}
	}
	return out
}
