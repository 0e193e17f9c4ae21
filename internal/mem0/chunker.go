package mem0

import "strings"

// SplitPayload splits a payload into ordered chunks along line boundaries.
// Whole lines are accumulated until adding the next one would push the chunk
// past chunkSize; a single line longer than maxChunkSize is force-split at
// the maxChunkSize byte boundary instead of failing. Concatenating the
// returned chunks in order reproduces the payload exactly. Empty input
// yields a single empty chunk.
//
// The function is pure: no side effects, deterministic for identical input
// and parameters.
func SplitPayload(payload string, chunkSize, maxChunkSize int) []string {
	if len(payload) <= chunkSize {
		return []string{payload}
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	// Lines keep their trailing newlines so chunks concatenate losslessly.
	lines := splitAfterLines(payload)
	for _, line := range lines {
		if len(line) > maxChunkSize {
			flush()
			for len(line) > maxChunkSize {
				chunks = append(chunks, line[:maxChunkSize])
				line = line[maxChunkSize:]
			}
			if line != "" {
				current.WriteString(line)
			}
			continue
		}

		if current.Len() > 0 && current.Len()+len(line) > chunkSize {
			flush()
		}
		current.WriteString(line)
	}
	flush()

	if len(chunks) == 0 {
		return []string{""}
	}
	return chunks
}

// splitAfterLines splits s after each newline, keeping the newline attached
// to the preceding line.
func splitAfterLines(s string) []string {
	var lines []string
	for {
		idx := strings.IndexByte(s, '\n')
		if idx < 0 {
			if s != "" {
				lines = append(lines, s)
			}
			return lines
		}
		lines = append(lines, s[:idx+1])
		s = s[idx+1:]
	}
}
