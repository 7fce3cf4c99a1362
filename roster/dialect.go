package roster

import (
	"bufio"
	"bytes"
)

const sniffLines = 10

var candidateDelimiters = []rune{',', ';', '\t', '|'}

// DetectDelimiter sniffs the field delimiter from the first few non-empty
// lines of content. A candidate qualifies only if it appears on every sampled
// line; among qualifying candidates the one with the highest per-line minimum
// count wins, with the candidate order above breaking ties.
func DetectDelimiter(sample []byte) (rune, error) {
	lines := sampleLines(sample)
	if len(lines) == 0 {
		return 0, ErrUnknownDelimiter
	}

	best := rune(0)
	bestScore := 0
	for _, candidate := range candidateDelimiters {
		score := minCount(lines, candidate)
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	if best == 0 {
		return 0, ErrUnknownDelimiter
	}
	return best, nil
}

func sampleLines(sample []byte) []string {
	scanner := bufio.NewScanner(bytes.NewReader(sample))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lines := make([]string, 0, sniffLines)
	for scanner.Scan() && len(lines) < sniffLines {
		line := scanner.Text()
		if len(bytes.TrimSpace([]byte(line))) == 0 {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// minCount returns the smallest per-line occurrence count of the delimiter,
// which is 0 as soon as any sampled line lacks it.
func minCount(lines []string, delimiter rune) int {
	minimum := -1
	for _, line := range lines {
		count := 0
		inQuotes := false
		for _, r := range line {
			switch {
			case r == '"':
				inQuotes = !inQuotes
			case r == delimiter && !inQuotes:
				count++
			}
		}
		if minimum < 0 || count < minimum {
			minimum = count
		}
		if minimum == 0 {
			return 0
		}
	}
	if minimum < 0 {
		return 0
	}
	return minimum
}
