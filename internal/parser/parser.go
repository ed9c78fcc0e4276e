// Package parser extracts timed activities from temporal planner output.
//
// A plan line has the form
//
//	<start>: (<action> <args...>) [<duration>]
//
// where start and duration are non-negative decimal numbers in seconds.
// Anything else (comments, blank lines, malformed lines) is skipped.
package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/julianstephens/tlview/internal/models"
)

var (
	planLine = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*:\s*(\(.*\))\s*\[(\d+(?:\.\d+)?)\]$`)

	// CRLF, CR, LF and the Unicode line and paragraph separators all end a line.
	lineBreak = regexp.MustCompile(`\r\n|[\r\n\x{2028}\x{2029}]`)
)

// Report is the result of Scan: the activities plus line statistics.
type Report struct {
	Activities []models.Activity
	Lines      int // total lines, including blank ones
	Matched    int // lines that produced an activity
	Skipped    int // non-blank, non-comment lines that did not match
	Comments   int // lines starting with ';'
}

// Parse returns the activities found in text, in input order. It never fails;
// lines that do not match are dropped.
func Parse(text string) []models.Activity {
	return Scan(text).Activities
}

// Scan is Parse with per-line bookkeeping.
func Scan(text string) Report {
	var r Report
	if text == "" {
		return r
	}

	for _, line := range lineBreak.Split(text, -1) {
		r.Lines++

		m := planLine.FindStringSubmatch(line)
		if m == nil {
			switch trimmed := strings.TrimSpace(line); {
			case trimmed == "":
			case strings.HasPrefix(trimmed, ";"):
				r.Comments++
			default:
				r.Skipped++
			}
			continue
		}

		r.Activities = append(r.Activities, models.Activity{
			ID:             len(r.Activities),
			RawDescription: m[2],
			ActionName:     ActionName(m[2]),
			StartTime:      parseNumber(m[1]),
			Duration:       parseNumber(m[3]),
		})
		r.Matched++
	}
	return r
}

// ActionName returns the first token of a parenthesized term: the outer
// characters are dropped, the rest is split on a single space and the first
// piece is trimmed. "(move a b)" gives "move"; "()" gives "".
func ActionName(term string) string {
	term = strings.TrimSpace(term)
	if len(term) < 2 {
		return ""
	}
	inner := term[1 : len(term)-1]
	first, _, _ := strings.Cut(inner, " ")
	return strings.TrimSpace(first)
}

// parseNumber yields NaN for text that is not a base-10 float.
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
