package segment

import (
	"regexp"
	"strings"
)

// Segment is one contiguous speaking turn. Header is the raw header line
// text and may be empty (front matter, or a transcript with no recognizable
// headers). Body is whitespace-normalized with boilerplate removed.
type Segment struct {
	Ordinal int
	Header  string
	Body    string
}

// Procedural reports whether the segment was opened by a role tag rather
// than a personal name.
func (s Segment) Procedural() bool {
	return s.Header != "" && proceduralSeekCheck.MatchString(s.Header)
}

var proceduralSeekCheck = regexp.MustCompile(`^(` + altPattern(proceduralTokens) + `)$`)

// Appendix material after this marker is questions-for-the-record
// boilerplate, not spoken turns.
var appendixRe = regexp.MustCompile(`\[Questions? for the record with answers supplied follow:?\]`)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Segmenter runs the classifier over a full transcript in a single linear
// pass, producing the ordered statement partition.
type Segmenter struct {
	classifier *Classifier
}

// NewSegmenter creates a segmenter over the given classifier. A nil
// classifier gets the default rule set.
func NewSegmenter(c *Classifier) *Segmenter {
	if c == nil {
		c = NewClassifier()
	}
	return &Segmenter{classifier: c}
}

// Segment splits a transcript into its ordered statement segments. The
// segments partition the input: every non-boilerplate line lands in exactly
// one segment, in original order, and ordinals are contiguous from 0. A
// transcript with no recognizable headers yields a single null-header
// segment.
func (s *Segmenter) Segment(transcript string) []Segment {
	transcript = truncateAppendix(transcript)

	var (
		segments  []Segment
		curHeader string
		buf       []string
		mode      = ModeSeekingHeader
		inBracket bool
	)

	flush := func() {
		body := normalizeBody(buf)
		if curHeader == "" && body == "" {
			buf = nil
			return
		}
		segments = append(segments, Segment{
			Ordinal: len(segments),
			Header:  curHeader,
			Body:    body,
		})
		curHeader = ""
		buf = nil
	}

	for _, line := range strings.Split(transcript, "\n") {
		// Multi-line bracketed insertions ("[The prepared statement of
		// Mr. Gillmor follows:]" wrapped across lines) are boilerplate
		// until the closing bracket.
		if inBracket {
			if strings.Contains(line, "]") {
				inBracket = false
			}
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && !strings.Contains(trimmed, "]") {
			inBracket = true
			continue
		}

		v := s.classifier.Classify(line, mode)
		switch v.Kind {
		case KindHeader:
			flush()
			curHeader = v.Header
			if rest := strings.TrimSpace(v.Rest); rest != "" {
				buf = append(buf, rest)
			}
			mode = ModeInBody
		case KindContinuation:
			if trimmed != "" {
				buf = append(buf, trimmed)
			}
		case KindBoilerplate:
			// dropped
		}
	}
	flush()

	return segments
}

func truncateAppendix(transcript string) string {
	if loc := appendixRe.FindStringIndex(transcript); loc != nil {
		return transcript[:loc[0]]
	}
	return transcript
}

func normalizeBody(buf []string) string {
	joined := strings.Join(buf, " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(joined, " "))
}
