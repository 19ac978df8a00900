package segment

import (
	"regexp"
	"strings"
)

// Mode is the classifier's current position in the transcript.
type Mode int

const (
	// ModeSeekingHeader applies before the first statement and right after a
	// completed one.
	ModeSeekingHeader Mode = iota
	// ModeInBody applies inside a statement; only an unambiguous header
	// pattern flips back.
	ModeInBody
)

// Kind tags a classified line.
type Kind int

const (
	KindContinuation Kind = iota
	KindHeader
	KindBoilerplate
)

// Verdict is the classifier's decision for one line.
type Verdict struct {
	Kind   Kind
	Header string // raw header substring, set when Kind == KindHeader
	Rest   string // text following the header punctuation on the same line
	Rule   string // name of the rule that decided
}

// Rule is one named classification pattern. Rules are pure functions of the
// line and the explicit mode; the first rule that fires wins.
type Rule struct {
	Name  string
	Apply func(line string, mode Mode) (Verdict, bool)
}

// DefaultTitles are the speaker title tokens that can open a turn header,
// drawn from the printed conventions of GPO hearing transcripts.
var DefaultTitles = []string{
	"Mr", "Mrs", "Ms", "Dr", "Gen", "Lt", "Capt", "Col", "Sgt",
	"Chairman", "Chairwoman", "Chairperson", "Vice Chairman", "Vice Chair",
	"Senator", "Secretary", "Representative", "Director", "Admiral",
	"General", "Judge", "Commissioner", "Lieutenant", "Trustee", "Sergeant",
	"Major", "Colonel", "Captain", "Commander", "Specialist", "Governor",
	"Chair", "Clerk", "Mayor", "Reverend", "Justice", "Ambassador", "Chief",
}

// Procedural role tags that open a turn without naming a person.
var proceduralTokens = []string{
	"The Chairman", "The Chairwoman", "The Chairperson", "The Chair",
	"The Clerk", "The Presiding Officer", "Voice",
}

func altPattern(tokens []string) string {
	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		quoted[i] = regexp.QuoteMeta(tok)
	}
	return "(?i:" + strings.Join(quoted, "|") + ")"
}

// namePart matches one to four capitalized name tokens, optionally followed
// by an "of <State>" qualifier, terminated by turn-taking punctuation.
const namePart = `\.?((?:[ ][A-Z][-A-Za-z']*){1,4}(?: of [A-Z][a-z]+(?: [A-Z][a-z]+)?)?(?: \[[A-Za-z ]+\])?)`

// compileHeader builds the speaker-header pattern. Headers anchor at line
// start: leading indentation is allowed, a leading quotation mark is not, so
// quoted speech inside a statement never opens a new turn. minIndent 1 makes
// the in-body variant stricter (GPO paragraphs are indented), which is what
// lets an unambiguous header flip the mode back.
func compileHeader(titles []string, minIndent int) *regexp.Regexp {
	indent := `{0,10}`
	if minIndent > 0 {
		indent = `{1,10}`
	}
	return regexp.MustCompile(`^[ \t]` + indent + `(` + altPattern(titles) + namePart + `)[.:][ ]?(.*)$`)
}

func compileProcedural(minIndent int) *regexp.Regexp {
	indent := `{0,10}`
	if minIndent > 0 {
		indent = `{1,10}`
	}
	return regexp.MustCompile(`^[ \t]` + indent + `(` + altPattern(proceduralTokens) + `)[.:][ ]?(.*)$`)
}

var (
	pageArtifactRe = regexp.MustCompile(`^\s*\f?\s*(\d{1,4}|\[?[Pp]age\s+\d+\]?)\s*$`)
	separatorRe    = regexp.MustCompile(`^\s*[-_=*]{5,}\s*$`)
	bracketNoteRe  = regexp.MustCompile(`^\s*(\[[^\[\]]*\]|<[^<>]*>)\s*$`)
	hasLowerRe     = regexp.MustCompile(`[a-z]`)
	hasLetterRe    = regexp.MustCompile(`[A-Za-z]`)
)

// BlankRule collapses empty lines into the current statement.
func BlankRule() Rule {
	return Rule{Name: "blank", Apply: func(line string, _ Mode) (Verdict, bool) {
		if strings.TrimSpace(line) == "" {
			return Verdict{Kind: KindContinuation, Rule: "blank"}, true
		}
		return Verdict{}, false
	}}
}

// PageArtifactRule discards page numbers and form-feed furniture.
func PageArtifactRule() Rule {
	return Rule{Name: "page-artifact", Apply: func(line string, _ Mode) (Verdict, bool) {
		if pageArtifactRe.MatchString(line) {
			return Verdict{Kind: KindBoilerplate, Rule: "page-artifact"}, true
		}
		return Verdict{}, false
	}}
}

// SeparatorRule discards printer rules (dashed/starred lines).
func SeparatorRule() Rule {
	return Rule{Name: "separator", Apply: func(line string, _ Mode) (Verdict, bool) {
		if separatorRe.MatchString(line) {
			return Verdict{Kind: KindBoilerplate, Rule: "separator"}, true
		}
		return Verdict{}, false
	}}
}

// BracketedNoteRule discards whole-line editorial insertions such as
// "[Laughter.]" or "<GRAPHIC NOT AVAILABLE>".
func BracketedNoteRule() Rule {
	return Rule{Name: "bracketed-note", Apply: func(line string, _ Mode) (Verdict, bool) {
		if bracketNoteRe.MatchString(line) {
			return Verdict{Kind: KindBoilerplate, Rule: "bracketed-note"}, true
		}
		return Verdict{}, false
	}}
}

// SpeakerHeaderRule recognizes "<Title> <Name>." turn openers.
func SpeakerHeaderRule(titles []string) Rule {
	seek := compileHeader(titles, 0)
	body := compileHeader(titles, 1)
	return Rule{Name: "speaker-header", Apply: func(line string, mode Mode) (Verdict, bool) {
		re := seek
		if mode == ModeInBody {
			re = body
		}
		m := re.FindStringSubmatch(line)
		if m == nil {
			return Verdict{}, false
		}
		return Verdict{
			Kind:   KindHeader,
			Header: strings.TrimSpace(m[1]),
			Rest:   m[3],
			Rule:   "speaker-header",
		}, true
	}}
}

// ProceduralHeaderRule recognizes role-tag turn openers with no personal
// name, e.g. "The CHAIRMAN." or "Voice.".
func ProceduralHeaderRule() Rule {
	seek := compileProcedural(0)
	body := compileProcedural(1)
	return Rule{Name: "procedural-header", Apply: func(line string, mode Mode) (Verdict, bool) {
		re := seek
		if mode == ModeInBody {
			re = body
		}
		m := re.FindStringSubmatch(line)
		if m == nil {
			return Verdict{}, false
		}
		return Verdict{
			Kind:   KindHeader,
			Header: strings.TrimSpace(m[1]),
			Rest:   m[2],
			Rule:   "procedural-header",
		}, true
	}}
}

// RunningTitleRule discards short all-caps lines: running hearing titles,
// "STATEMENT OF ..." section headings and similar printer furniture. True
// headers are matched by the header rules first, so an all-caps header line
// like "MR. GILLMOR." is never discarded here.
func RunningTitleRule() Rule {
	return Rule{Name: "running-title", Apply: func(line string, _ Mode) (Verdict, bool) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || len(trimmed) > 64 {
			return Verdict{}, false
		}
		if hasLowerRe.MatchString(trimmed) || !hasLetterRe.MatchString(trimmed) {
			return Verdict{}, false
		}
		if strings.HasSuffix(trimmed, ".") || strings.HasSuffix(trimmed, ":") {
			return Verdict{}, false
		}
		return Verdict{Kind: KindBoilerplate, Rule: "running-title"}, true
	}}
}

// DefaultRules returns the ordered rule list. Order matters: structural
// furniture is recognized before headers, and headers before running titles.
func DefaultRules(extraTitles ...string) []Rule {
	titles := append(append([]string{}, DefaultTitles...), extraTitles...)
	return []Rule{
		BlankRule(),
		PageArtifactRule(),
		SeparatorRule(),
		BracketedNoteRule(),
		SpeakerHeaderRule(titles),
		ProceduralHeaderRule(),
		RunningTitleRule(),
	}
}

// Classifier applies an ordered rule list to transcript lines.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier with the default rule set, extended by
// any extra title tokens (e.g. from configuration).
func NewClassifier(extraTitles ...string) *Classifier {
	return &Classifier{rules: DefaultRules(extraTitles...)}
}

// NewClassifierWithRules creates a classifier with a custom rule list.
func NewClassifierWithRules(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify returns the verdict of the first matching rule, defaulting to
// continuation.
func (c *Classifier) Classify(line string, mode Mode) Verdict {
	for _, rule := range c.rules {
		if v, ok := rule.Apply(line, mode); ok {
			return v
		}
	}
	return Verdict{Kind: KindContinuation, Rule: "continuation"}
}
