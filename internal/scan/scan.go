// Package scan extracts document structure: ATX headings, fenced code
// blocks, and link references, all tagged with 1-based line numbers.
package scan

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dgallion1/doclint/internal/corpus"
)

var (
	inlineLinkRe  = regexp.MustCompile(`!?\[[^\]]*\]\(([^)]*)\)`)
	explicitRefRe = regexp.MustCompile(`!?\[([^\]]+)\]\[([^\]]*)\]`)
	shortcutRefRe = regexp.MustCompile(`!?\[([^\]]+)\]`)
	refDefRe      = regexp.MustCompile(`^ {0,3}\[([^\]]+)\]:\s*(\S+)`)
	schemeRe      = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)
	codeSpanRe    = regexp.MustCompile("`[^`]*`")
)

// Classify derives the link kind from a raw target.
func Classify(target string) corpus.LinkKind {
	switch {
	case strings.HasPrefix(target, "#"):
		return corpus.KindAnchor
	case schemeRe.MatchString(target) || strings.HasPrefix(target, "//"):
		return corpus.KindExternal
	default:
		return corpus.KindRelative
	}
}

// Scan fills d's structural slices from its text. Scanning the same text
// always yields identical results. Parse anomalies never fail the scan: an
// unterminated fence swallows the rest of the document, empty heading text
// slugs to the empty string.
func Scan(d *corpus.Document) {
	lines := strings.Split(d.Text, "\n")
	defs := collectDefinitions(lines)
	sl := newSlugger()

	d.Headings = nil
	d.CodeBlocks = nil
	d.Links = nil
	d.Anchors = nil

	var (
		inFence   bool
		fenceChar byte
		fenceLen  int
		block     corpus.CodeBlock
		body      []string
		htmlBuf   strings.Builder
	)

	for i, line := range lines {
		lineNo := i + 1

		if inFence {
			if c, n, rest, ok := fenceLine(line); ok && c == fenceChar && n >= fenceLen && strings.TrimSpace(rest) == "" {
				inFence = false
				block.Content = strings.Join(body, "\n")
				d.CodeBlocks = append(d.CodeBlocks, block)
				body = nil
			} else {
				body = append(body, line)
			}
			continue
		}

		if c, n, rest, ok := fenceLine(line); ok {
			inFence = true
			fenceChar, fenceLen = c, n
			block = corpus.CodeBlock{Language: languageTag(rest), Line: lineNo}
			body = nil
			continue
		}

		htmlBuf.WriteString(codeSpanRe.ReplaceAllString(line, ""))
		htmlBuf.WriteByte('\n')

		if h, ok := parseHeading(line); ok {
			h.Line = lineNo
			h.Slug = sl.slug(h.Text)
			d.Headings = append(d.Headings, h)
		}
		d.Links = append(d.Links, extractLinks(line, lineNo, defs)...)
	}

	// Unterminated fence: the remainder belongs to the block.
	if inFence {
		block.Content = strings.Join(body, "\n")
		d.CodeBlocks = append(d.CodeBlocks, block)
	}

	d.Anchors = htmlAnchors(htmlBuf.String())
}

// All scans every document of the corpus in order.
func All(c *corpus.Corpus) {
	for _, d := range c.Docs {
		Scan(d)
	}
}

// fenceLine recognizes a fence delimiter: up to three leading spaces, then
// a run of three or more backticks or tildes. rest is the text after the
// run (the info string on an opening fence).
func fenceLine(line string) (char byte, run int, rest string, ok bool) {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	if i > 3 || i >= len(line) {
		return 0, 0, "", false
	}
	c := line[i]
	if c != '`' && c != '~' {
		return 0, 0, "", false
	}
	j := i
	for j < len(line) && line[j] == c {
		j++
	}
	if j-i < 3 {
		return 0, 0, "", false
	}
	return c, j - i, line[j:], true
}

// languageTag reads the language from an opening fence's info string:
// the first whitespace-separated token.
func languageTag(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// parseHeading recognizes an ATX heading: 1-6 '#' at column zero followed
// by a space. A trailing closing hash run is stripped from the text.
func parseHeading(line string) (corpus.Heading, bool) {
	i := 0
	for i < len(line) && line[i] == '#' {
		i++
	}
	if i == 0 || i > 6 || i >= len(line) || line[i] != ' ' {
		return corpus.Heading{}, false
	}
	text := strings.TrimSpace(line[i+1:])
	if trimmed := strings.TrimRight(text, "#"); trimmed != text {
		if trimmed == "" || strings.HasSuffix(trimmed, " ") {
			text = strings.TrimRight(trimmed, " ")
		}
	}
	return corpus.Heading{Level: i, Text: text}, true
}

// collectDefinitions gathers reference-link definitions ("[id]: target"),
// skipping fenced code. Ids match case-insensitively; the first definition
// of an id wins.
func collectDefinitions(lines []string) map[string]string {
	defs := make(map[string]string)
	var (
		inFence   bool
		fenceChar byte
		fenceLen  int
	)
	for _, line := range lines {
		if inFence {
			if c, n, rest, ok := fenceLine(line); ok && c == fenceChar && n >= fenceLen && strings.TrimSpace(rest) == "" {
				inFence = false
			}
			continue
		}
		if c, n, _, ok := fenceLine(line); ok {
			inFence = true
			fenceChar, fenceLen = c, n
			continue
		}
		if m := refDefRe.FindStringSubmatch(line); m != nil {
			id := strings.ToLower(strings.TrimSpace(m[1]))
			if _, exists := defs[id]; !exists {
				defs[id] = cleanTarget(m[2])
			}
		}
	}
	return defs
}

// cleanTarget strips angle brackets and a trailing title from a raw target.
func cleanTarget(raw string) string {
	t := strings.TrimSpace(raw)
	if strings.HasPrefix(t, "<") {
		if end := strings.IndexByte(t, '>'); end >= 0 {
			return t[1:end]
		}
	}
	if i := strings.IndexAny(t, " \t"); i >= 0 {
		t = t[:i]
	}
	return t
}

// extractLinks finds inline, reference-style, and shortcut links on one
// line, in left-to-right order.
func extractLinks(line string, lineNo int, defs map[string]string) []corpus.LinkReference {
	type hit struct {
		pos int
		ref corpus.LinkReference
	}
	var (
		hits  []hit
		taken [][2]int
	)
	overlaps := func(s, e int) bool {
		for _, t := range taken {
			if s < t[1] && e > t[0] {
				return true
			}
		}
		return false
	}

	for _, m := range inlineLinkRe.FindAllStringSubmatchIndex(line, -1) {
		taken = append(taken, [2]int{m[0], m[1]})
		target := cleanTarget(line[m[2]:m[3]])
		if target == "" {
			continue
		}
		hits = append(hits, hit{m[0], corpus.LinkReference{Target: target, Kind: Classify(target), Line: lineNo}})
	}

	for _, m := range explicitRefRe.FindAllStringSubmatchIndex(line, -1) {
		if overlaps(m[0], m[1]) {
			continue
		}
		taken = append(taken, [2]int{m[0], m[1]})
		id := line[m[4]:m[5]]
		if id == "" {
			// Collapsed form "[text][]": the text is the id.
			id = line[m[2]:m[3]]
		}
		key := strings.ToLower(strings.TrimSpace(id))
		if target, ok := defs[key]; ok {
			if target != "" {
				hits = append(hits, hit{m[0], corpus.LinkReference{Target: target, Kind: Classify(target), Line: lineNo}})
			}
			continue
		}
		hits = append(hits, hit{m[0], corpus.LinkReference{Target: id, Kind: corpus.KindUndefinedRef, Line: lineNo}})
	}

	// Shortcut form "[text]": only a link when a definition exists;
	// otherwise it is plain bracketed prose.
	for _, m := range shortcutRefRe.FindAllStringSubmatchIndex(line, -1) {
		if overlaps(m[0], m[1]) {
			continue
		}
		if e := m[1]; e < len(line) && (line[e] == '(' || line[e] == '[' || line[e] == ':') {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(line[m[2]:m[3]]))
		if target, ok := defs[key]; ok && target != "" {
			hits = append(hits, hit{m[0], corpus.LinkReference{Target: target, Kind: Classify(target), Line: lineNo}})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	refs := make([]corpus.LinkReference, 0, len(hits))
	for _, h := range hits {
		refs = append(refs, h.ref)
	}
	return refs
}
