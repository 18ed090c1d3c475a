package markdown

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-curriculum/pkg/interfaces"
)

// Analyze walks the goldmark AST of the supplied Markdown body and reports
// the structural facts the lessons and checker modules depend on: headings,
// fenced code blocks, and links. Line numbers are 1-based and relative to the
// body (frontmatter excluded).
func Analyze(body []byte) (*interfaces.DocumentStructure, error) {
	engine := goldmark.New()
	reader := text.NewReader(body)
	root := engine.Parser().Parse(reader)

	lines := newLineIndex(body)
	structure := &interfaces.DocumentStructure{}

	err := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch typed := node.(type) {
		case *ast.Heading:
			heading := interfaces.Heading{
				Level: typed.Level,
				Text:  strings.TrimSpace(string(typed.Text(body))),
				Line:  lines.lineFor(nodeOffset(typed)),
			}
			structure.Headings = append(structure.Headings, heading)
			if typed.Level == 1 && structure.Title == "" {
				structure.Title = heading.Text
			}
		case *ast.FencedCodeBlock:
			structure.Fences = append(structure.Fences, interfaces.CodeFence{
				Language: string(typed.Language(body)),
				Line:     lines.lineFor(fenceOffset(typed)),
			})
		case *ast.Link:
			structure.Links = append(structure.Links, interfaces.Link{
				Text:        strings.TrimSpace(string(typed.Text(body))),
				Destination: string(typed.Destination),
				Line:        lines.lineFor(nodeOffset(typed)),
			})
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	openers, unclosed := ScanFences(body)
	structure.FenceOpeners = len(openers)
	structure.UnclosedFence = unclosed

	return structure, nil
}

// FenceOpener is a fence delimiter line that opens a code block in the raw
// source, found by ScanFences.
type FenceOpener struct {
	Line     int
	Language string
}

// ScanFences walks the raw body line by line tracking fence delimiter state.
// It returns every opener and whether the document ends inside an open fence.
// goldmark tolerates a dangling opener by swallowing the rest of the file;
// the scanner makes that editorial defect observable.
func ScanFences(body []byte) ([]FenceOpener, bool) {
	var openers []FenceOpener

	var openChar byte
	openLen := 0
	inFence := false

	lines := strings.Split(string(body), "\n")
	for i, line := range lines {
		marker, length, info := fenceMarker(line)
		if marker == 0 {
			continue
		}

		if !inFence {
			inFence = true
			openChar = marker
			openLen = length
			openers = append(openers, FenceOpener{
				Line:     i + 1,
				Language: firstWord(info),
			})
			continue
		}

		// A closing delimiter must reuse the opening character, be at least as
		// long, and carry no info string.
		if marker == openChar && length >= openLen && info == "" {
			inFence = false
			openChar = 0
			openLen = 0
		}
	}

	return openers, inFence
}

// fenceMarker inspects one line for a fence delimiter: up to three leading
// spaces followed by three or more backticks or tildes. It returns the marker
// character (zero when absent), the delimiter length, and the trailing info
// string.
func fenceMarker(line string) (byte, int, string) {
	trimmed := line
	indent := 0
	for indent < len(trimmed) && trimmed[indent] == ' ' {
		indent++
	}
	if indent > 3 {
		return 0, 0, ""
	}
	trimmed = trimmed[indent:]
	if len(trimmed) < 3 {
		return 0, 0, ""
	}

	marker := trimmed[0]
	if marker != '`' && marker != '~' {
		return 0, 0, ""
	}

	length := 0
	for length < len(trimmed) && trimmed[length] == marker {
		length++
	}
	if length < 3 {
		return 0, 0, ""
	}

	info := strings.TrimSpace(trimmed[length:])
	// Backtick info strings cannot contain backticks per CommonMark; treat
	// such lines as content.
	if marker == '`' && strings.Contains(info, "`") {
		return 0, 0, ""
	}
	return marker, length, info
}

func firstWord(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex struct {
	starts []int
}

func newLineIndex(body []byte) *lineIndex {
	starts := []int{0}
	for i, b := range body {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

func (l *lineIndex) lineFor(offset int) int {
	if offset < 0 {
		return 0
	}
	idx := sort.Search(len(l.starts), func(i int) bool {
		return l.starts[i] > offset
	})
	return idx
}

// nodeOffset returns the starting byte offset of the first text segment under
// the node, -1 when it has none (e.g. an empty heading).
func nodeOffset(node ast.Node) int {
	if node == nil {
		return -1
	}
	if node.Type() == ast.TypeBlock {
		if lines := node.Lines(); lines != nil && lines.Len() > 0 {
			return lines.At(0).Start
		}
	}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if offset := nodeOffset(child); offset >= 0 {
			return offset
		}
	}
	if segmenter, ok := node.(interface{ Segment() text.Segment }); ok {
		return segmenter.Segment().Start
	}
	if textNode, ok := node.(*ast.Text); ok {
		return textNode.Segment.Start
	}
	return -1
}

// fenceOffset locates a fenced code block: prefer the info string position
// (the opener line), fall back to the first content line.
func fenceOffset(fence *ast.FencedCodeBlock) int {
	if fence == nil {
		return -1
	}
	if fence.Info != nil {
		return fence.Info.Segment.Start
	}
	if lines := fence.Lines(); lines != nil && lines.Len() > 0 {
		return lines.At(0).Start
	}
	return -1
}
