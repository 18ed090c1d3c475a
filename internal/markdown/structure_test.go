package markdown

import (
	"testing"
)

func TestAnalyze_Headings(t *testing.T) {
	body := []byte("# Lesson 2: Reactive State\n\nIntro paragraph.\n\n## Declaring State\n\nText.\n\n### Refs\n\nMore text.\n")

	structure, err := Analyze(body)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if structure.Title != "Lesson 2: Reactive State" {
		t.Fatalf("expected title from first H1, got %q", structure.Title)
	}
	if len(structure.Headings) != 3 {
		t.Fatalf("expected 3 headings, got %d: %#v", len(structure.Headings), structure.Headings)
	}

	first := structure.Headings[0]
	if first.Level != 1 || first.Line != 1 {
		t.Fatalf("unexpected first heading: %#v", first)
	}
	second := structure.Headings[1]
	if second.Level != 2 || second.Text != "Declaring State" || second.Line != 5 {
		t.Fatalf("unexpected second heading: %#v", second)
	}
}

func TestAnalyze_FencesAndLinks(t *testing.T) {
	body := []byte("# Lesson 3\n\n```js\nconst x = 1\n```\n\nSee [Lesson 4](lesson_4.md) next.\n")

	structure, err := Analyze(body)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(structure.Fences) != 1 {
		t.Fatalf("expected 1 fence, got %d", len(structure.Fences))
	}
	if structure.Fences[0].Language != "js" || structure.Fences[0].Line != 3 {
		t.Fatalf("unexpected fence: %#v", structure.Fences[0])
	}
	if structure.FenceOpeners != 1 || structure.UnclosedFence {
		t.Fatalf("expected one closed fence, got openers=%d unclosed=%v", structure.FenceOpeners, structure.UnclosedFence)
	}

	if len(structure.Links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(structure.Links))
	}
	link := structure.Links[0]
	if link.Text != "Lesson 4" || link.Destination != "lesson_4.md" || link.Line != 7 {
		t.Fatalf("unexpected link: %#v", link)
	}
}

func TestAnalyze_UnclosedFence(t *testing.T) {
	body := []byte("# Lesson 5\n\n## Setup\n\n```bash\nnpm install\n\nThe closing fence is missing.\n")

	structure, err := Analyze(body)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !structure.UnclosedFence {
		t.Fatalf("expected unclosed fence to be reported")
	}
	if structure.FenceOpeners != 1 {
		t.Fatalf("expected 1 opener, got %d", structure.FenceOpeners)
	}
}

func TestScanFences(t *testing.T) {
	cases := []struct {
		name     string
		source   string
		openers  int
		unclosed bool
	}{
		{
			name:    "balanced backticks",
			source:  "```js\ncode\n```\n",
			openers: 1,
		},
		{
			name:    "balanced tildes",
			source:  "~~~python\ncode\n~~~\n",
			openers: 1,
		},
		{
			name:     "dangling opener",
			source:   "```\ncode\n",
			openers:  1,
			unclosed: true,
		},
		{
			name:    "nested backticks inside tilde fence",
			source:  "~~~md\n```js\ncode\n```\n~~~\n",
			openers: 1,
		},
		{
			name:    "shorter closer ignored",
			source:  "````\ncode\n```\n````\n",
			openers: 1,
		},
		{
			name:    "two blocks",
			source:  "```\na\n```\n\n```go\nb\n```\n",
			openers: 2,
		},
		{
			name:    "indented four spaces is content",
			source:  "    ```\n    not a fence\n",
			openers: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			openers, unclosed := ScanFences([]byte(tc.source))
			if len(openers) != tc.openers {
				t.Fatalf("expected %d openers, got %d: %#v", tc.openers, len(openers), openers)
			}
			if unclosed != tc.unclosed {
				t.Fatalf("expected unclosed=%v, got %v", tc.unclosed, unclosed)
			}
		})
	}
}

func TestScanFences_LanguageAndLine(t *testing.T) {
	source := "intro\n\n```vue title=example\n<template></template>\n```\n"

	openers, unclosed := ScanFences([]byte(source))
	if unclosed {
		t.Fatalf("expected balanced fences")
	}
	if len(openers) != 1 {
		t.Fatalf("expected 1 opener, got %d", len(openers))
	}
	if openers[0].Line != 3 || openers[0].Language != "vue" {
		t.Fatalf("unexpected opener: %#v", openers[0])
	}
}
