package content

import (
	"strings"
	"testing"
)

func TestConvertMarkdownHeadersAndEmphasis(t *testing.T) {
	got := ConvertMarkdown("## Intro\n\nHello **world**.")

	if !strings.HasPrefix(got, styleBlock) {
		t.Fatal("output does not begin with the fixed style block")
	}
	if !strings.Contains(got, "<h2>Intro</h2>") {
		t.Errorf("missing h2, got:\n%s", got)
	}
	if !strings.Contains(got, "<p>Hello <strong>world</strong>.</p>") {
		t.Errorf("missing emphasized paragraph, got:\n%s", got)
	}
	if n := strings.Count(got, `<div class="mr-article">`); n != 1 {
		t.Errorf("expected exactly one container, got %d", n)
	}
}

func TestConvertMarkdownHeadingLevels(t *testing.T) {
	got := ConvertMarkdown("# One\n## Two\n### Three\n#### Four")

	for _, want := range []string{"<h1>One</h1>", "<h2>Two</h2>", "<h3>Three</h3>"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %s", want)
		}
	}
	// h4 is outside the subset and passes through literally.
	if !strings.Contains(got, "#### Four") {
		t.Errorf("h4 line should pass through unchanged, got:\n%s", got)
	}
}

func TestConvertMarkdownItalic(t *testing.T) {
	got := ConvertMarkdown("Plain *emphasis* here.")
	if !strings.Contains(got, "<p>Plain <em>emphasis</em> here.</p>") {
		t.Errorf("italic not converted, got:\n%s", got)
	}
}

func TestConvertMarkdownListRuns(t *testing.T) {
	input := "- one\n- two\n\n- three\n\nbreak paragraph\n\n1. four\n2. five"
	got := ConvertMarkdown(input)

	// Blank lines do not split a run; the paragraph does, so two containers.
	if n := strings.Count(got, "<ul>"); n != 2 {
		t.Fatalf("expected 2 list containers, got %d:\n%s", n, got)
	}
	first := got[:strings.Index(got, "</ul>")]
	for _, item := range []string{"<li>one</li>", "<li>two</li>", "<li>three</li>"} {
		if !strings.Contains(first, item) {
			t.Errorf("first run missing %s:\n%s", item, first)
		}
	}
	for _, item := range []string{"<li>four</li>", "<li>five</li>"} {
		if !strings.Contains(got, item) {
			t.Errorf("missing numbered item %s", item)
		}
	}
	if !strings.Contains(got, "<p>break paragraph</p>") {
		t.Error("paragraph between runs missing")
	}
}

func TestConvertMarkdownDeterministic(t *testing.T) {
	input := "# Recap\n\nThe **Celtics** won.\n\n- note one\n- note two"
	if ConvertMarkdown(input) != ConvertMarkdown(input) {
		t.Fatal("conversion is not deterministic")
	}
}

func TestConvertMarkdownSecondPassKeepsParagraphText(t *testing.T) {
	first := ConvertMarkdown("Just a plain paragraph.\n\nAnd another one.")
	second := ConvertMarkdown(first)

	// Already-tagged lines pass through untouched; a second wrapper is added.
	for _, want := range []string{"<p>Just a plain paragraph.</p>", "<p>And another one.</p>"} {
		if !strings.Contains(second, want) {
			t.Errorf("second pass corrupted %q:\n%s", want, second)
		}
	}
	if n := strings.Count(second, `<div class="mr-article">`); n != 2 {
		t.Errorf("expected nested containers after second pass, got %d", n)
	}
}

func TestConvertMarkdownUnbalancedBoldStaysLiteral(t *testing.T) {
	got := ConvertMarkdown("this **never closes")
	if !strings.Contains(got, "<p>this **never closes</p>") {
		t.Errorf("unbalanced markers should stay literal, got:\n%s", got)
	}
}

func TestConvertMarkdownDropsEmptyParagraphs(t *testing.T) {
	got := ConvertMarkdown("****\n\nreal text")
	if strings.Contains(got, "<p></p>") {
		t.Errorf("empty paragraph not stripped:\n%s", got)
	}
	if !strings.Contains(got, "<p>real text</p>") {
		t.Errorf("real paragraph lost:\n%s", got)
	}
}
