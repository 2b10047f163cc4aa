package content

import (
	"regexp"
	"strings"
	"testing"

	"courtside/config"
)

var slugShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Future of AI", "future-of-ai"},
		{"punctuation stripped", "The Future of AI in Healthcare!", "the-future-of-ai-in-healthcare"},
		{"recap with date", "NBA Recap 2024-01-05", "nba-recap-2024-01-05"},
		{"run collapse", "Hello   --  World", "hello-world"},
		{"leading trailing", " - Spaced Out - ", "spaced-out"},
		{"unicode dropped", "Café — déjà vu", "caf-dj-vu"},
		{"empty", "", ""},
		{"no alphanumerics", "!!! ---", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Slugify(tc.title)
			if got != tc.want {
				t.Fatalf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
			}
			if got != "" && !slugShape.MatchString(got) {
				t.Fatalf("Slugify(%q) = %q does not match %s", tc.title, got, slugShape)
			}
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	titles := []string{
		"Future of AI",
		"NBA Recap 2024-01-05: Thunder Roll On",
		"  mixed CASE &  symbols?!  ",
	}
	for _, title := range titles {
		once := Slugify(title)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify not idempotent for %q: %q != %q", title, twice, once)
		}
	}
}

func TestExcerptAccumulatesWholeSentences(t *testing.T) {
	content := "First sentence here. Second sentence follows. " +
		strings.Repeat("filler ", 40) + "end."
	got := Excerpt(content, 60)

	if !strings.HasPrefix(got, "First sentence here. Second sentence follows.") {
		t.Fatalf("expected whole leading sentences, got %q", got)
	}
	if len(got) > 60+len(config.ExcerptEllipsis) {
		t.Fatalf("excerpt length %d exceeds bound", len(got))
	}
}

func TestExcerptStripsMarkdownMarkers(t *testing.T) {
	got := Excerpt("## Intro\n\nHello **world**. More text follows here.", 200)
	for _, marker := range []string{"#", "*", "\n"} {
		if strings.Contains(got, marker) {
			t.Errorf("excerpt %q still contains %q", got, marker)
		}
	}
	if !strings.Contains(got, "Hello world.") {
		t.Errorf("excerpt %q lost cleaned sentence text", got)
	}
}

func TestExcerptFallbackTruncation(t *testing.T) {
	// A single unbroken sentence longer than max takes the truncation path.
	content := strings.Repeat("x", 300)
	got := Excerpt(content, 50)

	if !strings.HasSuffix(got, config.ExcerptEllipsis) {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	if len(got) > 50+len(config.ExcerptEllipsis) {
		t.Fatalf("excerpt length %d exceeds max + ellipsis", len(got))
	}
}

func TestExcerptShortSentenceResuffixed(t *testing.T) {
	// Accumulated sentences are re-suffixed with the ". " separator.
	if got := Excerpt("Tiny", 50); got != "Tiny." {
		t.Fatalf("got %q, want %q", got, "Tiny.")
	}
}

func TestExcerptLengthBound(t *testing.T) {
	inputs := []string{
		"One. Two. Three. Four. Five. Six. Seven. Eight. Nine. Ten.",
		strings.Repeat("word ", 200),
		"Short.",
		"",
	}
	for _, in := range inputs {
		for _, max := range []int{10, 50, 200} {
			if got := Excerpt(in, max); len(got) > max+len(config.ExcerptEllipsis) {
				t.Errorf("Excerpt(%.20q, %d) length %d exceeds bound", in, max, len(got))
			}
		}
	}
}
