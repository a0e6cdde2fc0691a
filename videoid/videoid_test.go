package videoid

import (
	"errors"
	"testing"
)

func TestParse_ResolvesKnownShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ID
	}{
		{"bare ID", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"bare ID with underscore and dash", "a_b-C1d2E3f", "a_b-C1d2E3f"},
		{"watch URL", "https://youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch URL with www", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch URL with extra params", "https://youtube.com/watch?v=dQw4w9WgXcQ&t=42s&list=PLx", "dQw4w9WgXcQ"},
		{"watch URL with v not first", "https://youtube.com/watch?feature=shared&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short URL", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short URL with query", "https://youtu.be/dQw4w9WgXcQ?t=10", "dQw4w9WgXcQ"},
		{"embed URL", "https://youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"v URL", "https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"shorts URL", "https://youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"surrounding whitespace", "  dQw4w9WgXcQ  ", "dQw4w9WgXcQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_RejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"not a url", "not a url"},
		{"too short ID", "dQw4w9WgXc"},
		{"too long ID", "dQw4w9WgXcQQ"},
		{"disallowed characters", "dQw4w9WgXc!"},
		{"watch URL with short ID", "https://youtube.com/watch?v=short"},
		{"unrelated host", "https://vimeo.com/123456789"},
		{"watch URL without v param", "https://youtube.com/watch?list=PLxyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, err := Parse(tt.input); err == nil {
				t.Errorf("Parse(%q) = %q, want error", tt.input, got)
			} else if !errors.Is(err, ErrInvalid) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalid", tt.input, err)
			}
		})
	}
}

func TestParse_IsIdempotent(t *testing.T) {
	input := "https://youtu.be/dQw4w9WgXcQ"
	first, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	second, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() second call error = %v", err)
	}
	if first != second {
		t.Errorf("Parse() not idempotent: %q vs %q", first, second)
	}
}

func TestID_WatchURL(t *testing.T) {
	id := ID("dQw4w9WgXcQ")
	want := "https://youtube.com/watch?v=dQw4w9WgXcQ"
	if got := id.WatchURL(); got != want {
		t.Errorf("WatchURL() = %q, want %q", got, want)
	}
}
