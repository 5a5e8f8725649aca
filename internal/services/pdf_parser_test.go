package services

import "testing"

func TestCleanResumeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello world", "hello world"},
		{"collapses whitespace", "hello \n\n  world\t\tagain", "hello world again"},
		{"strips control chars", "hel\x00lo\x07 world", "hello world"},
		{"strips replacement char", "caf�e latte", "cafe latte"},
		{"leading and trailing space", "  résumé text  ", "résumé text"},
		{"empty", "   \n\t ", ""},
		{"cjk preserved", "王小明　後端工程師", "王小明 後端工程師"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanResumeText(tt.input); got != tt.want {
				t.Fatalf("CleanResumeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractTextMissingFile(t *testing.T) {
	parser := NewPDFParserService()
	if _, err := parser.ExtractText("/nonexistent/resume.pdf"); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
