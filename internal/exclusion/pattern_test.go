package exclusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromIgnoreLine(t *testing.T) {
	tests := []struct {
		line   string
		want   string
		wantOK bool
	}{
		{line: "node_modules/", want: "**/node_modules/", wantOK: true},
		{line: "**/dist/", want: "**/dist/", wantOK: true},
		{line: "  .env  ", want: "**/.env", wantOK: true},
		{line: "*.log\r", want: "**/*.log", wantOK: true},
		{line: "/build", want: "**//build", wantOK: true},
		{line: "# comment", wantOK: false},
		{line: "   # indented comment", wantOK: false},
		{line: "", wantOK: false},
		{line: " \t ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := FromIgnoreLine(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromIgnoreLines(t *testing.T) {
	lines := []string{
		"# global ignores",
		".DS_Store",
		"",
		"**/.idea/",
		"node_modules/",
	}
	assert.Equal(t, []string{"**/.DS_Store", "**/.idea/", "**/node_modules/"}, FromIgnoreLines(lines))
	assert.Empty(t, FromIgnoreLines(nil))
}
