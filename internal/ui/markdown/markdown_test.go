package markdown

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	r, err := New(80, "")
	require.NoError(t, err)
	require.Equal(t, 80, r.Width())
	require.Equal(t, "dark", r.Style())

	r, err = New(40, "light")
	require.NoError(t, err)
	require.Equal(t, "light", r.Style())
}

func TestRenderer_Render(t *testing.T) {
	r, err := New(80, "dark")
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"heading", "# Title\n\nContent", []string{"Title", "Content"}},
		{"code block", "```go\nfunc main() {}\n```", []string{"func", "main"}},
		{"list", "- one\n- two", []string{"one", "two"}},
		{"emphasis", "some **bold** text", []string{"bold", "text"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render(tt.input)
			require.NoError(t, err)
			plain := ansi.Strip(out)
			for _, w := range tt.want {
				require.Contains(t, plain, w)
			}
			require.False(t, strings.HasPrefix(out, "\n"))
			require.False(t, strings.HasSuffix(out, "\n"))
		})
	}
}

func TestRenderer_WrapsToWidth(t *testing.T) {
	r, err := New(20, "dark")
	require.NoError(t, err)

	out, err := r.Render(strings.Repeat("word ", 20))
	require.NoError(t, err)
	for _, line := range strings.Split(out, "\n") {
		require.LessOrEqual(t, ansi.StringWidth(line), 20)
	}
}
