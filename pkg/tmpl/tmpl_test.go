package tmpl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	now = func() time.Time { return time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = time.Now })

	tests := []struct {
		name    string
		tmpl    string
		data    any
		want    string
		wantErr bool
	}{
		{
			name: "simple substitution",
			tmpl: "{{ .Slug }}.png",
			data: map[string]string{"Slug": "untitled-whiteboard"},
			want: "untitled-whiteboard.png",
		},
		{
			name: "struct data",
			tmpl: "{{ .Slug }}-{{ .ID }}.png",
			data: struct {
				Slug string
				ID   string
			}{Slug: "retro", ID: "abc"},
			want: "retro-abc.png",
		},
		{
			name: "no variables",
			tmpl: "board.png",
			data: nil,
			want: "board.png",
		},
		{
			name:    "missing key errors",
			tmpl:    "{{ .Missing }}",
			data:    map[string]string{"Slug": "test"},
			wantErr: true,
		},
		{
			name:    "invalid template syntax",
			tmpl:    "{{ .Slug }",
			data:    map[string]string{"Slug": "test"},
			wantErr: true,
		},
		{
			name: "slug function",
			tmpl: "{{ .Title | slug }}",
			data: map[string]string{"Title": "  Q3 Roadmap: Draft #2 "},
			want: "q3-roadmap-draft-2",
		},
		{
			name: "safe function",
			tmpl: "{{ .Title | safe }}",
			data: map[string]string{"Title": "a/b\\c:d"},
			want: "a-b-c-d",
		},
		{
			name: "lower function",
			tmpl: "{{ .Title | lower }}",
			data: map[string]string{"Title": "Mixed Case"},
			want: "mixed case",
		},
		{
			name: "date function",
			tmpl: `{{ date "2006-01-02" }}.png`,
			data: nil,
			want: "2026-03-09.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.tmpl, tt.data)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
