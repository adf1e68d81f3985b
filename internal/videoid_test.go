package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{
			name:  "watch URL",
			input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			ok:    true,
		},
		{
			name:  "watch URL with extra params",
			input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=5s",
			want:  "dQw4w9WgXcQ",
			ok:    true,
		},
		{
			name:  "short URL",
			input: "https://youtu.be/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			ok:    true,
		},
		{
			name:  "short URL with share params",
			input: "https://youtu.be/dQw4w9WgXcQ?si=abcdefg",
			want:  "dQw4w9WgXcQ",
			ok:    true,
		},
		{
			name:  "shorts URL",
			input: "https://www.youtube.com/shorts/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			ok:    true,
		},
		{
			name:  "embed URL",
			input: "https://www.youtube.com/embed/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			ok:    true,
		},
		{
			name:  "mobile host",
			input: "https://m.youtube.com/watch?v=dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			ok:    true,
		},
		{
			name:  "no scheme",
			input: "youtube.com/watch?v=dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			ok:    true,
		},
		{
			name:  "surrounding whitespace",
			input: "  https://youtu.be/dQw4w9WgXcQ  ",
			want:  "dQw4w9WgXcQ",
			ok:    true,
		},
		{
			name:  "bare video ID is not a URL",
			input: "dQw4w9WgXcQ",
			ok:    false,
		},
		{
			name:  "empty input",
			input: "",
			ok:    false,
		},
		{
			name:  "whitespace only",
			input: "   ",
			ok:    false,
		},
		{
			name:  "unrelated URL",
			input: "https://example.com/video",
			ok:    false,
		},
		{
			name:  "watch URL with short ID",
			input: "https://www.youtube.com/watch?v=tooshort",
			ok:    false,
		},
		{
			name:  "garbage",
			input: "not a url at all",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractVideoID(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestIsVideoID(t *testing.T) {
	assert.True(t, IsVideoID("dQw4w9WgXcQ"))
	assert.True(t, IsVideoID("a_b-c_d-e_f"))
	assert.False(t, IsVideoID("tooshort"))
	assert.False(t, IsVideoID("waytoolongtobeanid"))
	assert.False(t, IsVideoID("has spaces!!"))
	assert.False(t, IsVideoID(""))
}

func TestThumbnailURL(t *testing.T) {
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/0.jpg", ThumbnailURL("dQw4w9WgXcQ"))
}

func TestWatchURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"))
}
