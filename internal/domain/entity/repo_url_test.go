package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawContentURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "browse url",
			in:   "https://github.com/user/repo/blob/main/app.js",
			want: "https://raw.githubusercontent.com/user/repo/main/app.js",
		},
		{
			name: "nested path",
			in:   "https://github.com/user/repo/blob/v1.2.0/internal/pkg/a.go",
			want: "https://raw.githubusercontent.com/user/repo/v1.2.0/internal/pkg/a.go",
		},
		{
			name: "owner named blob",
			in:   "https://github.com/blob/repo/blob/main/x.py",
			want: "https://raw.githubusercontent.com/blob/repo/main/x.py",
		},
		{
			name: "blob directory inside path",
			in:   "https://github.com/user/repo/blob/main/blob/x.py",
			want: "https://raw.githubusercontent.com/user/repo/main/blob/x.py",
		},
		{
			name: "www host and http scheme",
			in:   "http://www.github.com/user/repo/blob/main/app.js",
			want: "https://raw.githubusercontent.com/user/repo/main/app.js",
		},
		{
			name: "query and fragment dropped",
			in:   "https://github.com/user/repo/blob/main/app.js?plain=1#L10-L20",
			want: "https://raw.githubusercontent.com/user/repo/main/app.js",
		},
		{
			name: "surrounding whitespace",
			in:   "  https://github.com/user/repo/blob/main/app.js\n",
			want: "https://raw.githubusercontent.com/user/repo/main/app.js",
		},
		{
			name: "already raw",
			in:   "https://raw.githubusercontent.com/user/repo/main/app.js",
			want: "https://raw.githubusercontent.com/user/repo/main/app.js",
		},
		{
			name: "escaped characters survive",
			in:   "https://github.com/user/repo/blob/main/docs/my%20file.md",
			want: "https://raw.githubusercontent.com/user/repo/main/docs/my%20file.md",
		},
		{
			name: "escaped slash stays inside the file name",
			in:   "https://github.com/user/repo/blob/main/a%2Fb.js",
			want: "https://raw.githubusercontent.com/user/repo/main/a%2Fb.js",
		},
		{
			name: "non-ascii name is percent-encoded",
			in:   "https://github.com/user/repo/blob/main/über.go",
			want: "https://raw.githubusercontent.com/user/repo/main/%C3%BCber.go",
		},
		{
			name: "plus kept literally",
			in:   "https://github.com/user/repo/blob/main/c++/a+b.cc",
			want: "https://raw.githubusercontent.com/user/repo/main/c++/a+b.cc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RawContentURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRawContentURL_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
		is   error
	}{
		{name: "empty", in: "", is: ErrMalformedURL},
		{name: "no scheme", in: "github.com/user/repo/blob/main/a.go", is: ErrMalformedURL},
		{name: "ftp scheme", in: "ftp://github.com/user/repo/blob/main/a.go", is: ErrMalformedURL},
		{name: "other host", in: "https://gitlab.com/user/repo/blob/main/a.go", is: ErrUnsupportedHost},
		{name: "repo root", in: "https://github.com/user/repo", is: ErrNotFileURL},
		{name: "tree", in: "https://github.com/user/repo/tree/main/src", is: ErrNotFileURL},
		{name: "blob without path", in: "https://github.com/user/repo/blob/main", is: ErrNotFileURL},
		{name: "empty segment", in: "https://github.com/user//blob/main/a.go", is: ErrNotFileURL},
		{name: "raw without path", in: "https://raw.githubusercontent.com/user/repo/main", is: ErrNotFileURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RawContentURL(tt.in)
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestFileNameFromURL(t *testing.T) {
	assert.Equal(t, "app.js", FileNameFromURL("https://raw.githubusercontent.com/user/repo/main/app.js"))
	assert.Equal(t, "a.go", FileNameFromURL("https://raw.githubusercontent.com/u/r/main/internal/a.go"))
	assert.Equal(t, "my%20file.md", FileNameFromURL("https://raw.githubusercontent.com/u/r/main/my%20file.md"))
	assert.Equal(t, "a%2Fb.js", FileNameFromURL("https://raw.githubusercontent.com/u/r/main/a%2Fb.js"))
	assert.Equal(t, "app.js", FileNameFromURL("https://raw.githubusercontent.com/u/r/main/app.js?token=x#L1"))
	assert.Equal(t, "plain", FileNameFromURL("plain"))
}

func TestParseRawLocation(t *testing.T) {
	loc, err := ParseRawLocation("https://raw.githubusercontent.com/user/repo/main/internal/pkg/a.go")
	require.NoError(t, err)
	assert.Equal(t, RawLocation{Owner: "user", Repo: "repo", Ref: "main", Path: "internal/pkg/a.go"}, loc)

	_, err = ParseRawLocation("https://github.com/user/repo/main/a.go")
	assert.ErrorIs(t, err, ErrUnsupportedHost)

	_, err = ParseRawLocation("https://raw.githubusercontent.com/user/repo/main")
	assert.ErrorIs(t, err, ErrNotFileURL)
}
