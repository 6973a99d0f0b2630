package entity

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	RepoHost       = "github.com"
	RawContentHost = "raw.githubusercontent.com"
)

var (
	ErrMalformedURL    = errors.New("malformed url")
	ErrUnsupportedHost = errors.New("unsupported host")
	ErrNotFileURL      = errors.New("not a file url")
)

// RawContentURL rewrites a GitHub browse URL
// (https://github.com/<owner>/<repo>/blob/<ref>/<path>) into its raw-content URL:
// the host becomes raw.githubusercontent.com and the blob segment after <repo> is dropped. URLs already on the
// raw-content host are returned as-is. Query and fragment are discarded. Segments
// keep their escaped form, so an encoded slash never splits a file name.
func RawContentURL(browseURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(browseURL))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: scheme %q", ErrMalformedURL, u.Scheme)
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.RawFragment = ""

	segments := strings.Split(strings.Trim(u.EscapedPath(), "/"), "/")

	switch strings.ToLower(u.Host) {
	case RawContentHost:
		if len(segments) < 4 || hasEmpty(segments) {
			return "", fmt.Errorf("%w: %s", ErrNotFileURL, u.Path)
		}
		return u.String(), nil
	case RepoHost, "www." + RepoHost:
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedHost, u.Host)
	}

	if len(segments) < 5 || segments[2] != "blob" || hasEmpty(segments) {
		return "", fmt.Errorf("%w: %s", ErrNotFileURL, u.Path)
	}

	return "https://" + RawContentHost + "/" + strings.Join(append(segments[:2:2], segments[3:]...), "/"), nil
}

// FileNameFromURL returns the last path segment of rawURL exactly as it appears
// in the URL, escapes included.
func FileNameFromURL(rawURL string) string {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		rawURL = rawURL[:i]
	}
	return rawURL[strings.LastIndex(rawURL, "/")+1:]
}

// RawLocation is a raw-content URL split into its repository coordinates.
type RawLocation struct {
	Owner string
	Repo  string
	Ref   string
	Path  string
}

func ParseRawLocation(rawURL string) (RawLocation, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return RawLocation{}, fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}
	if !strings.EqualFold(u.Host, RawContentHost) {
		return RawLocation{}, fmt.Errorf("%w: %s", ErrUnsupportedHost, u.Host)
	}
	segments := strings.SplitN(strings.Trim(u.Path, "/"), "/", 4)
	if len(segments) < 4 || hasEmpty(segments) {
		return RawLocation{}, fmt.Errorf("%w: %s", ErrNotFileURL, u.Path)
	}
	return RawLocation{
		Owner: segments[0],
		Repo:  segments[1],
		Ref:   segments[2],
		Path:  segments[3],
	}, nil
}

func hasEmpty(segments []string) bool {
	for _, s := range segments {
		if s == "" {
			return true
		}
	}
	return false
}
