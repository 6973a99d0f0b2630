package entity

type GenerationRequest struct {
	RepoURL string `json:"repoUrl"`
}

// RawFile is the buffered content read from a raw-content URL.
type RawFile struct {
	URL      string
	FileName string
	Content  string
}

type GenerationResult struct {
	FileName      string `json:"fileName"`
	OriginalCode  string `json:"originalCode"`
	Documentation string `json:"documentation"`
}
