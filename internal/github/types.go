package github

// Repository holds the subset of repository metadata used by the generator.
type Repository struct {
	// Name is the repository name without the owner prefix.
	Name string `json:"name"`
	// Description is the short repository description, possibly empty.
	Description string `json:"description"`
	// HTMLURL is the canonical browser URL of the repository.
	HTMLURL string `json:"html_url"`
	// Homepage is the project homepage, possibly empty.
	Homepage string `json:"homepage"`
	// License is the detected license, nil when the API reports none.
	License *License `json:"license"`
}

// License carries the SPDX identifier of a repository license.
type License struct {
	SPDXID string `json:"spdx_id"`
}

// Release represents a published release with its downloadable assets.
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Asset represents a single release asset (binary archive).
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// Gist is a list-of-files document with one description and one host URL.
type Gist struct {
	Description string              `json:"description"`
	HTMLURL     string              `json:"html_url"`
	Files       map[string]GistFile `json:"files"`
}

// GistFile describes one file inside a gist.
type GistFile struct {
	Filename string `json:"filename"`
	RawURL   string `json:"raw_url"`
}
