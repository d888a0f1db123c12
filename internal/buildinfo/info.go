package buildinfo

// Set at build time via -ldflags.
var (
	Version    = "v1.0.0"
	CommitHash = "unknown"
)

type Info struct {
	About      string `json:"about,omitempty"`
	Version    string `json:"version,omitempty"`
	CommitHash string `json:"commit_hash,omitempty"`
}

func GetBuildInfo() Info {
	return Info{
		About:      "https://github.com/afrantzis/ugcs",
		Version:    Version,
		CommitHash: CommitHash,
	}
}
