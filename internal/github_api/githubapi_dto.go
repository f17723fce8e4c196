// DTOs for the GitHub REST responses the showcase reads.

package githubapi

import (
	"encoding/json"
	"fmt"
	"time"
)

type Owner struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
}

// Account is the profile returned by GET /users/{name}.
type Account struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
	Bio       string `json:"bio"`
	Location  string `json:"location"`
	Blog      string `json:"blog"`
	CreatedAt string `json:"created_at"`
}

// DisplayName falls back to the login when the profile has no name.
func (a Account) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Login
}

// Repository is one entry of GET /users/{name}/repos. Timestamps stay raw so
// a malformed value never fails the whole list.
type Repository struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	FullName        string   `json:"full_name"`
	Owner           Owner    `json:"owner"`
	Description     string   `json:"description"`
	Language        string   `json:"language"`
	StargazersCount int      `json:"stargazers_count"`
	Homepage        string   `json:"homepage"`
	HTMLURL         string   `json:"html_url"`
	Topics          []string `json:"topics"`
	DefaultBranch   string   `json:"default_branch"`
	PushedAt        string   `json:"pushed_at"`
}

// PushedTime parses PushedAt. Missing or invalid values are the unix epoch.
func (r Repository) PushedTime() time.Time {
	if r.PushedAt == "" {
		return time.Unix(0, 0).UTC()
	}
	t, err := time.Parse(time.RFC3339, r.PushedAt)
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return t
}

// ReadmeContent is GET /repos/{owner}/{repo}/readme.
type ReadmeContent struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Content     string `json:"content"`
	Encoding    string `json:"encoding"`
	DownloadURL string `json:"download_url"`
}

func DecodeReadme(body []byte) (*ReadmeContent, error) {
	content := &ReadmeContent{}
	if err := json.Unmarshal(body, content); err != nil {
		return nil, fmt.Errorf("cannot decode readme content: %w", err)
	}
	return content, nil
}
