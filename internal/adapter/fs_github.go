package adapter

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/models"
)

const githubPageSize = 100

// GitHubConfig holds the settings of a GitHub compatible REST API.
type GitHubConfig struct {
	APIURL string
	Token  string
	// Owner owns the book repositories; empty means the authenticated user.
	Owner   string
	Public  bool
	Timeout time.Duration
	Retries int
}

// githubFS maps the first path segment to a repository of the owner and the
// rest to a path inside it. Every write is a commit, so the generic store
// must run writes serially (WriteConcurrency 1).
type githubFS struct {
	client *utils.HTTPClient
	public bool

	mu    sync.Mutex
	owner string
}

// NewGitHubFS returns a FileSystem over the repositories of an account.
func NewGitHubFS(cfg GitHubConfig) (FileSystem, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("%w: github token is empty", ErrInvalidCredentials)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = "https://api.github.com"
	}

	client := utils.NewRemoteHTTPClient(strings.TrimRight(cfg.APIURL, "/"), cfg.Timeout, cfg.Retries)
	client.
		SetAuthToken(cfg.Token).
		SetHeader("Accept", "application/vnd.github+json").
		SetHeader("X-GitHub-Api-Version", "2022-11-28")

	return &githubFS{client: client, owner: cfg.Owner, public: cfg.Public}, nil
}

type githubRepo struct {
	Name  string `json:"name"`
	Owner struct {
		Login string `json:"login"`
	} `json:"owner"`
}

type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type githubTree struct {
	Tree []struct {
		Path string `json:"path"`
		Type string `json:"type"`
		SHA  string `json:"sha"`
		Size int64  `json:"size"`
	} `json:"tree"`
	Truncated bool `json:"truncated"`
}

type githubContent struct {
	SHA string `json:"sha"`
}

// ListDirs lists the repositories of the owner; dir is ignored because
// repositories have no parent.
func (g *githubFS) ListDirs(ctx context.Context, _ string) ([]string, error) {
	owner, err := g.resolveOwner(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0)
	for page := 1; ; page++ {
		var repos []githubRepo
		resp, err := g.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"per_page":    fmt.Sprint(githubPageSize),
				"page":        fmt.Sprint(page),
				"affiliation": "owner,collaborator,organization_member",
			}).
			SetResult(&repos).
			Get("/user/repos")
		if err != nil {
			return nil, fmt.Errorf("github list repos request: %w", err)
		}
		if err = mapHTTPError(resp); err != nil {
			return nil, err
		}

		for _, r := range repos {
			if strings.EqualFold(r.Owner.Login, owner) {
				names = append(names, r.Name)
			}
		}
		if len(repos) < githubPageSize {
			return names, nil
		}
	}
}

func (g *githubFS) List(ctx context.Context, dir string) ([]models.FileEntry, error) {
	repo, sub := splitRepoPath(dir)
	owner, err := g.resolveOwner(ctx)
	if err != nil {
		return nil, err
	}

	var tree githubTree
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("recursive", "1").
		SetResult(&tree).
		Get(fmt.Sprintf("/repos/%s/%s/git/trees/HEAD", owner, repo))
	if err != nil {
		return nil, fmt.Errorf("github tree request: %w", err)
	}
	// 409 is returned for a repository without commits
	if resp.StatusCode() == http.StatusConflict {
		return []models.FileEntry{}, nil
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	if tree.Truncated {
		return nil, fmt.Errorf("%w: github tree of %s is truncated", ErrNotSupported, repo)
	}

	files := make([]models.FileEntry, 0, len(tree.Tree))
	for _, e := range tree.Tree {
		if e.Type != "blob" {
			continue
		}
		rel := e.Path
		if sub != "" {
			var ok bool
			if rel, ok = strings.CutPrefix(e.Path, sub+"/"); !ok {
				continue
			}
		}
		files = append(files, models.FileEntry{Path: rel, ETag: e.SHA, Size: e.Size})
	}
	return files, nil
}

func (g *githubFS) Read(ctx context.Context, p string) ([]byte, error) {
	endpoint, err := g.contentsURL(ctx, p)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/vnd.github.raw+json").
		Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("github read request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func (g *githubFS) Write(ctx context.Context, p string, data []byte) error {
	endpoint, err := g.contentsURL(ctx, p)
	if err != nil {
		return err
	}
	sha, err := g.blobSHA(ctx, endpoint)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	body := map[string]string{
		"message": "update " + path.Base(p),
		"content": base64.StdEncoding.EncodeToString(data),
	}
	if sha != "" {
		body["sha"] = sha
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(body).
		Put(endpoint)
	if err != nil {
		return fmt.Errorf("github write request: %w", err)
	}
	return mapHTTPError(resp)
}

func (g *githubFS) Remove(ctx context.Context, p string) error {
	endpoint, err := g.contentsURL(ctx, p)
	if err != nil {
		return err
	}
	sha, err := g.blobSHA(ctx, endpoint)
	if err != nil {
		return err
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"message": "delete " + path.Base(p), "sha": sha}).
		Delete(endpoint)
	if err != nil {
		return fmt.Errorf("github delete request: %w", err)
	}
	return mapHTTPError(resp)
}

// RemoveAll deletes the repository when dir names one, and every file
// below dir otherwise.
func (g *githubFS) RemoveAll(ctx context.Context, dir string) error {
	repo, sub := splitRepoPath(dir)
	owner, err := g.resolveOwner(ctx)
	if err != nil {
		return err
	}

	if sub == "" {
		resp, err := g.client.R().
			SetContext(ctx).
			Delete(fmt.Sprintf("/repos/%s/%s", owner, repo))
		if err != nil {
			return fmt.Errorf("github delete repo request: %w", err)
		}
		return mapHTTPError(resp)
	}

	files, err := g.List(ctx, dir)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err = g.Remove(ctx, path.Join(dir, f.Path)); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	return nil
}

// MakeDir creates the repository when dir names one; git has no empty
// directories, so nested dirs need nothing.
func (g *githubFS) MakeDir(ctx context.Context, dir string) error {
	repo, sub := splitRepoPath(dir)
	if sub != "" {
		return nil
	}

	owner, err := g.resolveOwner(ctx)
	if err != nil {
		return err
	}
	resp, err := g.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/repos/%s/%s", owner, repo))
	if err != nil {
		return fmt.Errorf("github get repo request: %w", err)
	}
	if resp.StatusCode() == http.StatusOK {
		return nil
	}
	if err = mapHTTPError(resp); !errors.Is(err, ErrNotFound) {
		return err
	}

	resp, err = g.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"name":      repo,
			"private":   !g.public,
			"auto_init": true,
		}).
		Post("/user/repos")
	if err != nil {
		return fmt.Errorf("github create repo request: %w", err)
	}
	return mapHTTPError(resp)
}

func (g *githubFS) Probe(ctx context.Context) error {
	_, err := g.UserInfo(ctx)
	return err
}

func (g *githubFS) UserInfo(ctx context.Context) (models.UserInfo, error) {
	var user githubUser
	resp, err := g.client.R().
		SetContext(ctx).
		SetResult(&user).
		Get("/user")
	if err != nil {
		return models.UserInfo{}, fmt.Errorf("github user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserInfo{}, err
	}
	return toUserInfo(user), nil
}

func (g *githubFS) Collaborators(ctx context.Context, repo string) ([]models.UserInfo, error) {
	owner, err := g.resolveOwner(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.UserInfo, 0)
	for page := 1; ; page++ {
		var users []githubUser
		resp, err := g.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"per_page": fmt.Sprint(githubPageSize),
				"page":     fmt.Sprint(page),
			}).
			SetResult(&users).
			Get(fmt.Sprintf("/repos/%s/%s/collaborators", owner, repo))
		if err != nil {
			return nil, fmt.Errorf("github collaborators request: %w", err)
		}
		if err = mapHTTPError(resp); err != nil {
			return nil, err
		}

		for _, u := range users {
			out = append(out, toUserInfo(u))
		}
		if len(users) < githubPageSize {
			return out, nil
		}
	}
}

func (g *githubFS) Invite(ctx context.Context, repo, username string) error {
	owner, err := g.resolveOwner(ctx)
	if err != nil {
		return err
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"permission": "push"}).
		Put(fmt.Sprintf("/repos/%s/%s/collaborators/%s", owner, repo, url.PathEscape(username)))
	if err != nil {
		return fmt.Errorf("github invite request: %w", err)
	}
	return mapHTTPError(resp)
}

func (g *githubFS) resolveOwner(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.owner != "" {
		return g.owner, nil
	}
	user, err := g.UserInfo(ctx)
	if err != nil {
		return "", err
	}
	g.owner = user.Name
	return g.owner, nil
}

func (g *githubFS) contentsURL(ctx context.Context, p string) (string, error) {
	owner, err := g.resolveOwner(ctx)
	if err != nil {
		return "", err
	}
	repo, sub := splitRepoPath(p)
	if sub == "" {
		return "", fmt.Errorf("%w: %q is not a file path", ErrBadRequest, p)
	}
	return fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, (&url.URL{Path: sub}).EscapedPath()), nil
}

func (g *githubFS) blobSHA(ctx context.Context, endpoint string) (string, error) {
	var content githubContent
	resp, err := g.client.R().
		SetContext(ctx).
		SetResult(&content).
		Get(endpoint)
	if err != nil {
		return "", fmt.Errorf("github contents request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return content.SHA, nil
}

// toUserInfo reports the login as Name; it is the handle collaborators and
// invitations are addressed by.
func toUserInfo(u githubUser) models.UserInfo {
	return models.UserInfo{ID: fmt.Sprint(u.ID), Name: u.Login, AvatarURL: u.AvatarURL}
}

func splitRepoPath(p string) (repo, sub string) {
	repo, sub, _ = strings.Cut(strings.Trim(p, "/"), "/")
	return repo, sub
}
