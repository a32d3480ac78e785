package selfupdate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultOwner   = "abhisek"
	defaultRepo    = "focusflow"
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 10 * time.Second

	// DevVersion is the version string of builds without release ldflags.
	DevVersion = "(devel)"
)

var (
	ErrDevBuild      = errors.New("development build has no release version")
	ErrAlreadyLatest = errors.New("already running the latest version")
)

// Checker looks up focusflow releases on GitHub and installs them.
type Checker struct {
	owner    string
	repo     string
	baseURL  string
	client   *http.Client
	goos     string
	goarch   string
	execPath func() (string, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseURL overrides the GitHub API base URL.
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.baseURL = u }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

// WithRepo points the checker at another GitHub repository.
func WithRepo(owner, repo string) Option {
	return func(c *Checker) {
		c.owner = owner
		c.repo = repo
	}
}

func withPlatform(goos, goarch string) Option {
	return func(c *Checker) { c.goos, c.goarch = goos, goarch }
}

func withExecPath(fn func() (string, error)) Option {
	return func(c *Checker) { c.execPath = fn }
}

// NewChecker creates a Checker for the focusflow releases.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		owner:    defaultOwner,
		repo:     defaultRepo,
		baseURL:  defaultBaseURL,
		client:   &http.Client{Timeout: defaultTimeout},
		goos:     runtime.GOOS,
		goarch:   runtime.GOARCH,
		execPath: currentExecutable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func currentExecutable() (string, error) {
	p, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(p)
}

type CheckInput struct {
	Version string
}

type CheckResult struct {
	UpdateAvailable bool
	LatestVersion   string
	ReleaseURL      string
}

// Check compares input.Version against the latest published release.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	current, err := parseVersion(input.Version)
	if err != nil {
		return nil, err
	}
	rel, err := c.latestRelease(ctx)
	if err != nil {
		return nil, err
	}
	return &CheckResult{
		UpdateAvailable: semver.Compare(rel.version, current) > 0,
		LatestVersion:   rel.Tag,
		ReleaseURL:      rel.URL,
	}, nil
}

// parseVersion returns the canonical semver form of v.
func parseVersion(v string) (string, error) {
	if v == DevVersion || v == "" {
		return "", ErrDevBuild
	}
	c := canonical(v)
	if !semver.IsValid(c) {
		return "", fmt.Errorf("invalid current version %q", v)
	}
	return c, nil
}

// canonical adds the "v" prefix semver expects.
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
