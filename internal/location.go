package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultRemoteURL    = "https://gitlab.com/nsnam/ns-3-dev"
	DefaultLocalPath    = "../ns-3-dev"
	DefaultBranch       = "master"
	DefaultCheckoutMode = "cli"
	NativeCheckoutMode  = "native"
	DefaultConfigFile   = "graceclone.yaml"
)

// RepositoryLocation pins the remote being mirrored and where it lives on
// disk.
type RepositoryLocation struct {
	RemoteURL string
	LocalPath string // absolute
	Branch    string
}

type LocationResolver struct {
	baseDir string
}

// NewLocationResolver anchors relative paths at the directory holding the
// running executable. Config.BaseDir overrides it per resolution.
func NewLocationResolver() *LocationResolver {
	exe, err := os.Executable()
	if err != nil {
		cwd, _ := os.Getwd()
		return &LocationResolver{baseDir: cwd}
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return &LocationResolver{baseDir: filepath.Dir(exe)}
}

func NewLocationResolverAt(baseDir string) *LocationResolver {
	return &LocationResolver{baseDir: baseDir}
}

func (r *LocationResolver) BaseDir() string {
	return r.baseDir
}

func (r *LocationResolver) Resolve(cfg *Config) (RepositoryLocation, error) {
	if err := cfg.Validate(); err != nil {
		return RepositoryLocation{}, err
	}

	base := r.baseDir
	if cfg.BaseDir != "" {
		base = cfg.BaseDir
	}

	path := cfg.LocalPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return RepositoryLocation{}, fmt.Errorf("resolve local path: %w", err)
	}

	return RepositoryLocation{
		RemoteURL: cfg.RemoteURL,
		LocalPath: abs,
		Branch:    cfg.DefaultBranch,
	}, nil
}
