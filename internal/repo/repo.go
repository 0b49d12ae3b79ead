// Package repo handles data-root initialization and discovery. A revlog
// data root is a directory containing .revlog/ with a format_version file
// and the persistence backend's data.
package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/revlog-project/revlog/pkg/config"
	"github.com/revlog-project/revlog/pkg/fsutil"
)

const (
	FormatVersion     = 1
	RevlogDirName     = ".revlog"
	FormatVersionFile = "format_version"
	RepoIDFile        = "repo_id"
)

// Repo represents an initialized revlog data root.
type Repo struct {
	Root          string
	FormatVersion int
	RepoID        string
}

// Init creates a new data root at the given path.
func Init(path string) (*Repo, error) {
	dir := filepath.Join(path, RevlogDirName)
	if _, err := os.Stat(filepath.Join(dir, FormatVersionFile)); err == nil {
		return nil, fmt.Errorf("revlog data root already initialized at %s", path)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	if err := fsutil.AtomicWrite(filepath.Join(dir, FormatVersionFile), []byte("1\n"), 0644); err != nil {
		return nil, fmt.Errorf("write format_version: %w", err)
	}

	repoID := uuid.NewString()
	if err := fsutil.AtomicWrite(filepath.Join(dir, RepoIDFile), []byte(repoID+"\n"), 0644); err != nil {
		return nil, fmt.Errorf("write repo_id: %w", err)
	}

	if err := config.Save(path, config.Default()); err != nil {
		return nil, fmt.Errorf("write default config: %w", err)
	}

	if err := fsutil.FsyncDir(path); err != nil {
		return nil, fmt.Errorf("fsync data root: %w", err)
	}

	return &Repo{Root: path, FormatVersion: FormatVersion, RepoID: repoID}, nil
}

// Discover walks up from cwd to find the data root (directory containing
// .revlog/).
func Discover(cwd string) (*Repo, error) {
	path := cwd
	for {
		dir := filepath.Join(path, RevlogDirName)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			version, err := readFormatVersion(dir)
			if err != nil {
				return nil, err
			}
			if version > FormatVersion {
				return nil, fmt.Errorf("data root format version %d > supported %d", version, FormatVersion)
			}
			repoID, _ := readRepoID(dir)
			return &Repo{Root: path, FormatVersion: version, RepoID: repoID}, nil
		}

		parent := filepath.Dir(path)
		if parent == path {
			return nil, fmt.Errorf("no revlog data root found (no %s/ in parent directories)", RevlogDirName)
		}
		path = parent
	}
}

func readFormatVersion(dir string) (int, error) {
	data, err := os.ReadFile(filepath.Join(dir, FormatVersionFile))
	if err != nil {
		return 0, fmt.Errorf("read format_version: %w", err)
	}
	var version int
	if _, err := fmt.Sscanf(string(data), "%d", &version); err != nil {
		return 0, fmt.Errorf("parse format_version: %w", err)
	}
	return version, nil
}

func readRepoID(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, RepoIDFile))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
