// Package governance implements optional, advisory catalog linting using
// Rego policies (spec's open questions leave room for richer catalog
// curation tooling beyond the fixed Eligibility Filter). This is
// deliberately off the scoring path: Lint never influences
// eligibility or score, only surfaces warnings about catalog hygiene.
package governance

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// DefaultPoliciesDir is the default directory for governance policies,
// relative to a project root.
const DefaultPoliciesDir = ".archfit/governance"

// PolicyFile is one loaded Rego policy.
type PolicyFile struct {
	Path    string
	Name    string
	Content string
}

// Loader scans and loads .rego policy files from a configured directory,
// using afero.Fs so it is testable against an in-memory filesystem.
type Loader struct {
	fs      afero.Fs
	baseDir string
}

// NewLoader builds a Loader reading from baseDir through fs.
func NewLoader(fs afero.Fs, baseDir string) *Loader {
	return &Loader{fs: fs, baseDir: baseDir}
}

// LoadAll loads every .rego file under baseDir, recursively. Returns an
// empty slice, not an error, if the directory doesn't exist — governance
// linting is entirely optional.
func (l *Loader) LoadAll() ([]*PolicyFile, error) {
	exists, err := afero.DirExists(l.fs, l.baseDir)
	if err != nil {
		return nil, fmt.Errorf("check governance policies directory: %w", err)
	}
	if !exists {
		return []*PolicyFile{}, nil
	}

	var policies []*PolicyFile
	err = afero.Walk(l.fs, l.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".rego") {
			return nil
		}
		p, err := l.loadFile(path)
		if err != nil {
			return fmt.Errorf("load policy %s: %w", path, err)
		}
		policies = append(policies, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk governance policies directory: %w", err)
	}
	return policies, nil
}

func (l *Loader) loadFile(path string) (*PolicyFile, error) {
	file, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return &PolicyFile{
		Path:    path,
		Name:    strings.TrimSuffix(filepath.Base(path), ".rego"),
		Content: string(content),
	}, nil
}

// DefaultPolicyPath returns the conventional governance policies
// directory for a project root.
func DefaultPolicyPath(projectRoot string) string {
	return filepath.Join(projectRoot, DefaultPoliciesDir)
}
