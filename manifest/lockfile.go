// Package manifest manages the two project files solpm owns: the
// SolanaPrograms.json lockfile recording installed program dependencies
// and the SolanaPrograms.toml config describing the project's own
// program for publishing.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/0xsouravm/solpm/errors"
)

const (
	// LockFileName is the dependency lockfile in the project root
	LockFileName = "SolanaPrograms.json"

	// ConfigFileName is the project's own program manifest
	ConfigFileName = "SolanaPrograms.toml"

	// ClientDir is where generated TypeScript clients are written
	ClientDir = "program/client"

	// IDLDir is where fetched IDL files are stored
	IDLDir = "program/idl"
)

// Program is one installed dependency as recorded in the lockfile.
type Program struct {
	Version   string `json:"version"`
	ProgramID string `json:"program_id"`
	Network   string `json:"network"`
	IDLPath   string `json:"idl_path,omitempty"`
}

// LockFile is the full SolanaPrograms.json document. Runtime and
// dev-only dependencies live in separate maps, mirroring the
// dependencies/devDependencies split of JS package managers.
type LockFile struct {
	Programs    map[string]Program `json:"programs"`
	DevPrograms map[string]Program `json:"devPrograms"`
}

// NewLockFile returns an empty lockfile with both maps allocated, so a
// fresh project serializes as {"programs": {}, "devPrograms": {}}
// rather than nulls.
func NewLockFile() *LockFile {
	return &LockFile{
		Programs:    make(map[string]Program),
		DevPrograms: make(map[string]Program),
	}
}

// LockFileExists reports whether the lockfile is present in the current
// directory.
func LockFileExists() bool {
	_, err := os.Stat(LockFileName)
	return err == nil
}

// LoadLockFile reads and parses SolanaPrograms.json from the current
// directory. A missing file is reported through ErrConfigNotFound so
// commands can suggest running init/add first.
func LoadLockFile() (*LockFile, error) {
	data, err := os.ReadFile(LockFileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigNotFoundError("%s not found. Run 'solpm add <program>' first.", LockFileName)
		}
		return nil, errors.Wrapf(err, "reading %s", LockFileName)
	}

	var lock LockFile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", LockFileName)
	}
	if lock.Programs == nil {
		lock.Programs = make(map[string]Program)
	}
	if lock.DevPrograms == nil {
		lock.DevPrograms = make(map[string]Program)
	}
	return &lock, nil
}

// Save writes the lockfile back to disk, pretty-printed for diffs.
func (l *LockFile) Save() error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling lockfile")
	}
	if err := os.WriteFile(LockFileName, append(data, '\n'), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", LockFileName)
	}
	return nil
}

// Add records a dependency under the given name, replacing any existing
// entry. Dev dependencies go to the devPrograms map.
func (l *LockFile) Add(name string, program Program, dev bool) {
	if dev {
		l.DevPrograms[name] = program
	} else {
		l.Programs[name] = program
	}
}

// Remove deletes a dependency from whichever map holds it. Returns
// false when the name is in neither.
func (l *LockFile) Remove(name string) bool {
	if _, ok := l.Programs[name]; ok {
		delete(l.Programs, name)
		return true
	}
	if _, ok := l.DevPrograms[name]; ok {
		delete(l.DevPrograms, name)
		return true
	}
	return false
}

// Entry pairs a dependency with its lockfile name.
type Entry struct {
	Name    string
	Program Program
	Dev     bool
}

// All returns every dependency, runtime entries first, each group in
// sorted name order. Map iteration order is random in Go, so anything
// that walks the lockfile (install, codegen) goes through this to keep
// output and on-disk artifacts stable across runs.
func (l *LockFile) All() []Entry {
	entries := make([]Entry, 0, len(l.Programs)+len(l.DevPrograms))
	for _, name := range sortedKeys(l.Programs) {
		entries = append(entries, Entry{Name: name, Program: l.Programs[name]})
	}
	for _, name := range sortedKeys(l.DevPrograms) {
		entries = append(entries, Entry{Name: name, Program: l.DevPrograms[name], Dev: true})
	}
	return entries
}

// Find looks a dependency up by name in either map.
func (l *LockFile) Find(name string) (Program, bool) {
	if p, ok := l.Programs[name]; ok {
		return p, true
	}
	if p, ok := l.DevPrograms[name]; ok {
		return p, true
	}
	return Program{}, false
}

// IDLFilePath resolves where a dependency's IDL lives on disk: the
// custom idl_path when set, otherwise program/idl/<name>.json.
func (p Program) IDLFilePath(name string) string {
	if p.IDLPath != "" {
		return p.IDLPath
	}
	return filepath.Join(IDLDir, name+".json")
}

func sortedKeys(m map[string]Program) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
