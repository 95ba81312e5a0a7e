package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	stackyerrors "stacky.dev/stacky/internal/errors"
)

// JournalFileName is the journal file name inside the git directory
const JournalFileName = "stacky.state"

// OperationKind identifies which payload a Record carries
type OperationKind int

const (
	KindSync OperationKind = iota + 1
	KindFold
	KindMergeFold
)

func (k OperationKind) String() string {
	switch k {
	case KindSync:
		return "sync"
	case KindFold:
		return "fold"
	case KindMergeFold:
		return "merge_fold"
	default:
		return "unknown"
	}
}

// FoldPayload is the resume point of a cherry-pick fold.
// Commits are stored oldest-pending-last.
type FoldPayload struct {
	FoldBranch   string   `json:"fold_branch"`
	ParentBranch string   `json:"parent_branch"`
	Commits      []string `json:"commits"`
	Children     []string `json:"children"`
	AllowEmpty   bool     `json:"allow_empty"`
}

// MergeFoldPayload is the resume point of a merge fold
type MergeFoldPayload struct {
	FoldBranch   string   `json:"fold_branch"`
	ParentBranch string   `json:"parent_branch"`
	Children     []string `json:"children"`
}

// Record is the operation in progress. Branch is the branch the user was on
// when the operation began. Exactly one payload matches Kind.
type Record struct {
	Branch    string
	Kind      OperationKind
	Sync      []string
	Fold      *FoldPayload
	MergeFold *MergeFoldPayload
}

// NewSyncRecord creates a sync record; names are oldest-pending-last
func NewSyncRecord(branch string, names []string) Record {
	return Record{Branch: branch, Kind: KindSync, Sync: append([]string{}, names...)}
}

// NewFoldRecord creates a cherry-pick fold record
func NewFoldRecord(branch string, payload FoldPayload) Record {
	payload.Commits = append([]string{}, payload.Commits...)
	payload.Children = append([]string{}, payload.Children...)
	return Record{Branch: branch, Kind: KindFold, Fold: &payload}
}

// NewMergeFoldRecord creates a merge fold record
func NewMergeFoldRecord(branch string, payload MergeFoldPayload) Record {
	payload.Children = append([]string{}, payload.Children...)
	return Record{Branch: branch, Kind: KindMergeFold, MergeFold: &payload}
}

type recordJSON struct {
	Branch    string          `json:"branch"`
	Sync      json.RawMessage `json:"sync,omitempty"`
	Fold      json.RawMessage `json:"fold,omitempty"`
	MergeFold json.RawMessage `json:"merge_fold,omitempty"`
}

// MarshalJSON writes the branch plus the single key of the record's kind
func (r Record) MarshalJSON() ([]byte, error) {
	out := recordJSON{Branch: r.Branch}
	var err error
	switch r.Kind {
	case KindSync:
		names := r.Sync
		if names == nil {
			names = []string{}
		}
		out.Sync, err = json.Marshal(names)
	case KindFold:
		if r.Fold == nil {
			return nil, fmt.Errorf("fold record without payload")
		}
		out.Fold, err = json.Marshal(r.Fold)
	case KindMergeFold:
		if r.MergeFold == nil {
			return nil, fmt.Errorf("merge_fold record without payload")
		}
		out.MergeFold, err = json.Marshal(r.MergeFold)
	default:
		return nil, fmt.Errorf("unknown operation kind %d", r.Kind)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts a record with exactly one kind key
func (r *Record) UnmarshalJSON(data []byte) error {
	var in recordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*r = Record{Branch: in.Branch}
	present := 0
	if in.Sync != nil {
		present++
		r.Kind = KindSync
		if err := json.Unmarshal(in.Sync, &r.Sync); err != nil {
			return fmt.Errorf("invalid sync payload: %w", err)
		}
	}
	if in.Fold != nil {
		present++
		r.Kind = KindFold
		r.Fold = &FoldPayload{}
		if err := json.Unmarshal(in.Fold, r.Fold); err != nil {
			return fmt.Errorf("invalid fold payload: %w", err)
		}
	}
	if in.MergeFold != nil {
		present++
		r.Kind = KindMergeFold
		r.MergeFold = &MergeFoldPayload{}
		if err := json.Unmarshal(in.MergeFold, r.MergeFold); err != nil {
			return fmt.Errorf("invalid merge_fold payload: %w", err)
		}
	}
	if present != 1 {
		return stackyerrors.NewUserError("Unknown operation in progress")
	}
	return nil
}

// Journal is the single-slot record of the operation in progress
type Journal struct {
	path string
}

// NewJournal creates a journal stored at path
func NewJournal(path string) *Journal {
	return &Journal{path: path}
}

// JournalPath returns the journal location for a git directory.
// STACKY_STATE_FILE overrides it.
func JournalPath(gitDir string) string {
	if custom := os.Getenv("STACKY_STATE_FILE"); custom != "" {
		return custom
	}
	return filepath.Join(gitDir, JournalFileName)
}

// Path returns the canonical journal path
func (j *Journal) Path() string {
	return j.path
}

// Save replaces the journal with record. The record is written to a temporary
// sibling and renamed over the canonical path, so readers only ever observe a
// complete record.
func (j *Journal) Save(record Record) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal journal: %w", err)
	}

	tmpPath := j.path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create journal: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write journal: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync journal: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close journal: %w", err)
	}

	if err := os.Rename(tmpPath, j.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace journal: %w", err)
	}
	return nil
}

// Load reads the journal. A missing journal is a NotFoundError.
func (j *Journal) Load() (*Record, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, stackyerrors.NewNotFoundError("No previous command in progress")
		}
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Exists reports whether an operation is in progress
func (j *Journal) Exists() bool {
	_, err := os.Stat(j.path)
	return err == nil
}

// Clear removes the journal
func (j *Journal) Clear() error {
	if err := os.Remove(j.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear journal: %w", err)
	}
	return nil
}
