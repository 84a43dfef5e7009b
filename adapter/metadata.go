package adapter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Metadata mediates the file-based exchange between one running stage phase
// and the martian scheduler. Every metadata file lives under the metadata
// path with a leading underscore; the journal tells the scheduler which of
// them changed.
type Metadata struct {
	StageName string
	StageType string

	metadataPath  string
	filesPath     string
	runFilePrefix string

	jobInfo map[string]any
}

// NewMetadata parses the invocation arguments the scheduler passes to a
// stage binary: stage name, stage type (split, main or join), the metadata
// directory, the stage files directory and the run file prefix used for
// journal notifications.
func NewMetadata(args []string) (*Metadata, error) {
	if len(args) < 5 {
		return nil, fmt.Errorf("adapter: expected 5 arguments (stage, type, metadata path, files path, run file), got %d", len(args))
	}
	return &Metadata{
		StageName:     args[0],
		StageType:     args[1],
		metadataPath:  args[2],
		filesPath:     args[3],
		runFilePrefix: args[4],
	}, nil
}

// FilesPath returns the directory the stage may write its output files to.
func (md *Metadata) FilesPath() string { return md.filesPath }

// makePath resolves a metadata file name to its underscore-prefixed path.
func (md *Metadata) makePath(name string) string {
	return filepath.Join(md.metadataPath, "_"+name)
}

// UpdateJobInfo reads the _jobinfo document the scheduler wrote for this
// phase. It must be called before the stage code runs.
func (md *Metadata) UpdateJobInfo() error {
	raw, err := os.ReadFile(md.makePath("jobinfo"))
	if err != nil {
		return fmt.Errorf("adapter: read jobinfo: %w", err)
	}
	if err := json.Unmarshal(raw, &md.jobInfo); err != nil {
		return fmt.Errorf("adapter: decode jobinfo: %w", err)
	}
	return nil
}

// JobInfo returns a value from the jobinfo document, or nil when absent.
func (md *Metadata) JobInfo(key string) any {
	return md.jobInfo[key]
}

// ReadInto decodes the named metadata file into v.
func (md *Metadata) ReadInto(name string, v any) error {
	raw, err := os.ReadFile(md.makePath(name))
	if err != nil {
		return fmt.Errorf("adapter: read _%s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("adapter: decode _%s: %w", name, err)
	}
	return nil
}

// WriteRaw writes the named metadata file and notifies the journal.
func (md *Metadata) WriteRaw(name, text string) error {
	if err := os.WriteFile(md.makePath(name), []byte(text), 0o644); err != nil {
		return fmt.Errorf("adapter: write _%s: %w", name, err)
	}
	return md.UpdateJournal(name)
}

// Write marshals v as JSON into the named metadata file.
func (md *Metadata) Write(name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("adapter: encode _%s: %w", name, err)
	}
	return md.WriteRaw(name, string(raw))
}

// UpdateJournal touches the per-file run notification the scheduler polls.
func (md *Metadata) UpdateJournal(name string) error {
	runFile := md.runFilePrefix + "." + name
	if err := os.WriteFile(runFile, nil, 0o644); err != nil {
		return fmt.Errorf("adapter: journal %s: %w", name, err)
	}
	return nil
}

// Complete marks the phase as finished.
func (md *Metadata) Complete() error {
	return md.WriteRaw("complete", "complete\n")
}
