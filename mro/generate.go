package mro

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// mroHeader is the fixed provenance banner of every generated file.
const mroHeader = `
#
# WARNING: This file is auto-generated.
# DO NOT MODIFY THIS FILE DIRECTLY
#

`

// WriteMro renders the whole batch to w: the banner, the filetype header
// accumulated across the batch, then one stage body per definition separated
// by blank lines. Declarations are rendered in batch order, which also fixes
// the filetype accumulation order.
func WriteMro(w io.Writer, stages []*StageMro) error {
	var header FiletypeHeader
	var body strings.Builder
	for _, s := range stages {
		header.AddStage(s)
		body.WriteString(s.MroString())
		body.WriteString("\n")
	}
	_, err := io.WriteString(w, mroHeader+header.MroString()+body.String())
	return err
}

// MakeMroFile writes the rendered batch to path, or to standard output when
// path is empty. The destination check runs before anything is rendered or
// written: an existing directory fails regardless of overwrite, and an
// existing file fails unless overwrite was explicitly requested.
func MakeMroFile(path string, overwrite bool, stages []*StageMro) error {
	if path == "" {
		return WriteMro(os.Stdout, stages)
	}
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("mro: path %s is a directory", path)
	case err == nil && !overwrite:
		return fmt.Errorf("mro: file %s exists; explicitly request overwrite to replace it", path)
	case err != nil && !os.IsNotExist(err):
		return fmt.Errorf("mro: stat %s: %w", path, err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mro: create %s: %w", path, err)
	}
	defer out.Close()
	if err := WriteMro(out, stages); err != nil {
		return fmt.Errorf("mro: write %s: %w", path, err)
	}
	return out.Close()
}
