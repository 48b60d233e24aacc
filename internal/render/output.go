package render

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// OutputWriteError reports a chart or preview that could not be written.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error {
	return e.Err
}

// WriteFile writes the output of write to path with mode 0644.
//
// The data goes to a pending file in the same directory, which replaces path
// only when write succeeds. On failure the pending file is removed and path
// is left untouched.
func WriteFile(path string, write func(io.Writer) error) error {
	f, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithStaticPermissions(0o644),
	)
	if err != nil {
		return &OutputWriteError{Path: path, Err: err}
	}
	defer f.Cleanup()

	if err := write(f); err != nil {
		return &OutputWriteError{Path: path, Err: err}
	}
	if err := f.CloseAtomicallyReplace(); err != nil {
		return &OutputWriteError{Path: path, Err: err}
	}
	return nil
}

// WriteSVG writes the document held by c to path.
func WriteSVG(path string, c *SVGCanvas) error {
	return WriteFile(path, func(w io.Writer) error {
		_, err := c.WriteTo(w)
		return err
	})
}
