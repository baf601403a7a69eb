package source

import (
	"context"
	"os"

	"github.com/matzehuels/kinship/pkg/dataset"
	"github.com/matzehuels/kinship/pkg/errors"
)

// File loads a dataset from a local JSON or YAML file. The format follows
// the extension unless Format is set.
type File struct {
	Path   string
	Format dataset.Format
}

// Name returns "file:<path>".
func (f *File) Name() string { return "file:" + f.Path }

// Load reads and decodes the file. A missing file yields FILE_NOT_FOUND.
func (f *File) Load(ctx context.Context) (*dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := errors.ValidatePath(f.Path); err != nil {
		return nil, err
	}
	fh, err := os.Open(f.Path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset file not found: %s", f.Path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open dataset %s", f.Path)
	}
	defer fh.Close()

	format := f.Format
	if format == "" {
		format = dataset.FormatFromPath(f.Path)
	}
	return dataset.Decode(fh, format)
}
