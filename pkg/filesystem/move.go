package filesystem

import (
	stderrors "errors"
	"io"
	"io/fs"
	"syscall"

	"github.com/arthur-debert/foldermgr/pkg/errors"
	"github.com/arthur-debert/foldermgr/pkg/types"
)

// Exists reports whether name can be stat'ed.
func Exists(fsys types.FS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}

// Move relocates src to dst. An existing dst is never overwritten. When
// the rename crosses devices the file is copied and the source removed.
func Move(fsys types.FS, src, dst string) error {
	if _, err := fsys.Stat(dst); err == nil {
		return errors.Newf(errors.ErrFileExists, "destination %s already exists", dst).
			WithDetail("source", src).
			WithDetail("destination", dst)
	} else if !stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, errors.ErrFileMove, "cannot stat destination %s", dst)
	}

	err := fsys.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !stderrors.Is(err, syscall.EXDEV) {
		return errors.Wrapf(err, errors.ErrFileMove, "cannot move %s to %s", src, dst).
			WithDetail("source", src).
			WithDetail("destination", dst)
	}
	if err := copyFile(fsys, src, dst); err != nil {
		return errors.Wrapf(err, errors.ErrFileMove, "cannot copy %s to %s", src, dst)
	}
	if err := fsys.Remove(src); err != nil {
		return errors.Wrapf(err, errors.ErrFileMove, "copied %s but cannot remove it", src)
	}
	return nil
}

func copyFile(fsys types.FS, src, dst string) (err error) {
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fsys.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = fsys.Remove(dst)
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
