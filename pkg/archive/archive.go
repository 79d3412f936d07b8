// Package archive writes single-entry zip archives.
package archive

import (
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	"github.com/arthur-debert/foldermgr/pkg/errors"
	"github.com/arthur-debert/foldermgr/pkg/types"
)

// Extension is appended to a file path to name its archive.
const Extension = ".zip"

// WriteSingle creates archivePath containing sourcePath as a single entry
// named entryName, deflated at the best compression level. An existing
// archivePath is not overwritten. On failure no archive is left behind.
func WriteSingle(fsys types.FS, archivePath, sourcePath, entryName string) (err error) {
	in, err := fsys.Open(sourcePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrArchiveCreate, "cannot open %s", sourcePath)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.Wrapf(err, errors.ErrArchiveCreate, "cannot stat %s", sourcePath)
	}

	out, err := fsys.Create(archivePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrArchiveCreate, "cannot create %s", archivePath)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, errors.ErrArchiveCreate, "cannot close %s", archivePath)
		}
		if err != nil {
			_ = fsys.Remove(archivePath)
		}
	}()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return errors.Wrapf(err, errors.ErrArchiveCreate, "cannot build header for %s", sourcePath)
	}
	header.Name = entryName
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return errors.Wrapf(err, errors.ErrArchiveCreate, "cannot add %s", entryName)
	}
	if _, err := io.Copy(w, in); err != nil {
		return errors.Wrapf(err, errors.ErrArchiveCreate, "cannot compress %s", sourcePath)
	}
	if err := zw.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrArchiveCreate, "cannot finish %s", archivePath)
	}
	return nil
}
