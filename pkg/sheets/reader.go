package sheets

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/foldermgr/pkg/errors"
	"github.com/arthur-debert/foldermgr/pkg/types"
)

// MainSheet lists the directories to scan, one per row in column 0.
const MainSheet = "main"

// Reader dispatches to the format reader matching the file extension.
type Reader struct {
	fs    types.FS
	excel *ExcelReader
	yaml  *YAMLReader
}

// NewReader creates a Reader reading through fsys.
func NewReader(fsys types.FS) *Reader {
	return &Reader{
		fs:    fsys,
		excel: NewExcelReader(fsys),
		yaml:  NewYAMLReader(fsys),
	}
}

// GetRows returns the rows of sheet in the rule source at path.
func (r *Reader) GetRows(path, sheet string) ([][]string, error) {
	var reader types.RowReader
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		reader = r.excel
	case ".yaml", ".yml":
		reader = r.yaml
	default:
		return nil, errors.Newf(errors.ErrRuleSourceRead, "unsupported rule source format %q", ext).
			WithDetail("path", path)
	}
	return reader.GetRows(path, sheet)
}

func openError(err error, path string) error {
	if stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, errors.ErrRuleSourceNotFound, "rule source %s does not exist", path)
	}
	return errors.Wrapf(err, errors.ErrRuleSourceRead, "cannot read rule source %s", path)
}

func sheetNotFound(path, sheet string) error {
	return errors.Newf(errors.ErrSheetNotFound, "sheet %q not found in %s", sheet, path).
		WithDetail("sheet", sheet).
		WithDetail("path", path)
}
