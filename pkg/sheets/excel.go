package sheets

import (
	"github.com/xuri/excelize/v2"

	"github.com/arthur-debert/foldermgr/pkg/errors"
	"github.com/arthur-debert/foldermgr/pkg/types"
)

// ExcelReader reads sheets of .xlsx workbooks.
type ExcelReader struct {
	fs types.FS
}

// NewExcelReader creates an ExcelReader reading through fsys.
func NewExcelReader(fsys types.FS) *ExcelReader {
	return &ExcelReader{fs: fsys}
}

// GetRows returns the rows of sheet. Trailing empty cells of a row are
// omitted by the workbook format; callers pad rows as needed.
func (r *ExcelReader) GetRows(path, sheet string) ([][]string, error) {
	in, err := r.fs.Open(path)
	if err != nil {
		return nil, openError(err, path)
	}
	defer in.Close()

	book, err := excelize.OpenReader(in)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRuleSourceRead, "cannot parse workbook %s", path)
	}
	defer book.Close()

	if idx, err := book.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, sheetNotFound(path, sheet)
	}

	rows, err := book.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRuleSourceRead, "cannot read sheet %q of %s", sheet, path)
	}
	return rows, nil
}
