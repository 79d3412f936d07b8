package sheets

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/foldermgr/pkg/errors"
	"github.com/arthur-debert/foldermgr/pkg/types"
)

// YAMLReader reads sheets from a YAML document mapping sheet names to
// lists of rows.
type YAMLReader struct {
	fs types.FS
}

// NewYAMLReader creates a YAMLReader reading through fsys.
func NewYAMLReader(fsys types.FS) *YAMLReader {
	return &YAMLReader{fs: fsys}
}

// GetRows returns the rows of sheet. Scalars are rendered as strings and
// null cells as "".
func (r *YAMLReader) GetRows(path, sheet string) ([][]string, error) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return nil, openError(err, path)
	}

	var doc map[string][][]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRuleSourceRead, "cannot parse %s", path)
	}

	raw, ok := doc[sheet]
	if !ok {
		return nil, sheetNotFound(path, sheet)
	}

	rows := make([][]string, len(raw))
	for i, cells := range raw {
		row := make([]string, len(cells))
		for j, cell := range cells {
			if cell != nil {
				row[j] = fmt.Sprint(cell)
			}
		}
		rows[i] = row
	}
	return rows, nil
}
