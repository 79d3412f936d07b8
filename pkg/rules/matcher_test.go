package rules_test

import (
	"io"
	"regexp"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/foldermgr/pkg/rules"
	"github.com/arthur-debert/foldermgr/pkg/size"
	"github.com/arthur-debert/foldermgr/pkg/types"
)

func candidate(name, contentType string, n int64) types.Candidate {
	c := types.NewCandidate("/downloads/" + name)
	c.ContentType = contentType
	c.Size = n
	return c
}

func migrate(name string, cts, exts []string, pattern, target string) rules.MigrateRule {
	r := rules.MigrateRule{
		Name:       name,
		Conditions: rules.Conditions{ContentTypes: cts, Extensions: exts},
		TargetPath: target,
	}
	if pattern != "" {
		r.Pattern = regexp.MustCompile(pattern)
	}
	return r
}

func mustSize(t *testing.T, expr string) size.Predicate {
	t.Helper()
	p, err := size.Parse(expr)
	require.NoError(t, err)
	return p
}

func TestIsArchiveExtension(t *testing.T) {
	for _, ext := range []string{".zip", ".ZIP", ".7z", ".rar", ".tar", ".bzip2", "r01", ".r00"} {
		assert.True(t, rules.IsArchiveExtension(ext), ext)
	}
	for _, ext := range []string{".r01", ".gz", ".pdf", "", "zip"} {
		assert.False(t, rules.IsArchiveExtension(ext), ext)
	}
}

func TestMatchContentType(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		patterns []string
		want     bool
	}{
		{"literal", "application/pdf", []string{"application/pdf"}, true},
		{"literal ignores case", "Application/PDF", []string{"application/pdf"}, true},
		{"literal differs", "application/json", []string{"application/pdf"}, false},
		{"wildcard", "image/png", []string{"image/*"}, true},
		{"wildcard ignores case", "IMAGE/jpeg", []string{"image/*"}, true},
		{"wildcard other type", "video/mp4", []string{"image/*"}, false},
		{"wildcard needs subtype separator", "imagery/png", []string{"image/*"}, false},
		{"any of several", "video/mp4", []string{"image/*", "video/*"}, true},
		{"no patterns", "text/plain", nil, false},
		{"extension never matches a mime pattern", ".log", []string{"text/*"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.MatchContentType(tt.value, tt.patterns))
		})
	}
}

func TestScore(t *testing.T) {
	c := candidate("invoice-2024.pdf", "application/pdf", 2048)

	tests := []struct {
		name      string
		rule      rules.MigrateRule
		wantScore int
		wantOK    bool
	}{
		{"extension only", migrate("a", nil, []string{".pdf"}, "", "x"), 1, true},
		{"all three", migrate("b", []string{"application/*"}, []string{".pdf"}, "^invoice", "x"), 3, true},
		{"extension mismatch eliminates", migrate("c", []string{"application/pdf"}, []string{".docx"}, "invoice", "x"), 0, false},
		{"content type mismatch eliminates", migrate("d", []string{"image/*"}, []string{".pdf"}, "", "x"), 0, false},
		{"pattern mismatch eliminates", migrate("e", nil, []string{".pdf"}, "^receipt", "x"), 0, false},
		{"pattern is a search", migrate("f", nil, nil, "2024", "x"), 1, true},
		{"extension is case sensitive", migrate("g", nil, []string{".PDF"}, "", "x"), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, ok := rules.Score(c, tt.rule.Conditions)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantScore, score)
		})
	}
}

func TestMatcher_SelectMigrate(t *testing.T) {
	m := rules.NewMatcher(zerolog.New(io.Discard))
	pdf := candidate("invoice.pdf", "application/pdf", 2048)

	t.Run("highest score wins", func(t *testing.T) {
		set := []rules.MigrateRule{
			migrate("by type", []string{"application/*"}, nil, "", "Documents"),
			migrate("by ext and name", nil, []string{".pdf"}, "invoice", "Invoices"),
			migrate("by ext", nil, []string{".pdf"}, "", "PDF"),
		}
		got, score := m.SelectMigrate(pdf, set)
		require.NotNil(t, got)
		assert.Equal(t, "Invoices", got.TargetPath)
		assert.Equal(t, 2, score)
	})

	t.Run("tie keeps the earliest rule", func(t *testing.T) {
		set := []rules.MigrateRule{
			migrate("first", nil, []string{".pdf"}, "", "First"),
			migrate("second", []string{"application/pdf"}, nil, "", "Second"),
		}
		got, score := m.SelectMigrate(pdf, set)
		require.NotNil(t, got)
		assert.Equal(t, "first", got.Name)
		assert.Equal(t, 1, score)
	})

	t.Run("declared extension never selected for other extensions", func(t *testing.T) {
		set := []rules.MigrateRule{
			migrate("docs", []string{"application/pdf"}, []string{".docx"}, "invoice", "Docs"),
		}
		got, _ := m.SelectMigrate(pdf, set)
		assert.Nil(t, got)
	})

	t.Run("no rules", func(t *testing.T) {
		got, score := m.SelectMigrate(pdf, nil)
		assert.Nil(t, got)
		assert.Zero(t, score)
	})

	t.Run("rule without conditions never wins", func(t *testing.T) {
		got, _ := m.SelectMigrate(pdf, []rules.MigrateRule{{Name: "empty", TargetPath: "x"}})
		assert.Nil(t, got)
	})
}

func TestMatcher_SelectZip(t *testing.T) {
	m := rules.NewMatcher(zerolog.New(io.Discard))
	log2MB := candidate("app.log", "text/plain", 2*size.MB)

	logs := rules.ZipRule{
		Name:       "logs",
		Conditions: rules.Conditions{Extensions: []string{".log"}},
		Size:       mustSize(t, ">=1MB"),
		HasSize:    true,
	}

	t.Run("all conditions hold", func(t *testing.T) {
		got := m.SelectZip(log2MB, []rules.ZipRule{logs}, true)
		require.NotNil(t, got)
		assert.Equal(t, "logs", got.Name)
	})

	t.Run("size too small", func(t *testing.T) {
		small := candidate("app.log", "text/plain", 10*size.KB)
		assert.Nil(t, m.SelectZip(small, []rules.ZipRule{logs}, true))
	})

	t.Run("archives are never selected", func(t *testing.T) {
		zipped := candidate("app.zip", "application/zip", 2*size.MB)
		anything := rules.ZipRule{Name: "any", Size: mustSize(t, ">1B"), HasSize: true}
		assert.Nil(t, m.SelectZip(zipped, []rules.ZipRule{anything}, true))
	})

	t.Run("migrated files need AllowFromMigratedFolder", func(t *testing.T) {
		assert.Nil(t, m.SelectZip(log2MB, []rules.ZipRule{logs}, false))

		allowed := logs
		allowed.AllowFromMigratedFolder = true
		assert.NotNil(t, m.SelectZip(log2MB, []rules.ZipRule{allowed}, false))
	})

	t.Run("content types are compared with the extension", func(t *testing.T) {
		byMime := rules.ZipRule{Name: "mime", Conditions: rules.Conditions{ContentTypes: []string{"text/plain"}}}
		assert.Nil(t, m.SelectZip(log2MB, []rules.ZipRule{byMime}, true))

		byExt := rules.ZipRule{Name: "ext", Conditions: rules.Conditions{ContentTypes: []string{".log"}}}
		assert.NotNil(t, m.SelectZip(log2MB, []rules.ZipRule{byExt}, true))
	})

	t.Run("first satisfying rule wins", func(t *testing.T) {
		pattern := rules.ZipRule{Name: "pattern", Conditions: rules.Conditions{Pattern: regexp.MustCompile("^nomatch")}}
		second := rules.ZipRule{Name: "second", Conditions: rules.Conditions{Extensions: []string{".log"}}}
		third := rules.ZipRule{Name: "third", Conditions: rules.Conditions{Pattern: regexp.MustCompile("app")}}
		got := m.SelectZip(log2MB, []rules.ZipRule{pattern, second, third}, true)
		require.NotNil(t, got)
		assert.Equal(t, "second", got.Name)
	})
}
