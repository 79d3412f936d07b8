package processor_test

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/foldermgr/pkg/errors"
	"github.com/arthur-debert/foldermgr/pkg/filesystem"
	"github.com/arthur-debert/foldermgr/pkg/processor"
	"github.com/arthur-debert/foldermgr/pkg/rules"
	"github.com/arthur-debert/foldermgr/pkg/size"
	"github.com/arthur-debert/foldermgr/pkg/testutil"
	"github.com/arthur-debert/foldermgr/pkg/types"
)

const (
	root       = "/downloads"
	rulesPath  = "/config/rules.yaml"
	kilobyte   = 1024
	megabyte   = 1024 * kilobyte
	pdfContent = "%PDF-1.7 invoice"
)

type fixture struct {
	fs   types.FS
	proc *processor.Processor
	logs *bytes.Buffer
}

func setup(t *testing.T, migrate, zipRows [][]string) *fixture {
	t.Helper()

	fsys := filesystem.NewMemoryFS()
	require.NoError(t, fsys.MkdirAll(root, 0755))
	writeRules(t, fsys, migrate, zipRows)

	logs := &bytes.Buffer{}
	logger := testutil.Logger(logs)
	proc := processor.New(processor.Options{FS: fsys, Logger: &logger})
	require.NoError(t, proc.LoadRules(rulesPath))

	return &fixture{fs: fsys, proc: proc, logs: logs}
}

func writeRules(t *testing.T, fsys types.FS, migrate, zipRows [][]string) {
	t.Helper()
	testutil.WriteRulesYAML(t, fsys, rulesPath, map[string][][]string{
		rules.MigrateSheet: append([][]string{testutil.MigrateHeader}, migrate...),
		rules.ZipSheet:     append([][]string{testutil.ZipHeader}, zipRows...),
	})
}

func archiveEntries(t *testing.T, fsys types.FS, path string) map[string]string {
	t.Helper()
	data, err := fsys.ReadFile(path)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	entries := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		entries[f.Name] = string(content)
	}
	return entries
}

func TestProcessFile_MigratesInvoice(t *testing.T) {
	f := setup(t, [][]string{
		{"invoices", "", ".pdf", "", "Invoices"},
	}, nil)
	src := testutil.CreateSizedFile(t, f.fs, root, "invoice.pdf", 2*kilobyte)

	res := f.proc.ProcessFile(src, root)

	require.NoError(t, res.Err)
	assert.True(t, res.Migrated)
	assert.Equal(t, "invoices", res.MigrateRule)
	assert.Equal(t, "/downloads/Invoices/invoice.pdf", res.Path)
	assert.False(t, res.Zipped())
	assert.True(t, testutil.FileExists(t, f.fs, "/downloads/Invoices/invoice.pdf"))
	testutil.AssertNoFile(t, f.fs, src)
	testutil.AssertNoFile(t, f.fs, "/downloads/Invoices/invoice.pdf.zip")
}

func TestProcessFile_ZipsLargeLog(t *testing.T) {
	f := setup(t, nil, [][]string{
		{"big logs", "", ".log", "", ">=1MB", ""},
	})
	src := testutil.CreateSizedFile(t, f.fs, root, "app.log", 2*megabyte)

	res := f.proc.ProcessFile(src, root)

	require.NoError(t, res.Err)
	assert.False(t, res.Migrated)
	assert.Equal(t, "/downloads/app.log.zip", res.Archive)
	assert.Equal(t, "big logs", res.ZipRule)

	entries := archiveEntries(t, f.fs, "/downloads/app.log.zip")
	require.Len(t, entries, 1)
	assert.Len(t, entries["app.log"], 2*megabyte)

	testutil.AssertNoFile(t, f.fs, src)
	testutil.AssertNoFile(t, f.fs, "/downloads/temp/app.log")
	assert.True(t, testutil.DirExists(t, f.fs, "/downloads/temp"))
}

func TestProcessFile_SizeBelowThreshold(t *testing.T) {
	f := setup(t, nil, [][]string{
		{"big logs", "", ".log", "", ">=1MB", ""},
	})
	src := testutil.CreateSizedFile(t, f.fs, root, "small.log", 512*kilobyte)

	res := f.proc.ProcessFile(src, root)

	assert.False(t, res.Zipped())
	assert.True(t, testutil.FileExists(t, f.fs, src))
	testutil.AssertNoFile(t, f.fs, "/downloads/temp")
}

func TestProcessFile_NeverRearchives(t *testing.T) {
	f := setup(t, nil, [][]string{
		{"backups", "", "", "backup", "", "yes"},
	})
	zipped := testutil.CreateFile(t, f.fs, root, "backup.zip", "PK")
	tarball := testutil.CreateFile(t, f.fs, root, "backup.TAR", "tar")
	plain := testutil.CreateFile(t, f.fs, root, "backup.txt", "text")

	assert.False(t, f.proc.ProcessFile(zipped, root).Zipped())
	assert.False(t, f.proc.ProcessFile(tarball, root).Zipped())
	assert.True(t, f.proc.ProcessFile(plain, root).Zipped())

	assert.True(t, testutil.FileExists(t, f.fs, zipped))
	assert.True(t, testutil.FileExists(t, f.fs, tarball))
	testutil.AssertNoFile(t, f.fs, "/downloads/backup.zip.zip")
}

func TestProcessFile_MigratedFolderGate(t *testing.T) {
	migrate := [][]string{{"logs", "", ".log", "", "Logs"}}

	t.Run("not allowed", func(t *testing.T) {
		f := setup(t, migrate, [][]string{{"zip logs", "", ".log", "", "", "no"}})
		src := testutil.CreateFile(t, f.fs, root, "app.log", "line")

		res := f.proc.ProcessFile(src, root)

		assert.True(t, res.Migrated)
		assert.False(t, res.Zipped())
		assert.True(t, testutil.FileExists(t, f.fs, "/downloads/Logs/app.log"))
	})

	t.Run("allowed", func(t *testing.T) {
		f := setup(t, migrate, [][]string{{"zip logs", "", ".log", "", "", "Yes"}})
		src := testutil.CreateFile(t, f.fs, root, "app.log", "line")

		res := f.proc.ProcessFile(src, root)

		require.NoError(t, res.Err)
		assert.True(t, res.Migrated)
		assert.Equal(t, "/downloads/Logs/app.log.zip", res.Archive)
		assert.Equal(t, map[string]string{"app.log": "line"}, archiveEntries(t, f.fs, res.Archive))
		testutil.AssertNoFile(t, f.fs, "/downloads/Logs/app.log")
		testutil.AssertNoFile(t, f.fs, "/downloads/temp/app.log")
	})
}

func TestProcessFile_Idempotent(t *testing.T) {
	f := setup(t, [][]string{
		{"invoices", "", ".pdf", "", "Invoices"},
	}, [][]string{
		{"zip pdf", "", ".pdf", "", "", "no"},
	})
	moved := testutil.CreateFile(t, f.fs, "/downloads/Invoices", "invoice.pdf", pdfContent)

	res := f.proc.ProcessFile(moved, root)

	require.NoError(t, res.Err)
	assert.False(t, res.Migrated)
	assert.False(t, res.Zipped())
	testutil.AssertFileContent(t, f.fs, moved, pdfContent)
	testutil.AssertNoFile(t, f.fs, "/downloads/Invoices/Invoices")
}

func TestProcessFile_PriorityWins(t *testing.T) {
	f := setup(t, [][]string{
		{"pdf", "", ".pdf", "", "Documents"},
		{"invoice pdf", "application/pdf", ".pdf", "^invoice", "Invoices"},
		{"invoice name", "", "", "invoice", "Named"},
	}, nil)
	src := testutil.CreateFile(t, f.fs, root, "invoice-2024.pdf", pdfContent)

	res := f.proc.ProcessFile(src, root)

	assert.Equal(t, "invoice pdf", res.MigrateRule)
	assert.Equal(t, "/downloads/Invoices/invoice-2024.pdf", res.Path)
}

func TestProcessFile_ContentTypeWildcard(t *testing.T) {
	f := setup(t, [][]string{
		{"pictures", "image/*", "", "", "Pictures"},
	}, nil)
	photo := testutil.CreateFile(t, f.fs, root, "photo.png", "png")
	doc := testutil.CreateFile(t, f.fs, root, "notes.txt", "txt")

	assert.Equal(t, "/downloads/Pictures/photo.png", f.proc.ProcessFile(photo, root).Path)
	assert.False(t, f.proc.ProcessFile(doc, root).Migrated)
}

func TestProcessFile_ZipContentTypeUsesExtension(t *testing.T) {
	f := setup(t, nil, [][]string{
		{"by mime", "text/plain", "", "", "", ""},
		{"by ext", ".txt", "", "", "", ""},
	})
	src := testutil.CreateFile(t, f.fs, root, "notes.txt", "hello")

	res := f.proc.ProcessFile(src, root)

	assert.Equal(t, "by ext", res.ZipRule)
}

func TestProcessFile_Collision(t *testing.T) {
	f := setup(t, [][]string{
		{"invoices", "", ".pdf", "", "Invoices"},
	}, nil)
	testutil.CreateFile(t, f.fs, "/downloads/Invoices", "invoice.pdf", "older")
	src := testutil.CreateFile(t, f.fs, root, "invoice.pdf", pdfContent)

	res := f.proc.ProcessFile(src, root)

	assert.False(t, res.Migrated)
	assert.Equal(t, src, res.Path)
	assert.True(t, errors.IsErrorCode(res.Err, errors.ErrFileExists))
	testutil.AssertFileContent(t, f.fs, src, pdfContent)
	testutil.AssertFileContent(t, f.fs, "/downloads/Invoices/invoice.pdf", "older")
	assert.Contains(t, f.logs.String(), "Cannot migrate file")
}

func TestProcessFile_CollisionStillZips(t *testing.T) {
	f := setup(t, [][]string{
		{"invoices", "", ".pdf", "", "Invoices"},
	}, [][]string{
		{"zip pdf", "", ".pdf", "", "", ""},
	})
	testutil.CreateFile(t, f.fs, "/downloads/Invoices", "invoice.pdf", "older")
	src := testutil.CreateFile(t, f.fs, root, "invoice.pdf", pdfContent)

	res := f.proc.ProcessFile(src, root)

	assert.False(t, res.Migrated)
	assert.Equal(t, "/downloads/invoice.pdf.zip", res.Archive)
}

func TestProcessFile_ArchiveFailureRestoresFile(t *testing.T) {
	f := setup(t, nil, [][]string{
		{"zip logs", "", ".log", "", "", ""},
	})
	existing := testutil.CreateFile(t, f.fs, root, "app.log.zip", "previous archive")
	src := testutil.CreateFile(t, f.fs, root, "app.log", "line")

	res := f.proc.ProcessFile(src, root)

	assert.False(t, res.Zipped())
	assert.True(t, errors.IsErrorCode(res.Err, errors.ErrArchiveCreate))
	testutil.AssertFileContent(t, f.fs, src, "line")
	testutil.AssertFileContent(t, f.fs, existing, "previous archive")
	testutil.AssertNoFile(t, f.fs, "/downloads/temp/app.log")
}

func TestProcessFile_StagingCollisionAbandonsZip(t *testing.T) {
	f := setup(t, nil, [][]string{
		{"zip logs", "", ".log", "", "", ""},
	})
	testutil.CreateFile(t, f.fs, "/downloads/temp", "app.log", "staged earlier")
	src := testutil.CreateFile(t, f.fs, root, "app.log", "line")

	res := f.proc.ProcessFile(src, root)

	assert.False(t, res.Zipped())
	assert.True(t, errors.IsErrorCode(res.Err, errors.ErrFileExists))
	testutil.AssertFileContent(t, f.fs, src, "line")
	testutil.AssertNoFile(t, f.fs, "/downloads/app.log.zip")
}

func TestProcessFile_LeadingSeparatorTarget(t *testing.T) {
	f := setup(t, [][]string{
		{"docs", "", ".pdf", "", "/Documents/Pdf"},
	}, nil)
	src := testutil.CreateFile(t, f.fs, root, "report.pdf", pdfContent)

	res := f.proc.ProcessFile(src, root)

	assert.Equal(t, "/downloads/Documents/Pdf/report.pdf", res.Path)
}

func TestProcessFile_MissingFile(t *testing.T) {
	f := setup(t, [][]string{{"invoices", "", ".pdf", "", "Invoices"}}, nil)

	res := f.proc.ProcessFile("/downloads/gone.pdf", root)

	assert.True(t, errors.IsErrorCode(res.Err, errors.ErrFileNotFound))
	assert.False(t, res.Migrated)
}

func TestProcessFile_RecoversPanics(t *testing.T) {
	fsys := filesystem.NewMemoryFS()
	writeRules(t, fsys, [][]string{{"invoices", "", ".pdf", "", "Invoices"}}, nil)
	src := testutil.CreateFile(t, fsys, root, "invoice.pdf", pdfContent)

	logger := testutil.Logger(nil)
	proc := processor.New(processor.Options{
		FS:     fsys,
		Logger: &logger,
		ContentTyper: types.ContentTyperFunc(func(string) string {
			panic("lookup table corrupted")
		}),
	})
	require.NoError(t, proc.LoadRules(rulesPath))

	var res processor.Result
	assert.NotPanics(t, func() { res = proc.ProcessFile(src, root) })
	assert.True(t, errors.IsErrorCode(res.Err, errors.ErrUnexpected))
	testutil.AssertFileContent(t, fsys, src, pdfContent)
}

func TestProcessFile_CustomTempFolder(t *testing.T) {
	fsys := filesystem.NewMemoryFS()
	writeRules(t, fsys, nil, [][]string{{"zip logs", "", ".log", "", "", ""}})
	src := testutil.CreateFile(t, fsys, root, "app.log", "line")

	logger := testutil.Logger(nil)
	proc := processor.New(processor.Options{FS: fsys, Logger: &logger, TempFolder: ".staging"})
	require.NoError(t, proc.LoadRules(rulesPath))

	res := proc.ProcessFile(src, root)

	require.NoError(t, res.Err)
	assert.True(t, testutil.DirExists(t, fsys, "/downloads/.staging"))
	testutil.AssertNoFile(t, fsys, "/downloads/temp")
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		name   string
		target string
		dir    string
		want   string
	}{
		{"relative", "Invoices", "/downloads", "/downloads/Invoices"},
		{"nested relative", "Docs/Pdf", "/downloads", "/downloads/Docs/Pdf"},
		{"parent", "../Sorted", "/home/me/downloads", "/home/me/Sorted"},
		{"leading slash", "/Invoices", "/downloads", "/downloads/Invoices"},
		{"leading backslash", `\Invoices`, "/downloads", "/downloads/Invoices"},
		{"leading slash on deep path", "/srv/archive", "/downloads", "/downloads/srv/archive"},
		{"double slash stays absolute", "//srv/archive", "/downloads", "/srv/archive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, processor.ResolveTarget(tt.target, tt.dir))
		})
	}
}

func TestLoadRules(t *testing.T) {
	f := setup(t, [][]string{
		{"invoices", "", ".pdf", "", "Invoices"},
		{"no conditions", "", "", "  ", "Nowhere"},
		{"bad pattern", "", "", "([", "Broken"},
	}, [][]string{
		{"logs", "", ".log", "", ">=1MB", "yes"},
		{"bad size", "", ".log", "", "lots", ""},
	})

	set := f.proc.Rules()
	require.Len(t, set.Migrate, 1)
	assert.Equal(t, "invoices", set.Migrate[0].Name)
	require.Len(t, set.Zip, 1)
	assert.Equal(t, "logs", set.Zip[0].Name)
	assert.Equal(t, size.GT, set.Zip[0].Size.Operator())
	assert.True(t, set.Zip[0].AllowFromMigratedFolder)
	assert.True(t, f.proc.HasRulesLoaded())

	logs := f.logs.String()
	assert.Contains(t, logs, "Skipping invalid migrate rule")
	assert.Contains(t, logs, "Skipping invalid zip rule")
}

func TestLoadRules_MissingSource(t *testing.T) {
	logger := testutil.Logger(nil)
	proc := processor.New(processor.Options{FS: filesystem.NewMemoryFS(), Logger: &logger})

	err := proc.LoadRules("/nowhere/rules.xlsx")

	assert.True(t, errors.IsErrorCode(err, errors.ErrRuleSourceNotFound))
	assert.False(t, proc.HasRulesLoaded())
}

func TestLoadRules_MissingSheet(t *testing.T) {
	fsys := filesystem.NewMemoryFS()
	testutil.WriteRulesYAML(t, fsys, rulesPath, map[string][][]string{
		rules.ZipSheet: {testutil.ZipHeader, {"logs", "", ".log", "", "", ""}},
	})
	logs := &bytes.Buffer{}
	logger := testutil.Logger(logs)
	proc := processor.New(processor.Options{FS: fsys, Logger: &logger})

	require.NoError(t, proc.LoadRules(rulesPath))

	assert.Empty(t, proc.Rules().Migrate)
	assert.Len(t, proc.Rules().Zip, 1)
	assert.True(t, proc.HasRulesLoaded())
	assert.Contains(t, logs.String(), "Rule sheet not found")
}

func TestLoadRules_EmptySheets(t *testing.T) {
	f := setup(t, nil, nil)
	assert.False(t, f.proc.HasRulesLoaded())
}

func TestReloadRules(t *testing.T) {
	f := setup(t, [][]string{{"invoices", "", ".pdf", "", "Invoices"}}, nil)
	previous := f.proc.Rules()

	writeRules(t, f.fs, [][]string{
		{"receipts", "", ".pdf", "receipt", "Receipts"},
		{"images", "image/*", "", "", "Pictures"},
	}, nil)
	require.NoError(t, f.proc.ReloadRules(rulesPath))

	set := f.proc.Rules()
	require.Len(t, set.Migrate, 2)
	assert.Equal(t, "receipts", set.Migrate[0].Name)
	assert.Equal(t, "invoices", previous.Migrate[0].Name, "previous snapshot is not mutated")

	require.NoError(t, f.fs.Remove(rulesPath))
	err := f.proc.ReloadRules(rulesPath)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRuleSourceNotFound))
	assert.False(t, f.proc.HasRulesLoaded())
	assert.NotNil(t, f.proc.Rules())
}

func TestNew_Defaults(t *testing.T) {
	proc := processor.New(processor.Options{})
	assert.NotNil(t, proc.Rules())
	assert.False(t, proc.HasRulesLoaded())
	assert.Equal(t, filepath.Join(root, "Invoices"), processor.ResolveTarget("Invoices", root))
}
