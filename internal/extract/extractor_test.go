package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtractFile_PlainText(t *testing.T) {
	svc := NewService()
	path := writeTempFile(t, "procedures.txt", "Evacuate via Exit B during a fire.\n")

	text, err := svc.ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Evacuate via Exit B during a fire.\n", text)
}

func TestExtractFile_MarkdownStripped(t *testing.T) {
	svc := NewService()
	path := writeTempFile(t, "guide.md", "# Fire Safety\n\nUse the **nearest** exit.\n\n- Stay low\n- Cover your mouth\n")

	text, err := svc.ExtractFile(path)
	require.NoError(t, err)
	assert.Contains(t, text, "Fire Safety")
	assert.Contains(t, text, "Use the nearest exit.")
	assert.Contains(t, text, "Stay low")
	assert.NotContains(t, text, "**")
	assert.NotContains(t, text, "#")
}

func TestExtractFile_UnsupportedFormat(t *testing.T) {
	svc := NewService()
	path := writeTempFile(t, "data.csv", "a,b,c")

	_, err := svc.ExtractFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtractFile_MissingFile(t *testing.T) {
	svc := NewService()
	_, err := svc.ExtractFile(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestExtractFile_CorruptPDF(t *testing.T) {
	svc := NewService()
	path := writeTempFile(t, "broken.pdf", "this is not a pdf")

	_, err := svc.ExtractFile(path)
	require.Error(t, err)
}

func TestExtractFile_EmptyDocument(t *testing.T) {
	svc := NewService()
	path := writeTempFile(t, "blank.txt", "   \n\t\n")

	_, err := svc.ExtractFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a/b/plan.pdf"))
	assert.True(t, Supported("notes.TXT"))
	assert.True(t, Supported("guide.md"))
	assert.False(t, Supported("image.png"))
	assert.False(t, Supported("noextension"))
}
