package schedule

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agendad/internal/models"
	"agendad/internal/testutil"
)

func newTestFileManager(compressor *testutil.MockCompressor) (*FileManager, *models.RenameStore, *models.HomeworkStore, *testutil.MockLogger) {
	if compressor == nil {
		compressor = &testutil.MockCompressor{}
	}
	renames := models.NewRenameStore()
	homework := models.NewHomeworkStore()
	logger := &testutil.MockLogger{}
	fm := NewFileManager(renames, models.NewOverlayStore(), homework, models.NewPrefStore(), compressor, logger)
	return fm, renames, homework, logger
}

func TestFileManager_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agenda.dat")

	fm, renames, homework, _ := newTestFileManager(nil)
	renames.Set(testCohort, "Math", "Mathematics")
	homework.Set(testCohort, models.HomeworkKey{Subject: "Math", Date: "2024-01-15"}, "pp.10-12")
	require.NoError(t, fm.SaveToFile(path))

	fm2, renames2, homework2, _ := newTestFileManager(nil)
	require.NoError(t, fm2.LoadFromFile(path))

	assert.Equal(t, "Mathematics", renames2.Display(testCohort, "Math"))
	text, ok := homework2.Get(testCohort, models.HomeworkKey{Subject: "Math", Date: "2024-01-15"})
	assert.True(t, ok)
	assert.Equal(t, "pp.10-12", text)
}

func TestFileManager_RoundTripWithRealCompression(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agenda.dat")

	compressor, err := NewZstdCompressor()
	require.NoError(t, err)
	defer compressor.Close()

	renames := models.NewRenameStore()
	renames.Set(testCohort, "Math", "Mathematics")
	logger := &testutil.MockLogger{}
	fm := NewFileManager(renames, models.NewOverlayStore(), models.NewHomeworkStore(), models.NewPrefStore(), compressor, logger)
	require.NoError(t, fm.SaveToFile(path))

	renames2 := models.NewRenameStore()
	fm2 := NewFileManager(renames2, models.NewOverlayStore(), models.NewHomeworkStore(), models.NewPrefStore(), compressor, logger)
	require.NoError(t, fm2.LoadFromFile(path))

	assert.Equal(t, "Mathematics", renames2.Display(testCohort, "Math"))
}

func TestFileManager_LoadMissingFileIsNoop(t *testing.T) {
	fm, _, _, _ := newTestFileManager(nil)
	assert.NoError(t, fm.LoadFromFile(filepath.Join(t.TempDir(), "absent.dat")))
}

func TestFileManager_LoadRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agenda.dat")
	data, err := json.Marshal(models.Storage{Version: models.StorageVersion + 1})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	fm, _, _, _ := newTestFileManager(nil)
	assert.Error(t, fm.LoadFromFile(path))
}

func TestFileManager_LoadWarnsOnLegacyVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agenda.dat")
	data, err := json.Marshal(models.Storage{Version: 1})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	fm, _, _, logger := newTestFileManager(nil)
	require.NoError(t, fm.LoadFromFile(path))
	assert.Equal(t, 1, logger.CountByLevel("warn"))
}

func TestFileManager_LoadCorruptData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agenda.dat")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	fm, _, _, _ := newTestFileManager(nil)
	assert.Error(t, fm.LoadFromFile(path))
}

func TestFileManager_SaveCompressError(t *testing.T) {
	fm, _, _, _ := newTestFileManager(&testutil.MockCompressor{CompressErr: errors.New("boom")})
	assert.Error(t, fm.SaveToFile(filepath.Join(t.TempDir(), "agenda.dat")))
}

func TestFileManager_SaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agenda.dat")

	fm, _, _, _ := newTestFileManager(nil)
	require.NoError(t, fm.SaveToFile(path))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
