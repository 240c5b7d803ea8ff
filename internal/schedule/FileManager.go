package schedule

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"agendad/internal/models"
	"agendad/internal/providers"
	"agendad/internal/schedule/interfaces"
)

// FileManager persists the mutable layers (renames, overlays, homework,
// preferences) as one compressed snapshot. The resolved schedule cache is
// never persisted; it rebuilds from these layers and the upstream feed.
type FileManager struct {
	renames    *models.RenameStore
	overlays   *models.OverlayStore
	homework   *models.HomeworkStore
	prefs      *models.PrefStore
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(
	renames *models.RenameStore,
	overlays *models.OverlayStore,
	homework *models.HomeworkStore,
	prefs *models.PrefStore,
	compressor interfaces.CompressorInterface,
	logger providers.Logger,
) *FileManager {
	return &FileManager{
		renames:    renames,
		overlays:   overlays,
		homework:   homework,
		prefs:      prefs,
		compressor: compressor,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	storage := models.Storage{
		Version:  models.StorageVersion,
		Renames:  f.renames.GetData(),
		Overlays: f.overlays.GetData(),
		Homework: f.homework.GetData(),
		Prefs:    f.prefs.GetData(),
	}

	jsonData, err := json.Marshal(storage)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var storage models.Storage
	if err := json.Unmarshal(decompressedData, &storage); err != nil {
		return err
	}
	if storage.Version > models.StorageVersion {
		return fmt.Errorf("snapshot version %d is newer than supported %d", storage.Version, models.StorageVersion)
	}
	if storage.Version < models.StorageVersion {
		// Version 1 snapshots carry no preference table; everything else
		// loads unchanged.
		f.logger.Warnf(providers.TypeApp, "Loaded snapshot with legacy version %d", storage.Version)
	}

	f.renames.PutData(storage.Renames)
	f.overlays.PutData(storage.Overlays)
	f.homework.PutData(storage.Homework)
	f.prefs.PutData(storage.Prefs)

	return nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
}
