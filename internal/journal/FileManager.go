package journal

import (
	"errors"
	"os"

	json "github.com/goccy/go-json"

	"cjd/internal/journal/interfaces"
	"cjd/internal/models"
	"cjd/internal/providers"
)

var errUnknownStoreFormat = errors.New("unrecognized store file format")

type FileManager struct {
	store      *models.Store
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, store *models.Store, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		store:      store,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	snapshot := f.store.Snapshot()

	jsonData, err := json.Marshal(snapshot)
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

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile restores the store from disk. A missing file is a clean
// first launch. A file that cannot be parsed at all leaves the store
// empty rather than failing the boot; the caller logs the error.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		// Early releases wrote plain uncompressed JSON.
		decompressed = data
	}

	// Current format (versioned envelope)
	var snapshot models.StoreV2
	if err := json.Unmarshal(decompressed, &snapshot); err == nil && snapshot.Version >= 2 {
		f.store.Load(&snapshot)
		return nil
	}

	// Legacy format: flat record keys, no version field
	f.logger.Warnf(providers.TypeStore, "Unversioned store file found, trying to migrate")
	var legacy struct {
		Entries       []*models.JournalEntry    `json:"entries"`
		Settings      map[string]json.RawMessage `json:"settings"`
		ServiceInfo   *models.ServiceProfile    `json:"serviceInfo"`
		Badges        []*models.Badge           `json:"badges"`
		BadgeProgress *models.BadgeProgress     `json:"badgeProgress"`
	}
	if err := json.Unmarshal(decompressed, &legacy); err != nil || (legacy.Entries == nil && legacy.Settings == nil) {
		f.logger.Warnf(providers.TypeStore, "Migration failed, starting with an empty store")
		if err == nil {
			err = errUnknownStoreFormat
		}
		return err
	}
	f.store.Load(&models.StoreV2{
		Version:       models.CurrentStoreVersion,
		Entries:       legacy.Entries,
		Settings:      legacy.Settings,
		ServiceInfo:   legacy.ServiceInfo,
		Badges:        legacy.Badges,
		BadgeProgress: legacy.BadgeProgress,
	})
	f.logger.Warnf(providers.TypeStore, "Migration from legacy store format successful")
	return nil
}
