package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"cjd/internal/models"
	"cjd/internal/providers"
	"cjd/internal/structures"
)

const (
	imagesSubdir = "images"
	audioSubdir  = "audio"

	defaultImageExt = "jpg"
	defaultAudioExt = "m4a"
)

type MediaServiceInterface interface {
	SaveImage(tempPath, entryID string) (string, error)
	SaveAudio(tempPath, entryID string) (string, error)
	Delete(path string) (bool, error)
	SweepOrphans(referenced map[string]struct{}) int
	Stats() models.MediaStats
}

// MediaService owns the private media directory tree (images/ and
// audio/ under one root). It knows nothing about entry records: callers
// hand it single paths or the full set of referenced paths.
type MediaService struct {
	root   string
	logger providers.Logger
}

func NewMediaService(conf *structures.Config, logger providers.Logger) MediaServiceInterface {
	ms := &MediaService{
		root:   conf.Media.Dir,
		logger: logger,
	}
	// Lazy and idempotent; a failure here only means individual
	// operations may fail later.
	if err := ms.ensureDirs(); err != nil {
		logger.Errorf(providers.TypeMedia, "Failed to create media directories under %s: %s", ms.root, err)
	}
	return ms
}

func (ms *MediaService) ensureDirs() error {
	for _, sub := range []string{imagesSubdir, audioSubdir} {
		dir := filepath.Join(ms.root, sub)
		if _, err := os.Stat(dir); err == nil {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// SaveImage copies (never moves) a temporary file into the permanent
// image directory and returns the new path. Copy failures propagate:
// a user's attachment must not be dropped silently.
func (ms *MediaService) SaveImage(tempPath, entryID string) (string, error) {
	return ms.save(tempPath, entryID, imagesSubdir, defaultImageExt)
}

// SaveAudio is SaveImage for voice notes.
func (ms *MediaService) SaveAudio(tempPath, entryID string) (string, error) {
	return ms.save(tempPath, entryID, audioSubdir, defaultAudioExt)
}

func (ms *MediaService) save(tempPath, entryID, subdir, defaultExt string) (string, error) {
	if err := ms.ensureDirs(); err != nil {
		return "", fmt.Errorf("media directory unavailable: %w", err)
	}

	ext := strings.TrimPrefix(filepath.Ext(tempPath), ".")
	if ext == "" {
		ext = defaultExt
	}
	name := fmt.Sprintf("%s_%d_%s.%s", entryID, time.Now().UnixMilli(), uuid.NewString()[:8], ext)
	dest := filepath.Join(ms.root, subdir, name)

	if err := copyFileAtomic(tempPath, dest); err != nil {
		return "", fmt.Errorf("failed to store media file: %w", err)
	}

	ms.logger.Debugf(providers.TypeMedia, "Stored %s for entry %s", dest, entryID)
	return dest, nil
}

// copyFileAtomic copies src to dest via a temp file and rename, so a
// partially written file is never observable at dest.
func copyFileAtomic(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dest + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err = out.Sync(); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err = out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dest)
}

// Delete removes a stored media file. Returns true if a file existed
// and was removed, false with a nil error when it was already absent.
func (ms *MediaService) Delete(path string) (bool, error) {
	err := os.Remove(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SweepOrphans deletes every stored file whose path is not in the
// referenced set and returns how many were removed. An empty set wipes
// all media; that is the expected behavior during a full data clear.
func (ms *MediaService) SweepOrphans(referenced map[string]struct{}) int {
	deleted := 0
	for _, sub := range []string{imagesSubdir, audioSubdir} {
		dir := filepath.Join(ms.root, sub)
		files, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				ms.logger.Warnf(providers.TypeMedia, "Cannot list %s: %s", dir, err)
			}
			continue
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			path := filepath.Join(dir, f.Name())
			if _, ok := referenced[path]; ok {
				continue
			}
			if err := os.Remove(path); err != nil {
				ms.logger.Warnf(providers.TypeMedia, "Failed to remove orphan %s: %s", path, err)
				continue
			}
			deleted++
		}
	}
	if deleted > 0 {
		ms.logger.Infof(providers.TypeMedia, "Orphan sweep removed %d file(s)", deleted)
	}
	return deleted
}

// Stats reports media usage. Best-effort: a file whose size cannot be
// read counts as zero bytes.
func (ms *MediaService) Stats() models.MediaStats {
	var stats models.MediaStats
	for _, sub := range []string{imagesSubdir, audioSubdir} {
		dir := filepath.Join(ms.root, sub)
		files, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			if sub == imagesSubdir {
				stats.ImageCount++
			} else {
				stats.AudioCount++
			}
			if info, err := f.Info(); err == nil {
				stats.TotalBytes += info.Size()
			}
		}
	}
	return stats
}
