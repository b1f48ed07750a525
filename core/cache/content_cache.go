// Package cache tracks file contents by hash so the dev loop only regenerates
// when a routes file actually changed.
package cache

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/tristendillon/easyroutes/core/logger"
)

type ContentEntry struct {
	FilePath    string
	ContentHash string
	ModTime     time.Time
	Size        int64
}

type Stats struct {
	TotalFiles int
	Hits       int64
	Misses     int64
}

type ContentCache struct {
	entries map[string]*ContentEntry
	mutex   sync.RWMutex
	hits    int64
	misses  int64
}

func NewContentCache() *ContentCache {
	return &ContentCache{
		entries: make(map[string]*ContentEntry),
	}
}

// UpdateContent refreshes the entry for filePath and reports whether its
// content differs from the last call. New and deleted files count as changed.
func (cc *ContentCache) UpdateContent(filePath string) (*ContentEntry, bool, error) {
	cc.mutex.Lock()
	defer cc.mutex.Unlock()

	stat, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			if existing, exists := cc.entries[filePath]; exists {
				logger.Debug("ContentCache: File deleted: %s", filePath)
				delete(cc.entries, filePath)
				return existing, true, nil
			}
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to stat file %s: %w", filePath, err)
	}

	existing, exists := cc.entries[filePath]
	if !exists {
		logger.Debug("ContentCache: New file detected: %s", filePath)
		cc.misses++
		hash, err := calculateFileHash(filePath)
		if err != nil {
			return nil, false, fmt.Errorf("failed to calculate hash for %s: %w", filePath, err)
		}
		entry := &ContentEntry{FilePath: filePath, ContentHash: hash, ModTime: stat.ModTime(), Size: stat.Size()}
		cc.entries[filePath] = entry
		return entry, true, nil
	}

	if stat.Size() == existing.Size && stat.ModTime().Equal(existing.ModTime) {
		cc.hits++
		return existing, false, nil
	}

	newHash, err := calculateFileHash(filePath)
	if err != nil {
		return nil, false, fmt.Errorf("failed to calculate hash for %s: %w", filePath, err)
	}

	if newHash != existing.ContentHash {
		logger.Debug("ContentCache: Content changed for %s (hash: %s -> %s)", filePath, existing.ContentHash[:8], newHash[:8])
		entry := &ContentEntry{FilePath: filePath, ContentHash: newHash, ModTime: stat.ModTime(), Size: stat.Size()}
		cc.entries[filePath] = entry
		return entry, true, nil
	}

	// Editors often rewrite a file with identical bytes.
	logger.Debug("ContentCache: Metadata changed but content same for %s", filePath)
	existing.ModTime = stat.ModTime()
	existing.Size = stat.Size()
	cc.hits++
	return existing, false, nil
}

func (cc *ContentCache) Stats() Stats {
	cc.mutex.RLock()
	defer cc.mutex.RUnlock()
	return Stats{TotalFiles: len(cc.entries), Hits: cc.hits, Misses: cc.misses}
}

func calculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
