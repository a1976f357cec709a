package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"pagebinder-notes/pagebinder/database"
)

type BackupServiceInterface interface {
	CreateBackup(db *database.Database, dbPath string, destDir string, keep int) (string, error)
}

type BackupService struct{}

// CreateBackup snapshots the SQLite database into
// <destDir>/<stem>-YYYYMMDD-HHMMSS.db and prunes old backups down to the
// newest keep files (keep <= 0 disables pruning). VACUUM INTO gives a
// consistent copy without closing the store or blocking readers.
func (s *BackupService) CreateBackup(db *database.Database, dbPath string, destDir string, keep int) (string, error) {
	if db.DB.Dialector.Name() != "sqlite" {
		return "", ErrInvalidInput
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}

	stem := strings.TrimSuffix(filepath.Base(dbPath), filepath.Ext(dbPath))
	name := fmt.Sprintf("%s-%s.db", stem, time.Now().Format("20060102-150405"))
	target := filepath.Join(destDir, name)

	if err := db.DB.Exec("VACUUM INTO ?", target).Error; err != nil {
		return "", err
	}

	if err := pruneBackups(destDir, stem, keep); err != nil {
		return "", err
	}

	return target, nil
}

func pruneBackups(destDir, stem string, keep int) error {
	if keep <= 0 {
		return nil
	}

	entries, err := os.ReadDir(destDir)
	if err != nil {
		return err
	}

	type backupFile struct {
		path    string
		modTime time.Time
	}

	var backups []backupFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, stem+"-") || !strings.HasSuffix(name, ".db") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, backupFile{
			path:    filepath.Join(destDir, name),
			modTime: info.ModTime(),
		})
	}

	// Newest first, delete everything past keep.
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].modTime.After(backups[j].modTime)
	})
	for _, old := range backups[min(keep, len(backups)):] {
		if err := os.Remove(old.path); err != nil {
			return err
		}
	}

	return nil
}

var BackupServiceInstance BackupServiceInterface = &BackupService{}
