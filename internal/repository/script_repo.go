package repository

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/AmrElsaadany/Jojo-Stock/internal/domain"
)

type fsScriptStore struct {
	dir string
	log *logrus.Logger
}

func NewFSScriptStore(dir string, logger *logrus.Logger) domain.ScriptStore {
	return &fsScriptStore{
		dir: dir,
		log: logger,
	}
}

// ListScripts returns the .sql files of the scripts directory in name order
// (os.ReadDir already sorts by filename). Anything else in the directory is
// ignored.
func (s *fsScriptStore) ListScripts() ([]domain.ScriptInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.log.Errorf("Failed to list scripts in %s: %v", s.dir, err)
		return nil, errors.Wrapf(err, "error listing scripts in %s", s.dir)
	}

	scripts := []domain.ScriptInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".sql") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, errors.Wrapf(err, "error reading script %s", entry.Name())
		}
		scripts = append(scripts, domain.ScriptInfo{
			Name:     entry.Name(),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}
	s.log.Infof("Found %d scripts in %s", len(scripts), s.dir)
	return scripts, nil
}

// ReadScript returns the raw text of one script. The name must already be
// validated by the caller; this only resolves it inside the scripts dir.
func (s *fsScriptStore) ReadScript(name string) (string, error) {
	content, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Warnf("Script %q not found in %s", name, s.dir)
			return "", errors.Errorf("script %q not found", name)
		}
		s.log.Errorf("Failed to read script %q: %v", name, err)
		return "", errors.Wrapf(err, "error reading script %q", name)
	}
	return string(content), nil
}
