package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/diogo/resumechat/internal/models"
)

// InspectFile stats path and sniffs its content type. It does not decide
// whether the file is acceptable; SelectFile does.
func InspectFile(path string) (models.ResumeFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.ResumeFile{}, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return models.ResumeFile{}, fmt.Errorf("%s is a directory", path)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return models.ResumeFile{}, fmt.Errorf("failed to detect file type: %w", err)
	}

	return models.ResumeFile{
		Path:     path,
		Name:     filepath.Base(path),
		Size:     info.Size(),
		MIMEType: mtype.String(),
	}, nil
}

// SelectPath inspects path and selects it as the résumé.
func (s Session) SelectPath(path string) (Session, error) {
	f, err := InspectFile(path)
	if err != nil {
		return s, err
	}
	return s.SelectFile(f)
}

// ExpandPath strips quotes added by terminals on drag and drop and
// expands a leading ~
func ExpandPath(path string) string {
	path = strings.Trim(strings.TrimSpace(path), `"'`)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
