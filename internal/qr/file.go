package qr

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// FileWriter stores rendered codes under Dir.
type FileWriter struct {
	Dir    string
	Config Config
}

func NewFileWriter(dir string, cfg Config) *FileWriter {
	return &FileWriter{Dir: dir, Config: cfg}
}

// Path returns where Save writes filename.
func (w *FileWriter) Path(filename string) string {
	return filepath.Join(w.Dir, filepath.Base(filename))
}

// Save renders text to Dir/filename. Failures are logged and reported as false.
func (w *FileWriter) Save(text, filename string) bool {
	path := w.Path(filename)

	png, err := Render(text, w.Config)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("qr: render failed")
		return false
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		log.Error().Err(err).Str("dir", w.Dir).Msg("qr: create directory failed")
		return false
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		log.Error().Err(err).Str("file", path).Msg("qr: write failed")
		return false
	}
	log.Debug().Str("file", path).Msg("qr: saved")
	return true
}
