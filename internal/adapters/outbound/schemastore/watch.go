package schemastore

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/openkraft/typeguard/internal/logger"
)

const watchedOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watch drops cached schemas as files in the schemas directory change and
// reports the affected tool to onChange. It blocks until ctx is done.
func (s *Store) Watch(ctx context.Context, onChange func(tool string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating schema watcher")
	}
	defer w.Close()

	if err := w.Add(s.cfg.SchemasDir); err != nil {
		return errors.Wrapf(err, "watching %s", s.cfg.SchemasDir)
	}

	log := logger.Named("schemastore")
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			tool, isSchema := toolName(ev.Name)
			if !isSchema || ev.Op&watchedOps == 0 {
				continue
			}
			s.Invalidate(tool)
			log.Debugw("schema file changed", logger.FieldTool, tool, "op", ev.Op.String())
			if onChange != nil {
				onChange(tool)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnw("schema watcher error", logger.FieldError, err)
		}
	}
}

func toolName(path string) (string, bool) {
	ext := filepath.Ext(path)
	if !slices.Contains(extensions, ext) {
		return "", false
	}
	return strings.TrimSuffix(filepath.Base(path), ext), true
}
