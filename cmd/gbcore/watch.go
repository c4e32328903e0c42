package main

import (
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/nollsbane/lr35902/internal/machine"
	"github.com/sirupsen/logrus"
)

// watchROM reloads the cartridge whenever the ROM file on disk changes,
// letting a developer iterate on a homebrew build without restarting the
// emulator. The returned stop func closes the underlying watcher.
func watchROM(path string, m *machine.Machine, log logrus.FieldLogger) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				data, err := os.ReadFile(path)
				if err != nil {
					log.WithError(err).Warn("gbcore: rom watch: failed to reread rom")
					continue
				}
				if err := m.LoadGame(data); err != nil {
					log.WithError(err).Warn("gbcore: rom watch: failed to reload rom")
					continue
				}
				log.Info("gbcore: rom reloaded from disk")
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("gbcore: rom watch error")
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
