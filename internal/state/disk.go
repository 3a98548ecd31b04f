package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Persistable is a container that can be stored under a Disk key.
type Persistable interface {
	json.Marshaler
	json.Unmarshaler
	Watch(fn WatchFunc) func()
	reset()
}

// Disk persists containers as JSON files, one file per key. Each file carries
// a schema version; a file written with another version is discarded and the
// bound containers start empty.
type Disk struct {
	dir string
	mu  sync.Mutex
}

type envelope struct {
	Version int                        `json:"version"`
	State   map[string]json.RawMessage `json:"state"`
}

func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	return &Disk{dir: dir}, nil
}

func (d *Disk) path(key string) string {
	return filepath.Join(d.dir, key+".json")
}

// Bind restores the parts stored under key and keeps the file in sync with
// later changes. The returned func stops syncing.
func (d *Disk) Bind(key string, version int, parts map[string]Persistable) (func(), error) {
	if err := d.restore(key, version, parts); err != nil {
		return nil, err
	}

	cancels := make([]func(), 0, len(parts))

	for _, p := range parts {
		cancels = append(cancels, p.Watch(func(src Source) {
			if src == SourceDisk {
				return
			}

			if err := d.save(key, version, parts); err != nil {
				slog.Error("failed to persist state", "key", key, "error", err)
			}
		}))
	}

	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}, nil
}

func (d *Disk) restore(key string, version int, parts map[string]Persistable) error {
	data, err := os.ReadFile(d.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return d.save(key, version, parts)
	}

	if err != nil {
		return fmt.Errorf("reading %s: %w", key, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil || env.Version != version {
		slog.Info("resetting persisted state", "key", key, "stored_version", env.Version, "version", version)

		for _, p := range parts {
			p.reset()
		}

		return d.save(key, version, parts)
	}

	for name, p := range parts {
		raw, ok := env.State[name]
		if !ok {
			p.reset()
			continue
		}

		if err := p.UnmarshalJSON(raw); err != nil {
			slog.Warn("discarding unreadable persisted state", "key", key, "part", name, "error", err)
			p.reset()
		}
	}

	return nil
}

// save holds d.mu across encoding so a later snapshot is never replaced by an
// earlier one.
func (d *Disk) save(key string, version int, parts map[string]Persistable) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	env := envelope{Version: version, State: make(map[string]json.RawMessage, len(parts))}

	for name, p := range parts {
		raw, err := p.MarshalJSON()
		if err != nil {
			return fmt.Errorf("encoding %s.%s: %w", key, name, err)
		}

		env.State[name] = raw
	}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	tmp := d.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}

	if err := os.Rename(tmp, d.path(key)); err != nil {
		return fmt.Errorf("replacing %s: %w", key, err)
	}

	return nil
}
