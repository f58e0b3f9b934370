// Package snapshot persists the full roster as a single durable value.
// Every save replaces the previous snapshot wholesale; there is no per-record
// storage. Two backends are provided: a SQLite key-value table and a plain
// JSON file.
package snapshot

import (
	"encoding/json"
	"fmt"

	"caseboard/internal/client"
)

// SchemaVersion is the current snapshot envelope version. Older snapshots
// written as a bare client array are migrated on load; snapshots written by a
// newer version are refused rather than partially read.
const SchemaVersion = 1

// Snapshot stores and retrieves the complete roster.
type Snapshot interface {
	// Load returns the stored roster. ok is false when no snapshot has
	// been written yet.
	Load() (clients []client.Client, ok bool, err error)
	// Save replaces the stored roster with the given one.
	Save(clients []client.Client) error
	Close() error
}

type envelope struct {
	Version int             `json:"version"`
	Clients []client.Client `json:"clients"`
}

func encode(clients []client.Client) ([]byte, error) {
	if clients == nil {
		clients = []client.Client{}
	}
	data, err := json.Marshal(envelope{Version: SchemaVersion, Clients: clients})
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

func decode(data []byte) ([]client.Client, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Version > 0 {
		if env.Version > SchemaVersion {
			return nil, fmt.Errorf("snapshot version %d is newer than supported version %d", env.Version, SchemaVersion)
		}
		return env.Clients, nil
	}

	// Legacy form: a bare array with no envelope.
	var clients []client.Client
	if err := json.Unmarshal(data, &clients); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return clients, nil
}
