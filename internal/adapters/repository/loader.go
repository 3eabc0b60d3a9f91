package repository

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/okian/neighborfit/internal/domain/model"
)

// ErrInvalidSeed reports a malformed neighborhood seed.
var ErrInvalidSeed = errors.New("invalid neighborhood seed")

// LoadNeighborhoods reads a JSON array of neighborhoods from path.
func LoadNeighborhoods(path string) ([]model.Neighborhood, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	ns, err := DecodeNeighborhoods(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ns, nil
}

// DecodeNeighborhoods decodes a JSON array of neighborhoods. Records without an
// ID get a random UUID; every record needs a name and IDs must be unique.
func DecodeNeighborhoods(r io.Reader) ([]model.Neighborhood, error) {
	var ns []model.Neighborhood
	if err := json.NewDecoder(r).Decode(&ns); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}

	seen := make(map[string]struct{}, len(ns))
	for i := range ns {
		n := &ns[i]
		if strings.TrimSpace(n.Name) == "" {
			return nil, fmt.Errorf("%w: record %d has no name", ErrInvalidSeed, i)
		}
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if _, dup := seen[n.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidSeed, n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	return ns, nil
}
