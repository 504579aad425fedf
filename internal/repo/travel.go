package repo

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/klauspost/compress/gzip"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/facloc-cli/internal/model"
)

// SaveTravelMatrix writes the matrix as gzip-compressed JSON, creating dir
// on demand. The conventional filename suffix is ".json.gz".
func SaveTravelMatrix(m model.TravelMatrix, dir, filename string) error {
	if err := ensureDir(dir); err != nil {
		return err
	}
	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "repo: create travel matrix %s", path)
	}
	defer f.Close() //nolint:errcheck

	zw := gzip.NewWriter(f)
	if err := json.NewEncoder(zw).Encode(m); err != nil {
		return eris.Wrapf(err, "repo: encode travel matrix %s", path)
	}
	if err := zw.Close(); err != nil {
		return eris.Wrapf(err, "repo: close gzip writer %s", path)
	}
	if err := f.Close(); err != nil {
		return eris.Wrapf(err, "repo: close travel matrix %s", path)
	}

	zap.L().Debug("travel matrix saved", zap.String("path", path), zap.Int("users", len(m)))
	return nil
}

// LoadTravelMatrix reads a gzip-compressed JSON matrix. JSON stringifies
// map keys, so both key levels are coerced back to integers here, at the
// deserialization boundary.
func LoadTravelMatrix(dir, filename string) (model.TravelMatrix, error) {
	path := filepath.Join(dir, filename)
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "repo: open travel matrix %s", path)
	}
	defer f.Close() //nolint:errcheck

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, eris.Wrapf(err, "repo: gzip reader %s", path)
	}
	defer zr.Close() //nolint:errcheck

	var raw map[string]map[string]float64
	if err := json.NewDecoder(zr).Decode(&raw); err != nil {
		return nil, eris.Wrapf(err, "repo: decode travel matrix %s", path)
	}

	m := make(model.TravelMatrix, len(raw))
	for userKey, row := range raw {
		user, err := strconv.Atoi(userKey)
		if err != nil {
			return nil, eris.Wrapf(err, "repo: travel matrix user key %q", userKey)
		}
		inner := make(map[int]float64, len(row))
		for facKey, p := range row {
			fac, err := strconv.Atoi(facKey)
			if err != nil {
				return nil, eris.Wrapf(err, "repo: travel matrix facility key %q", facKey)
			}
			inner[fac] = p
		}
		m[user] = inner
	}
	return m, nil
}
