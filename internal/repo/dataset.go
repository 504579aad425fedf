// Package repo is the instance repository: it loads and saves the
// users-and-facilities dataset, the travel matrix, and solver results
// lists, generates synthetic instances, and partitions instances by
// zip-code prefix. All operations are stateless aside from the filesystem;
// directories are explicit parameters, created on demand.
package repo

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/facloc-cli/internal/model"
)

// datasetColumns is the fixed column set of the users-and-facilities CSV,
// in write order.
var datasetColumns = []string{
	"zipcode",
	"centroid_lat",
	"centroid_lon",
	"regional spatial type",
	"population",
	"capacity",
	"rc_centroid_lat",
	"rc_centroid_lon",
}

// ensureDir creates the directory if it does not exist.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "repo: create directory %s", dir)
	}
	return nil
}

// LoadDataset reads a users-and-facilities CSV from dir and derives the
// instance's user and facility sets. Row order defines the index space.
func LoadDataset(dir, filename string) (*model.Instance, error) {
	path := filepath.Join(dir, filename)
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "repo: open dataset %s", path)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, eris.Wrapf(err, "repo: read dataset header %s", path)
	}
	col, err := mapColumns(header)
	if err != nil {
		return nil, eris.Wrapf(err, "repo: dataset %s", path)
	}

	var records []model.Record
	for row := 0; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "repo: read dataset row %d", row)
		}
		rec, err := parseRecord(fields, col, row)
		if err != nil {
			return nil, eris.Wrapf(err, "repo: dataset %s", path)
		}
		records = append(records, rec)
	}

	inst := model.NewInstance(records)
	zap.L().Debug("dataset loaded",
		zap.String("path", path),
		zap.Int("users", len(inst.Users)),
		zap.Int("facilities", len(inst.Facs)),
	)
	return inst, nil
}

// SaveDataset writes the instance's records as a users-and-facilities CSV,
// creating dir on demand.
func SaveDataset(inst *model.Instance, dir, filename string) error {
	if err := ensureDir(dir); err != nil {
		return err
	}
	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "repo: create dataset %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(datasetColumns); err != nil {
		return eris.Wrap(err, "repo: write dataset header")
	}
	for _, rec := range inst.Records {
		row := []string{
			rec.ZipCode,
			formatFloat(rec.Lat),
			formatFloat(rec.Lon),
			string(rec.RegionType),
			strconv.Itoa(rec.Population),
			strconv.Itoa(rec.Capacity),
			formatFloat(rec.RCLat),
			formatFloat(rec.RCLon),
		}
		if err := w.Write(row); err != nil {
			return eris.Wrapf(err, "repo: write dataset row %d", rec.Index)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "repo: flush dataset %s", path)
	}
	return nil
}

// mapColumns maps the required column names to their header positions.
func mapColumns(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, name := range datasetColumns {
		if _, ok := idx[name]; !ok {
			return nil, eris.Errorf("missing column %q", name)
		}
	}
	return idx, nil
}

func parseRecord(fields []string, col map[string]int, row int) (model.Record, error) {
	get := func(name string) (string, error) {
		i := col[name]
		if i >= len(fields) {
			return "", eris.Errorf("row %d: missing field %q", row, name)
		}
		return strings.TrimSpace(fields[i]), nil
	}

	rec := model.Record{Index: row}

	zip, err := get("zipcode")
	if err != nil {
		return rec, err
	}
	rec.ZipCode = zip

	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"centroid_lat", &rec.Lat},
		{"centroid_lon", &rec.Lon},
		{"rc_centroid_lat", &rec.RCLat},
		{"rc_centroid_lon", &rec.RCLon},
	} {
		s, err := get(f.name)
		if err != nil {
			return rec, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return rec, eris.Wrapf(err, "row %d: parse %s %q", row, f.name, s)
		}
		*f.dst = v
	}

	regionRaw, err := get("regional spatial type")
	if err != nil {
		return rec, err
	}
	region, err := model.ParseRegionType(regionRaw)
	if err != nil {
		return rec, eris.Wrapf(err, "row %d", row)
	}
	rec.RegionType = region

	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"population", &rec.Population},
		{"capacity", &rec.Capacity},
	} {
		s, err := get(f.name)
		if err != nil {
			return rec, err
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return rec, eris.Wrapf(err, "row %d: parse %s %q", row, f.name, s)
		}
		*f.dst = v
	}

	return rec, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
