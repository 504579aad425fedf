package repo

import (
	"math/rand"
	"strconv"

	"go.uber.org/zap"

	"github.com/sells-group/facloc-cli/internal/model"
)

// Bounding box for generated coordinates (roughly a quarter of Bavaria).
const (
	genLonMin = 9.0
	genLonMax = 11.5
	genLatMin = 47.3
	genLatMax = 49.0
)

const (
	genMaxPopulation = 20000
	genMaxCapacity   = 80000
	genRelocSigma    = 0.01
)

// GenerateParams configures synthetic instance generation.
type GenerateParams struct {
	NumUsers int
	PFac     float64 // probability a record carries a facility
	Seed     int64
}

// Generate synthesizes a random instance: uniform coordinates in the
// bounding box, random population and capacity, 50/50 region type, and a
// small Gaussian perturbation for the relocated facility centroid. The
// zipcode of record i is simply i. Deterministic for a fixed seed.
func Generate(p GenerateParams) *model.Instance {
	rng := rand.New(rand.NewSource(p.Seed))

	records := make([]model.Record, 0, p.NumUsers)
	for i := 0; i < p.NumUsers; i++ {
		lon := genLonMin + rng.Float64()*(genLonMax-genLonMin)
		lat := genLatMin + rng.Float64()*(genLatMax-genLatMin)

		population := rng.Intn(genMaxPopulation + 1)
		capacity := 0
		if rng.Float64() < p.PFac {
			capacity = rng.Intn(genMaxCapacity + 1)
		}

		region := model.RegionUrban
		if rng.Float64() < 0.5 {
			region = model.RegionRural
		}

		records = append(records, model.Record{
			Index:      i,
			ZipCode:    strconv.Itoa(i),
			Lat:        lat,
			Lon:        lon,
			RegionType: region,
			Population: population,
			Capacity:   capacity,
			RCLat:      lat + rng.NormFloat64()*genRelocSigma,
			RCLon:      lon + rng.NormFloat64()*genRelocSigma,
		})
	}

	inst := model.NewInstance(records)
	zap.L().Info("instance generated",
		zap.Int("users", len(inst.Users)),
		zap.Int("facilities", len(inst.Facs)),
		zap.Float64("p_fac", p.PFac),
		zap.Int64("seed", p.Seed),
	)
	return inst
}
