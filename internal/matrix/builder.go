// Package matrix builds the user-to-facility travel probability matrix.
package matrix

import (
	"context"
	"runtime"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/facloc-cli/internal/access"
	"github.com/sells-group/facloc-cli/internal/geodesy"
	"github.com/sells-group/facloc-cli/internal/model"
)

// Builder computes access probabilities for the full user x facility cross
// product. Cells are independent, so rows are distributed across workers.
type Builder struct {
	distance geodesy.DistanceFunc
	workers  int
}

// Option configures a Builder.
type Option func(*Builder)

// WithDistance substitutes the geodesic distance function.
func WithDistance(f geodesy.DistanceFunc) Option {
	return func(b *Builder) { b.distance = f }
}

// WithWorkers sets the number of concurrent row workers.
func WithWorkers(n int) Option {
	return func(b *Builder) { b.workers = n }
}

// New creates a Builder with the great-circle distance function and one
// worker per CPU.
func New(opts ...Option) *Builder {
	b := &Builder{
		distance: geodesy.GreatCircleKM,
		workers:  runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.workers < 1 {
		b.workers = 1
	}
	return b
}

// Build computes the travel matrix for every (user, facility) pair of the
// instance. Deterministic given the instance and distance function.
func (b *Builder) Build(ctx context.Context, inst *model.Instance) (model.TravelMatrix, error) {
	log := zap.L().With(zap.String("component", "matrix.builder"))
	start := time.Now()

	// Resolve facility coordinates once; every row reads the same slice.
	type facPoint struct {
		idx      int
		lat, lon float64
	}
	facs := make([]facPoint, 0, len(inst.Facs))
	for _, j := range inst.Facs {
		rec, err := inst.Record(j)
		if err != nil {
			return nil, eris.Wrapf(err, "matrix: resolve facility %d", j)
		}
		facs = append(facs, facPoint{idx: j, lat: rec.RCLat, lon: rec.RCLon})
	}

	// Pre-create all rows so workers only ever write into their own inner
	// map; the outer map is read-only while the group runs.
	m := make(model.TravelMatrix, len(inst.Users))
	for _, i := range inst.Users {
		m[i] = make(map[int]float64, len(facs))
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for _, i := range inst.Users {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return eris.Wrap(err, "matrix: build cancelled")
			}
			rec, err := inst.Record(i)
			if err != nil {
				return eris.Wrapf(err, "matrix: resolve user %d", i)
			}
			row := m[i]
			for _, f := range facs {
				d := b.distance(rec.Lat, rec.Lon, f.lat, f.lon)
				p, err := access.Probability(d, rec.RegionType)
				if err != nil {
					return eris.Wrapf(err, "matrix: user %d", i)
				}
				row[f.idx] = p
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info("travel matrix built",
		zap.Int("users", len(inst.Users)),
		zap.Int("facilities", len(facs)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return m, nil
}
