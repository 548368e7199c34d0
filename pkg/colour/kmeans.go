package colour

import (
	"cmp"
	"math"
	"runtime"
	"slices"

	"github.com/jmylchreest/undertone/internal/parallel"
)

// K-means defaults.
const (
	DefaultClusters   = 3
	DefaultIterations = 10

	// parallelThreshold is the minimum number of pixels before the assignment
	// step is spread across workers.
	parallelThreshold = 4096
)

// Cluster is a group of pixels that share a nearest centroid.
type Cluster struct {
	Centroid RGB `json:"centroid"`
	Count    int `json:"count"`
}

// KMeansOptions configures KMeans.
type KMeansOptions struct {
	// K is the number of clusters to seek. Values < 1 use DefaultClusters.
	K int

	// Iterations caps the number of assign/update rounds. Values < 1 use DefaultIterations.
	Iterations int

	// Workers bounds the goroutines used for the assignment step.
	// 0 uses GOMAXPROCS; 1 runs on the caller's goroutine.
	Workers int
}

func (o KMeansOptions) withDefaults() KMeansOptions {
	if o.K < 1 {
		o.K = DefaultClusters
	}
	if o.Iterations < 1 {
		o.Iterations = DefaultIterations
	}
	return o
}

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
}

// distanceSq returns the squared Euclidean distance between two points.
func (p point3D) distanceSq(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return dr*dr + dg*dg + db*db
}

func (p point3D) rgb() RGB {
	return RGB{
		R: toChannel(p.R / 255),
		G: toChannel(p.G / 255),
		B: toChannel(p.B / 255),
	}
}

// KMeans partitions pixels into at most opts.K clusters of similar colour.
//
// The result is fully deterministic: centroids are seeded from the distinct input
// colours ordered by luminance (one seed at the centre of each of K equal-sized
// luminance bins), ties in the nearest-centroid search go to the lowest index, and
// a cluster that loses all its pixels keeps its previous centroid. Iteration stops
// when no pixel changes cluster or after opts.Iterations rounds.
//
// Empty clusters are dropped, so the result never has more clusters than distinct
// colours in the input. Clusters are ordered by Count, largest first, and the
// counts always sum to len(pixels). Empty input yields an empty result.
func KMeans(pixels []RGB, opts KMeansOptions) []Cluster {
	if len(pixels) == 0 {
		return []Cluster{}
	}
	opts = opts.withDefaults()

	points := make([]point3D, len(pixels))
	for i, p := range pixels {
		points[i] = point3D{R: float64(p.R), G: float64(p.G), B: float64(p.B)}
	}

	centroids := seedCentroids(pixels, opts.K)
	k := len(centroids)

	assignments := make([]int, len(points))
	for i := range assignments {
		assignments[i] = -1
	}

	workers := opts.Workers
	if len(points) < parallelThreshold {
		workers = 1
	}

	for range opts.Iterations {
		if assign(points, centroids, assignments, workers) == 0 {
			break
		}
		centroids = recalculateCentroids(points, assignments, centroids)
	}

	counts := make([]int, k)
	for _, a := range assignments {
		counts[a]++
	}

	clusters := make([]Cluster, 0, k)
	for i, c := range centroids {
		if counts[i] == 0 {
			continue
		}
		clusters = append(clusters, Cluster{Centroid: c.rgb(), Count: counts[i]})
	}

	slices.SortStableFunc(clusters, func(a, b Cluster) int {
		return cmp.Compare(b.Count, a.Count)
	})

	return clusters
}

// seedCentroids picks up to k initial centroids from the distinct colours in
// pixels, spread evenly across the luminance range.
func seedCentroids(pixels []RGB, k int) []point3D {
	seen := make(map[RGB]struct{}, len(pixels))
	distinct := make([]RGB, 0, len(pixels))
	for _, p := range pixels {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		distinct = append(distinct, p)
	}

	slices.SortFunc(distinct, func(a, b RGB) int {
		return cmp.Or(
			cmp.Compare(Luminance(a), Luminance(b)),
			cmp.Compare(a.R, b.R),
			cmp.Compare(a.G, b.G),
			cmp.Compare(a.B, b.B),
		)
	})

	m := len(distinct)
	if k > m {
		k = m
	}

	centroids := make([]point3D, k)
	for i := range k {
		c := distinct[(2*i+1)*m/(2*k)]
		centroids[i] = point3D{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
	}
	return centroids
}

// assign moves every point to its nearest centroid and returns how many changed.
// Each worker owns a contiguous span of assignments and reports its own change
// count, so the result does not depend on the number of workers.
func assign(points, centroids []point3D, assignments []int, workers int) int {
	if workers == 1 {
		return assignSpan(points, centroids, assignments, 0, len(points))
	}

	spans := parallel.Chunks(len(points), workerCount(workers))
	changed := make([]int, len(spans))
	parallel.ForEachChunk(len(points), len(spans), func(chunk, start, end int) {
		changed[chunk] = assignSpan(points, centroids, assignments, start, end)
	})

	total := 0
	for _, c := range changed {
		total += c
	}
	return total
}

func workerCount(workers int) int {
	if workers < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return workers
}

func assignSpan(points, centroids []point3D, assignments []int, start, end int) int {
	changed := 0
	for i := start; i < end; i++ {
		nearest := findNearestCentroid(points[i], centroids)
		if assignments[i] != nearest {
			assignments[i] = nearest
			changed++
		}
	}
	return changed
}

// findNearestCentroid finds the index of the nearest centroid to a point.
func findNearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0

	for i, centroid := range centroids {
		if dist := point.distanceSq(centroid); dist < minDist {
			minDist = dist
			nearest = i
		}
	}

	return nearest
}

// recalculateCentroids recalculates centroid positions based on assigned points.
func recalculateCentroids(points []point3D, assignments []int, previous []point3D) []point3D {
	k := len(previous)
	sums := make([]point3D, k)
	counts := make([]int, k)

	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].R += point.R
		sums[cluster].G += point.G
		sums[cluster].B += point.B
		counts[cluster]++
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] == 0 {
			centroids[i] = previous[i]
			continue
		}
		n := float64(counts[i])
		centroids[i] = point3D{
			R: sums[i].R / n,
			G: sums[i].G / n,
			B: sums[i].B / n,
		}
	}

	return centroids
}
