// Package phases groups chart rows into mood phases by emotion similarity.
package phases

import (
	"fmt"
	"sort"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/emokit/emotion-insights/internal/timeline"
)

// Config holds phase-clustering parameters.
type Config struct {
	NumClusters  int // Number of phases to create (default: 2)
	MinPhaseSize int // Minimum slots per phase (smaller clusters become outliers)
}

// DefaultConfig returns the recommended default configuration.
func DefaultConfig() Config {
	return Config{
		NumClusters:  2,
		MinPhaseSize: 1,
	}
}

// Phase is a cluster of time slots sharing a similar emotion profile.
type Phase struct {
	Name        string              // Descriptive name: "Bright & Settled (Joy, Calm)"
	Rows        []timeline.ChartRow // Slots in this phase, fixture order
	Centroid    map[string]float64  // Average 0-100 intensity per emotion
	TopEmotions []string            // Dominant emotions, strongest first
}

// rowObservation wraps a ChartRow to implement the clusters.Observation interface.
type rowObservation struct {
	row    *timeline.ChartRow
	index  int
	coords clusters.Coordinates
}

func (o rowObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o rowObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// DetectPhases groups chart rows by emotion-intensity similarity using
// k-means clustering. Categories defines the vector dimensions; rows that
// carry none of the categories are treated as outliers, as is everything
// when there are fewer usable rows than clusters.
func DetectPhases(rows []timeline.ChartRow, categories []string, cfg Config) ([]Phase, []timeline.ChartRow) {
	if len(rows) == 0 || len(categories) == 0 {
		return nil, nil
	}

	// Apply defaults
	if cfg.NumClusters <= 0 {
		cfg.NumClusters = DefaultConfig().NumClusters
	}
	if cfg.MinPhaseSize <= 0 {
		cfg.MinPhaseSize = DefaultConfig().MinPhaseSize
	}

	// Separate rows with and without emotion values
	var validRows []*timeline.ChartRow
	var validIndexes []int
	var empty []timeline.ChartRow

	for i := range rows {
		r := &rows[i]
		if len(r.Values) > 0 {
			validRows = append(validRows, r)
			validIndexes = append(validIndexes, i)
		} else {
			empty = append(empty, *r)
		}
	}

	// If fewer usable rows than clusters, everything is an outlier
	if len(validRows) < cfg.NumClusters {
		var outliers []timeline.ChartRow
		for _, r := range validRows {
			outliers = append(outliers, *r)
		}
		outliers = append(outliers, empty...)
		return nil, outliers
	}

	// Build observations for k-means
	var obs clusters.Observations
	for i, r := range validRows {
		obs = append(obs, rowObservation{
			row:    r,
			index:  validIndexes[i],
			coords: buildIntensityVector(r, categories),
		})
	}

	// Run k-means clustering
	km := kmeans.New()
	result, err := km.Partition(obs, cfg.NumClusters)
	if err != nil {
		// On error, treat all as outliers
		fmt.Printf("Warning: k-means clustering failed: %v\n", err)
		var outliers []timeline.ChartRow
		for _, r := range validRows {
			outliers = append(outliers, *r)
		}
		outliers = append(outliers, empty...)
		return nil, outliers
	}

	// Build phases from clusters
	var detected []Phase
	var outliers []timeline.ChartRow

	for _, cluster := range result {
		type member struct {
			row   timeline.ChartRow
			index int
		}
		var members []member
		for _, o := range cluster.Observations {
			if ro, ok := o.(rowObservation); ok {
				members = append(members, member{row: *ro.row, index: ro.index})
			}
		}

		// Check minimum size
		if len(members) < cfg.MinPhaseSize {
			for _, m := range members {
				outliers = append(outliers, m.row)
			}
			continue
		}

		// Restore fixture order within the phase
		sort.Slice(members, func(i, j int) bool {
			return members[i].index < members[j].index
		})

		phaseRows := make([]timeline.ChartRow, len(members))
		for i, m := range members {
			phaseRows[i] = m.row
		}

		// Build centroid map back in 0-100 intensity space
		centroid := make(map[string]float64, len(categories))
		for i, name := range categories {
			centroid[name] = cluster.Center[i] * intensityScale
		}

		top := topEmotions(cluster.Center, categories, 2)

		detected = append(detected, Phase{
			Name:        generatePhaseName(centroid, top),
			Rows:        phaseRows,
			Centroid:    centroid,
			TopEmotions: top,
		})
	}

	outliers = append(outliers, empty...)

	return detected, outliers
}

// intensityScale maps 0-100 intensities onto 0-1 coordinates.
const intensityScale = 100

// buildIntensityVector creates a feature vector for a row over the category
// set. Values are intensities normalized to a 0-1 scale; categories missing
// from the row contribute zero.
func buildIntensityVector(row *timeline.ChartRow, categories []string) clusters.Coordinates {
	vector := make(clusters.Coordinates, len(categories))
	for i, name := range categories {
		if v, ok := row.Values[name]; ok {
			vector[i] = v / intensityScale
		}
	}
	return vector
}

// topEmotions returns the n strongest categories of a centroid.
func topEmotions(centroid clusters.Coordinates, categories []string, n int) []string {
	if len(centroid) == 0 || len(categories) == 0 {
		return nil
	}

	type weighted struct {
		name  string
		value float64
	}
	ranked := make([]weighted, 0, len(categories))
	for i, name := range categories {
		if i < len(centroid) && centroid[i] > 0 {
			ranked = append(ranked, weighted{name: name, value: centroid[i]})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].value > ranked[j].value
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = ranked[i].name
	}
	return names
}
