package partitions

import (
	"fmt"
	"math"
)

// Partition represents a collection of elements (faces or cells) that one
// worker processes together during a geometry pass
type Partition struct {
	// Unique identifier for this partition
	ID int

	// Element membership
	Elements    []int // Global element indices in this partition
	NumElements int   // Actual number of active elements
	MaxElements int   // Largest partition size in the layout

	// Summed element weight (NumElements when unweighted)
	Weight int
}

// PartitionLayout manages the complete decomposition of one pass
type PartitionLayout struct {
	// All partitions of the pass
	Partitions []Partition

	// Global sizing information
	KpartMax      int // max(NumElements) across all partitions
	TotalElements int // Sum of all actual elements across partitions
	NumPartitions int // Total number of partitions

	// Element to partition mapping
	EToP []int // Length TotalElements: element k belongs to partition EToP[k]
}

// GetPartition returns the partition containing element k
func (pl *PartitionLayout) GetPartition(elementID int) int {
	if elementID < 0 || elementID >= len(pl.EToP) {
		return -1
	}
	return pl.EToP[elementID]
}

// ValidateLayout checks partition consistency: KpartMax agrees with the
// partitions, and every element belongs to exactly the partition EToP names
func (pl *PartitionLayout) ValidateLayout() error {
	if len(pl.Partitions) != pl.NumPartitions {
		return fmt.Errorf("layout lists %d partitions, NumPartitions is %d",
			len(pl.Partitions), pl.NumPartitions)
	}
	if len(pl.EToP) != pl.TotalElements {
		return fmt.Errorf("EToP has %d entries for %d elements", len(pl.EToP), pl.TotalElements)
	}

	// Verify KpartMax
	actualMax := 0
	for _, p := range pl.Partitions {
		if p.NumElements > actualMax {
			actualMax = p.NumElements
		}
		if p.MaxElements != pl.KpartMax {
			return fmt.Errorf("partition %d: MaxElements %d != KpartMax %d",
				p.ID, p.MaxElements, pl.KpartMax)
		}
	}
	if actualMax != pl.KpartMax {
		return fmt.Errorf("computed KpartMax %d != stored KpartMax %d",
			actualMax, pl.KpartMax)
	}

	// Verify membership
	seen := make([]bool, pl.TotalElements)
	for i, p := range pl.Partitions {
		if p.ID != i {
			return fmt.Errorf("partition at position %d has ID %d", i, p.ID)
		}
		if len(p.Elements) != p.NumElements {
			return fmt.Errorf("partition %d: %d elements listed, NumElements %d",
				p.ID, len(p.Elements), p.NumElements)
		}
		for _, elem := range p.Elements {
			if elem < 0 || elem >= pl.TotalElements {
				return fmt.Errorf("partition %d: element %d out of range", p.ID, elem)
			}
			if seen[elem] {
				return fmt.Errorf("element %d assigned more than once", elem)
			}
			seen[elem] = true
			if pl.EToP[elem] != p.ID {
				return fmt.Errorf("element %d listed in partition %d but EToP says %d",
					elem, p.ID, pl.EToP[elem])
			}
		}
	}
	for elem, ok := range seen {
		if !ok {
			return fmt.Errorf("element %d is not assigned", elem)
		}
	}
	return nil
}

// PartitionStatistics computes load balance metrics
func (pl *PartitionLayout) PartitionStatistics() PartitionStats {
	stats := PartitionStats{
		NumPartitions: pl.NumPartitions,
	}
	if pl.NumPartitions == 0 {
		return stats
	}
	stats.MinElements = math.MaxInt32
	stats.MinWeight = math.MaxInt32
	stats.AvgElements = float64(pl.TotalElements) / float64(pl.NumPartitions)

	var totalWeight int
	for _, p := range pl.Partitions {
		if p.NumElements < stats.MinElements {
			stats.MinElements = p.NumElements
		}
		if p.NumElements > stats.MaxElements {
			stats.MaxElements = p.NumElements
		}
		if p.Weight < stats.MinWeight {
			stats.MinWeight = p.Weight
		}
		if p.Weight > stats.MaxWeight {
			stats.MaxWeight = p.Weight
		}
		totalWeight += p.Weight
	}

	stats.Imbalance = float64(stats.MaxElements) / stats.AvgElements
	if totalWeight > 0 {
		stats.WeightImbalance = float64(stats.MaxWeight) * float64(pl.NumPartitions) / float64(totalWeight)
	}

	return stats
}

type PartitionStats struct {
	NumPartitions   int
	MinElements     int
	MaxElements     int
	AvgElements     float64
	Imbalance       float64 // MaxElements / AvgElements
	MinWeight       int
	MaxWeight       int
	WeightImbalance float64 // MaxWeight / average weight
}
