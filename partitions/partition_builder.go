package partitions

import (
	"fmt"
	"math"
	"strings"
)

// PartitionBuilder groups the independent elements of a pass into partitions
type PartitionBuilder struct {
	NumElements int

	// Optional per-element cost used by WeightedBlock, e.g. nodes per face.
	// Nil means unit weight.
	Weights []int

	// Partitioning parameters
	TargetPartitionSize int // Desired elements per partition
	MaxPartitions       int // Upper bound on the partition count, 0 for none
	Strategy            PartitionStrategy
}

// PartitionStrategy defines how elements are grouped
type PartitionStrategy int

const (
	BlockPartition PartitionStrategy = iota // Consecutive elements
	RoundRobin                              // Distribute cyclically
	WeightedBlock                           // Consecutive elements, balanced by weight
)

func (s PartitionStrategy) String() string {
	switch s {
	case BlockPartition:
		return "block"
	case RoundRobin:
		return "roundrobin"
	case WeightedBlock:
		return "weighted"
	default:
		return fmt.Sprintf("PartitionStrategy(%d)", int(s))
	}
}

// ParseStrategy maps a configuration name to a strategy
func ParseStrategy(name string) (PartitionStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "block":
		return BlockPartition, nil
	case "roundrobin", "round-robin":
		return RoundRobin, nil
	case "weighted":
		return WeightedBlock, nil
	}
	return BlockPartition, fmt.Errorf("unknown partition strategy %q", name)
}

// BuildPartitions creates a partition layout. Partitions left empty by the
// strategy are dropped, so every partition in the layout has work.
func (pb *PartitionBuilder) BuildPartitions() (*PartitionLayout, error) {
	if err := pb.validate(); err != nil {
		return nil, err
	}

	// Determine number of partitions needed
	numPartitions := pb.calculateNumPartitions()

	// Partition the elements
	eToP := pb.partitionElements(numPartitions)

	// Create partition structures
	partitions := pb.createPartitions(eToP, numPartitions)

	// Calculate KpartMax
	kpartMax := calculateKpartMax(partitions)
	for i := range partitions {
		partitions[i].MaxElements = kpartMax
	}

	layout := &PartitionLayout{
		Partitions:    partitions,
		KpartMax:      kpartMax,
		TotalElements: pb.NumElements,
		NumPartitions: len(partitions),
		EToP:          eToP,
	}

	// Validate the layout
	if err := layout.ValidateLayout(); err != nil {
		return nil, fmt.Errorf("invalid partition layout: %w", err)
	}

	return layout, nil
}

func (pb *PartitionBuilder) validate() error {
	if pb.NumElements < 0 {
		return fmt.Errorf("negative element count %d", pb.NumElements)
	}
	if pb.NumElements > 0 && pb.TargetPartitionSize <= 0 {
		return fmt.Errorf("target partition size must be positive, got %d", pb.TargetPartitionSize)
	}
	if pb.MaxPartitions < 0 {
		return fmt.Errorf("negative partition cap %d", pb.MaxPartitions)
	}
	if pb.Weights != nil {
		if len(pb.Weights) != pb.NumElements {
			return fmt.Errorf("%d weights for %d elements", len(pb.Weights), pb.NumElements)
		}
		for i, w := range pb.Weights {
			if w < 0 {
				return fmt.Errorf("element %d has negative weight %d", i, w)
			}
		}
	}
	return nil
}

// calculateNumPartitions determines the partition count
func (pb *PartitionBuilder) calculateNumPartitions() int {
	if pb.NumElements == 0 {
		return 0
	}
	numPartitions := int(math.Ceil(float64(pb.NumElements) / float64(pb.TargetPartitionSize)))

	if pb.MaxPartitions > 0 && numPartitions > pb.MaxPartitions {
		numPartitions = pb.MaxPartitions
	}
	// Ensure at least one partition
	if numPartitions < 1 {
		numPartitions = 1
	}

	return numPartitions
}

func (pb *PartitionBuilder) weight(i int) int {
	if pb.Weights == nil {
		return 1
	}
	return pb.Weights[i]
}

// partitionElements assigns elements to partitions
func (pb *PartitionBuilder) partitionElements(numPartitions int) []int {
	eToP := make([]int, pb.NumElements)
	if numPartitions == 0 {
		return eToP
	}

	switch pb.Strategy {
	case BlockPartition:
		// Simple block partitioning
		elementsPerPartition := int(math.Ceil(float64(pb.NumElements) / float64(numPartitions)))
		for i := 0; i < pb.NumElements; i++ {
			eToP[i] = i / elementsPerPartition
			if eToP[i] >= numPartitions {
				eToP[i] = numPartitions - 1
			}
		}

	case RoundRobin:
		// Distribute elements cyclically
		for i := 0; i < pb.NumElements; i++ {
			eToP[i] = i % numPartitions
		}

	case WeightedBlock:
		var total int
		for i := 0; i < pb.NumElements; i++ {
			total += pb.weight(i)
		}
		if total == 0 {
			return pb.partitionWithStrategy(BlockPartition, numPartitions)
		}
		// An element goes to the partition its weight midpoint falls in
		var before int
		for i := 0; i < pb.NumElements; i++ {
			w := pb.weight(i)
			mid := float64(before) + 0.5*float64(w)
			p := int(mid * float64(numPartitions) / float64(total))
			if p >= numPartitions {
				p = numPartitions - 1
			}
			eToP[i] = p
			before += w
		}

	default:
		// Default to block partitioning
		return pb.partitionWithStrategy(BlockPartition, numPartitions)
	}

	return eToP
}

// partitionWithStrategy recursively applies a different strategy
func (pb *PartitionBuilder) partitionWithStrategy(strategy PartitionStrategy, numPartitions int) []int {
	oldStrategy := pb.Strategy
	pb.Strategy = strategy
	result := pb.partitionElements(numPartitions)
	pb.Strategy = oldStrategy
	return result
}

// createPartitions builds partition structures from element assignments,
// renumbering partition IDs densely so that empty partitions disappear
func (pb *PartitionBuilder) createPartitions(eToP []int, numPartitions int) []Partition {
	counts := make([]int, numPartitions)
	for _, p := range eToP {
		counts[p]++
	}

	renumber := make([]int, numPartitions)
	var used int
	for p, n := range counts {
		if n == 0 {
			renumber[p] = -1
			continue
		}
		renumber[p] = used
		used++
	}

	partitions := make([]Partition, used)
	for p, n := range counts {
		if id := renumber[p]; id >= 0 {
			partitions[id] = Partition{
				ID:       id,
				Elements: make([]int, 0, n),
			}
		}
	}

	// Assign elements to partitions
	for elem, p := range eToP {
		id := renumber[p]
		eToP[elem] = id
		partitions[id].Elements = append(partitions[id].Elements, elem)
		partitions[id].NumElements++
		partitions[id].Weight += pb.weight(elem)
	}

	return partitions
}

// calculateKpartMax finds maximum elements across all partitions
func calculateKpartMax(partitions []Partition) int {
	kpartMax := 0
	for _, p := range partitions {
		if p.NumElements > kpartMax {
			kpartMax = p.NumElements
		}
	}
	return kpartMax
}
