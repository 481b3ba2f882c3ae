package registrar

// PartitionByKey marks each candidate natural key as duplicate or not, both
// against the already-existing set and against earlier candidates in the same
// batch. Comparison is exact string equality. Empty keys are never marked
// duplicate here; callers reject them as invalid before partitioning.
func PartitionByKey(candidates []string, existing []string) []bool {
	seen := make(map[string]struct{}, len(existing)+len(candidates))
	for _, key := range existing {
		seen[key] = struct{}{}
	}

	duplicate := make([]bool, len(candidates))
	for i, key := range candidates {
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			duplicate[i] = true
			continue
		}
		seen[key] = struct{}{}
	}
	return duplicate
}
