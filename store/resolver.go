package store

import "context"

// ResolvePartition finds the partition key currently holding rowKey.
// The partition key is a storage-placement detail that is not always
// derivable from the row key in historical data, so callers must look it
// up before updating or deleting. A missing row is reported as found ==
// false, not as an error.
func ResolvePartition(ctx context.Context, ts TableStore, rowKey string) (partitionKey string, found bool, err error) {
	entities, err := ts.ListByRowKey(ctx, rowKey)
	if err != nil {
		return "", false, err
	}
	if len(entities) == 0 {
		return "", false, nil
	}
	return entities[0].PartitionKey, true, nil
}
