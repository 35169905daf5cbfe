package storage

type Record struct {
	Key   uint64
	Value uint64
}
