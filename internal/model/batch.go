package model

import "time"

// ImportBatch records one ingested source file. The file hash is used to
// skip re-importing a file whose contents have not changed.
type ImportBatch struct {
	ImportedAt  time.Time
	ID          string
	SourceFile  string
	FileHash    string
	RowsRead    int
	RowsSaved   int
	RowsSkipped int
}
