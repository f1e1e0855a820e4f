package domain

import "time"

// Operation is the last action the engine took on a path
type Operation string

const (
	OpCreate     Operation = "create"
	OpUpdate     Operation = "update"
	OpOverwrite  Operation = "overwrite"
	OpKeepRemote Operation = "keep_remote"
	OpAdopt      Operation = "adopt"
)

// WrittenRecord is the persisted last-written hash of a target file
type WrittenRecord struct {
	Path      string
	Hash      string
	Adapters  []AdapterID
	Operation Operation
	WrittenAt time.Time
}

// SyncError is a per-file failure during sync
type SyncError struct {
	FilePath    string
	AdapterName string
	Message     string
}

// SyncResult is the outcome of a sync or a sync preview
type SyncResult struct {
	Success      bool
	FilesWritten []string
	Errors       []SyncError
	Conflicts    []Conflict
}

// SyncTrigger names what started a sync
type SyncTrigger string

const (
	TriggerManual SyncTrigger = "manual"
	TriggerImport SyncTrigger = "import"
	TriggerWatch  SyncTrigger = "watch"
	TriggerMCP    SyncTrigger = "mcp"
)

// SyncHistoryEntry is one row of the sync log
type SyncHistoryEntry struct {
	ID           string
	At           time.Time
	FilesWritten int
	Conflicts    int
	Errors       int
	Success      bool
	TriggeredBy  SyncTrigger
	Duration     time.Duration
}
