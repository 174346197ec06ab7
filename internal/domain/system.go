package domain

// ProcessEntry is a row from system.processes.
type ProcessEntry struct {
	QueryID         string  `json:"query_id"`
	User            string  `json:"user"`
	Address         string  `json:"address"`
	Elapsed         float64 `json:"elapsed"`
	Query           string  `json:"query"`
	ReadRows        uint64  `json:"read_rows"`
	ReadBytes       uint64  `json:"read_bytes"`
	TotalRowsApprox uint64  `json:"total_rows_approx"`
	MemoryUsage     int64   `json:"memory_usage"`
	PeakMemoryUsage int64   `json:"peak_memory_usage"`
}

// MergeEntry is a row from system.merges.
type MergeEntry struct {
	Database       string  `json:"database"`
	Table          string  `json:"table"`
	ResultPartName string  `json:"result_part_name"`
	Elapsed        float64 `json:"elapsed"`
	Progress       float64 `json:"progress"`
	NumParts       uint64  `json:"num_parts"`
	TotalSizeBytes uint64  `json:"total_size_bytes_compressed"`
	RowsRead       uint64  `json:"rows_read"`
	RowsWritten    uint64  `json:"rows_written"`
	MemoryUsage    uint64  `json:"memory_usage"`
	IsMutation     bool    `json:"is_mutation"`
}

// MutationEntry is a row from system.mutations.
type MutationEntry struct {
	Database         string   `json:"database"`
	Table            string   `json:"table"`
	MutationID       string   `json:"mutation_id"`
	Command          string   `json:"command"`
	CreateTime       WireTime `json:"create_time"`
	PartsToDo        int64    `json:"parts_to_do"`
	IsDone           bool     `json:"is_done"`
	LatestFailedPart string   `json:"latest_failed_part"`
	LatestFailReason string   `json:"latest_fail_reason"`
}

// MetricEntry is a row from system.metrics, system.asynchronous_metrics or
// system.events; they share the name/value/description shape.
type MetricEntry struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Description string  `json:"description"`
}

// UserEntry is a row from system.users.
type UserEntry struct {
	Name            string `json:"name"`
	ID              string `json:"id"`
	Storage         string `json:"storage"`
	AuthType        string `json:"auth_type"`
	DefaultRolesAll bool   `json:"default_roles_all"`
}

// SettingEntry is a row from system.settings.
type SettingEntry struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Changed     bool   `json:"changed"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Default     string `json:"default"`
}

// ConnectionInfo describes the monitored server as configured.
type ConnectionInfo struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	Secure bool   `json:"secure"`
	User   string `json:"user"`
}
