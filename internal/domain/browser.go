package domain

// DatabaseInfo is a row from system.databases.
type DatabaseInfo struct {
	Name    string `json:"name"`
	Engine  string `json:"engine"`
	Comment string `json:"comment"`
}

// TableInfo is a row from system.tables.
type TableInfo struct {
	Database   string  `json:"database"`
	Name       string  `json:"name"`
	Engine     string  `json:"engine"`
	TotalRows  *uint64 `json:"total_rows"`
	TotalBytes *uint64 `json:"total_bytes"`
	Comment    string  `json:"comment"`
}

// PartInfo is a row from system.parts.
type PartInfo struct {
	Database          string   `json:"database"`
	Table             string   `json:"table"`
	Partition         string   `json:"partition"`
	Name              string   `json:"name"`
	Active            bool     `json:"active"`
	Rows              uint64   `json:"rows"`
	BytesOnDisk       uint64   `json:"bytes_on_disk"`
	CompressedBytes   uint64   `json:"data_compressed_bytes"`
	UncompressedBytes uint64   `json:"data_uncompressed_bytes"`
	Level             uint32   `json:"level"`
	ModificationTime  WireTime `json:"modification_time"`
}

// PartitionInfo is a per-partition rollup over active parts.
type PartitionInfo struct {
	Database    string `json:"database"`
	Table       string `json:"table"`
	Partition   string `json:"partition"`
	PartCount   uint64 `json:"part_count"`
	Rows        uint64 `json:"rows"`
	BytesOnDisk uint64 `json:"bytes_on_disk"`
}

// ProjectionInfo is a row from system.projection_parts.
type ProjectionInfo struct {
	Name        string `json:"name"`
	PartName    string `json:"part_name"`
	Rows        uint64 `json:"rows"`
	BytesOnDisk uint64 `json:"bytes_on_disk"`
}

// SkipIndexInfo is a row from system.data_skipping_indices.
type SkipIndexInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Expression  string `json:"expr"`
	Granularity uint64 `json:"granularity"`
}

// BrowserCategory is the middle drill-down level under a table.
type BrowserCategory string

const (
	CategoryPartitions  BrowserCategory = "partitions"
	CategoryColumns     BrowserCategory = "columns"
	CategoryProjections BrowserCategory = "projections"
	CategoryIndexes     BrowserCategory = "indexes"
)

// BrowserCategories lists the drill-down categories in display order.
var BrowserCategories = []BrowserCategory{
	CategoryPartitions, CategoryColumns, CategoryProjections, CategoryIndexes,
}

// BrowserSelection is the schema browser's single-selection path:
// database → table → category → item (partition/column/projection/index) →
// part. At most one node per level is selected; selecting a node clears
// every deeper level, and re-selecting the same node deselects it and
// everything below it.
type BrowserSelection struct {
	Database string
	Table    string
	Category BrowserCategory
	Item     string
	Part     string
}

// SelectDatabase applies the cascade rules at the database level.
func (s *BrowserSelection) SelectDatabase(name string) {
	if s.Database == name {
		*s = BrowserSelection{}
		return
	}
	*s = BrowserSelection{Database: name}
}

// SelectTable applies the cascade rules at the table level.
func (s *BrowserSelection) SelectTable(name string) {
	if s.Table == name {
		s.Table = ""
		s.clearBelowTable()
		return
	}
	s.Table = name
	s.clearBelowTable()
}

// SelectCategory applies the cascade rules at the category level.
func (s *BrowserSelection) SelectCategory(c BrowserCategory) {
	if s.Category == c {
		s.Category = ""
		s.clearBelowCategory()
		return
	}
	s.Category = c
	s.clearBelowCategory()
}

// SelectItem applies the cascade rules at the item level.
func (s *BrowserSelection) SelectItem(name string) {
	if s.Item == name {
		s.Item = ""
		s.Part = ""
		return
	}
	s.Item = name
	s.Part = ""
}

// SelectPart applies the cascade rules at the leaf level.
func (s *BrowserSelection) SelectPart(name string) {
	if s.Part == name {
		s.Part = ""
		return
	}
	s.Part = name
}

func (s *BrowserSelection) clearBelowTable() {
	s.Category = ""
	s.clearBelowCategory()
}

func (s *BrowserSelection) clearBelowCategory() {
	s.Item = ""
	s.Part = ""
}
