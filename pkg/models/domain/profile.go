package domain

type ColumnKind string

const (
	ColumnKindNumeric     ColumnKind = "numeric"
	ColumnKindDate        ColumnKind = "date"
	ColumnKindCategorical ColumnKind = "categorical"
	ColumnKindText        ColumnKind = "text"
)

type ValueCount struct {
	Value string
	Count int
}

// ColumnProfile describes one raw column: inferred kind, null counts,
// cardinality and basic stats for numeric columns.
type ColumnProfile struct {
	Name     string
	Kind     ColumnKind
	NonNull  int
	Missing  int
	Distinct int
	Min      float64
	Max      float64
	Mean     float64
	Std      float64
	Top      []ValueCount
}

type DropReason string

const (
	DropReasonMissingValue DropReason = "missing_value"
	DropReasonBadNumber    DropReason = "bad_number"
	DropReasonBadDate      DropReason = "bad_date"
)

type ColumnMissing struct {
	Column  string
	Missing int
}

// QualityReport accounts for every raw row of a dataset. CleanRows
// plus DroppedRows always equals RawRows. Resolved maps each logical
// field to the header column it was read from.
type QualityReport struct {
	RawRows     int
	CleanRows   int
	DroppedRows int
	Dropped     map[DropReason]int
	Missing     []ColumnMissing
	Resolved    map[string]string
}
