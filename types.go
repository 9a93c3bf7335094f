package biweekly

// Canonical column names for the fixed output schema. Every record carries
// all of them, in this order, regardless of which columns the source table
// actually had.
const (
	ColDistrict    = "Council District"
	ColFilingDate  = "Filing Date"
	ColCaseNumber  = "Case Number"
	ColAddress     = "Address"
	ColCNC         = "CNC"
	ColPlanArea    = "Community Plan Area"
	ColDescription = "Project Description"
	ColRequestType = "Request Type"
	ColApplicant   = "Applicant Contact"
	ColIsADU       = "Is ADU"
	ColSourceURL   = "Source URL"
)

// Schema is the ordered set of canonical columns written to every output file.
var Schema = []string{
	ColDistrict,
	ColFilingDate,
	ColCaseNumber,
	ColAddress,
	ColCNC,
	ColPlanArea,
	ColDescription,
	ColRequestType,
	ColApplicant,
	ColIsADU,
	ColSourceURL,
}

// RawTable is one table as produced by page extraction: ordered rows of cell
// text. Cells are empty strings where the cell lattice held no text.
type RawTable [][]string

// ColumnMapping maps a raw column index to a canonical column name. Only
// indices that resolved to a canonical name are present.
type ColumnMapping map[int]string

// Record is one normalized case row keyed by canonical column name.
type Record map[string]string

// NewRecord returns a record with every schema column initialized to "".
func NewRecord() Record {
	r := make(Record, len(Schema))
	for _, col := range Schema {
		r[col] = ""
	}
	return r
}

// Values returns the record's fields in schema order.
func (r Record) Values() []string {
	out := make([]string, len(Schema))
	for i, col := range Schema {
		out[i] = r[col]
	}
	return out
}

// ReportKind selects which flavor of biweekly report an API listing covers,
// and with it how rows are grouped inside the document.
type ReportKind string

const (
	// KindDistrict groups tables under council district numbers ("CD").
	KindDistrict ReportKind = "CD"
	// KindCouncil groups tables under neighborhood council names ("CNC").
	KindCouncil ReportKind = "CNC"
)

// DocumentLink is one report returned by the listing API.
type DocumentLink struct {
	URL  string `json:"url"`
	Date string `json:"Date"` // MM/DD/YYYY
}
