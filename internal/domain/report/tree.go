package report

// Report is the rendered tree handed to the JSON and PDF outputs
type Report struct {
	Title    string    `json:"title"`
	From     string    `json:"from"`
	To       string    `json:"to"`
	Headings []Heading `json:"headings"`
}

// Heading groups the rows of one header entity
type Heading struct {
	Title       string       `json:"title"`
	Subheadings []Subheading `json:"subheadings"`
	Cumulative  *Cumulative  `json:"cumulative,omitempty"`
}

// Subheading holds the rows of one (header, subheader) pair
type Subheading struct {
	Title          string       `json:"title"`
	DataRows       []Row        `json:"dataRows"`
	SpecialRows    []SpecialRow `json:"specialRows"`
	DisplayOnIndex bool         `json:"displayOnIndex"`
	Cumulative     *Cumulative  `json:"cumulative,omitempty"`
}

// SpecialRow is a subtotal row placed under one column
type SpecialRow struct {
	Name       string `json:"name"`
	Value      string `json:"value"`
	Column     string `json:"column"`
	Numeric    int64  `json:"numeric"`
	BeforeData bool   `json:"beforeData"`
}

// Cumulative is a single aggregate shown for a heading or subheading
type Cumulative struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewSpecialRow formats numeric under column. negative renders the value with
// a leading "- " while numeric keeps the plain figure.
func NewSpecialRow(name, column string, numeric int64, negative bool) SpecialRow {
	return SpecialRow{
		Name:    name,
		Value:   FormatAmount(numeric, negative),
		Column:  column,
		Numeric: numeric,
	}
}

// Empty reports whether the subheading has no data rows
func (s *Subheading) Empty() bool {
	return len(s.DataRows) == 0
}
