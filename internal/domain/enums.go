package domain

type MilestoneType string

const (
	MilestoneExpense   MilestoneType = "Expense"
	MilestoneIncome    MilestoneType = "Income"
	MilestoneAsset     MilestoneType = "Asset"
	MilestoneLiability MilestoneType = "Liability"
	// MilestoneGroup is synthetic: it only labels a parent header in the
	// display forest and is never stored for a leaf.
	MilestoneGroup MilestoneType = "Group"
)

type DisbursementType string

const (
	DisbursementNone          DisbursementType = "None"
	DisbursementFixedDuration DisbursementType = "Fixed Duration"
	DisbursementPerpetuity    DisbursementType = "Perpetuity"
)

type ValueType string

const (
	ValueFV ValueType = "FV"
	ValuePV ValueType = "PV"
)

type Occurrence string

const (
	OccurrenceMonthly Occurrence = "Monthly"
	OccurrenceYearly  Occurrence = "Yearly"
)

// ValidMilestoneTypes is the canonical set of types accepted for stored milestones.
var ValidMilestoneTypes = map[string]bool{
	"Expense": true, "Income": true, "Asset": true, "Liability": true,
}

// ValidDisbursementTypes is the canonical set of accepted disbursement type strings.
var ValidDisbursementTypes = map[string]bool{
	"None": true, "Fixed Duration": true, "Perpetuity": true,
}

// ValidValueTypes is the canonical set of accepted amount representations.
var ValidValueTypes = map[string]bool{"FV": true, "PV": true}

// ValidOccurrences is the canonical set of accepted period units.
var ValidOccurrences = map[string]bool{"Monthly": true, "Yearly": true}

// PeriodsPerYear returns how many duration periods fit in one year.
func (o Occurrence) PeriodsPerYear() float64 {
	if o == OccurrenceMonthly {
		return 12
	}
	return 1
}

// ReducesNetPosition reports whether contributions of this type are negated
// when summed into the total.
func (t MilestoneType) ReducesNetPosition() bool {
	return t == MilestoneExpense || t == MilestoneLiability
}

// IsCashFlow reports whether the type is valued as an annuity stream.
func (t MilestoneType) IsCashFlow() bool {
	return t == MilestoneExpense || t == MilestoneIncome
}

// IsBalance reports whether the type is valued as a principal minus payments.
func (t MilestoneType) IsBalance() bool {
	return t == MilestoneAsset || t == MilestoneLiability
}
