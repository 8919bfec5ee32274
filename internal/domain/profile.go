package domain

// DefaultInflationRate is used when no profile or setting overrides it.
const DefaultInflationRate = 0.02

// Profile holds the global reference values supplied by the profile collaborator.
type Profile struct {
	ID            string
	CurrentAge    int
	InflationRate float64
}

// DefaultProfile returns the profile used before the user has set one.
func DefaultProfile() *Profile {
	return &Profile{ID: "default", CurrentAge: 30, InflationRate: DefaultInflationRate}
}
