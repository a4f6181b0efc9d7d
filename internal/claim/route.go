package claim

// Route is the workflow queue a claim is assigned to. Downstream systems
// switch on the literal, so the strings are case- and spelling-exact.
type Route string

const (
	ManualReview      Route = "Manual review"
	InvestigationFlag Route = "Investigation Flag"
	SpecialistQueue   Route = "Specialist Queue"
	FastTrack         Route = "Fast-track"
	StandardQueue     Route = "Standard Queue"
)

// Routes lists every route in rule priority order.
func Routes() []Route {
	return []Route{ManualReview, InvestigationFlag, SpecialistQueue, FastTrack, StandardQueue}
}

// Valid reports whether r is one of the known routes.
func (r Route) Valid() bool {
	for _, known := range Routes() {
		if r == known {
			return true
		}
	}
	return false
}

// Decision is a route plus the sentence explaining which condition fired.
type Decision struct {
	Route     Route  `json:"route"`
	Reasoning string `json:"reasoning"`
}
