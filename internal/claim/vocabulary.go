package claim

// Field names known to the extractor. Keys in ExtractedFields are always
// drawn from this vocabulary.
const (
	PolicyNumber       = "policyNumber"
	PolicyholderName   = "policyholderName"
	DateOfLoss         = "dateOfLoss"
	TimeOfLoss         = "timeOfLoss"
	Location           = "location"
	Description        = "description"
	ClaimType          = "claimType"
	EstimatedDamage    = "estimatedDamage"
	AssetType          = "assetType"
	InitialEstimate    = "initialEstimate"
	Attachments        = "attachments"
	ClaimantName       = "claimantName"
	VehicleID          = "vehicleId"
	VehicleDescription = "vehicleDescription"
	Currency           = "currency"
)

// Vocabulary returns every known field name in form order.
func Vocabulary() []string {
	return []string{
		PolicyNumber, PolicyholderName, DateOfLoss, TimeOfLoss, Location,
		Description, ClaimType, EstimatedDamage, AssetType, InitialEstimate,
		Attachments, ClaimantName, VehicleID, VehicleDescription, Currency,
	}
}

// Known reports whether name belongs to the vocabulary.
func Known(name string) bool {
	for _, v := range Vocabulary() {
		if v == name {
			return true
		}
	}
	return false
}
