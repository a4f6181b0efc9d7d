// Package display provides human-readable names for field keys and routes.
//
// Keys stay as they are in JSON output and map lookups; these names are for
// reasoning text, tables and spreadsheet headers.
package display

import (
	"strings"
	"unicode"
)

var fieldNames = map[string]string{
	"policyNumber":       "Policy Number",
	"policyholderName":   "Policyholder Name",
	"dateOfLoss":         "Date of Loss",
	"timeOfLoss":         "Time of Loss",
	"location":           "Location",
	"description":        "Description",
	"claimType":          "Claim Type",
	"estimatedDamage":    "Estimated Damage",
	"assetType":          "Asset Type",
	"initialEstimate":    "Initial Estimate",
	"attachments":        "Attachments",
	"claimantName":       "Claimant Name",
	"vehicleId":          "Vehicle ID",
	"vehicleDescription": "Vehicle Description",
	"currency":           "Currency",
}

// FieldName returns the human-readable name for a field key.
// Unknown camelCase keys are split into words: "repairShop" -> "Repair Shop".
func FieldName(key string) string {
	if name, ok := fieldNames[key]; ok {
		return name
	}
	return splitCamel(key)
}

// FieldNameWithKey returns "Policy Number (policyNumber)".
func FieldNameWithKey(key string) string {
	name := FieldName(key)
	if name == key {
		return key
	}
	return name + " (" + key + ")"
}

// FieldList joins keys for a sentence:
// ["policyNumber", "location"] -> "Policy Number (policyNumber), Location (location)".
func FieldList(keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = FieldNameWithKey(k)
	}
	return strings.Join(parts, ", ")
}

func splitCamel(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	for i, r := range s {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RouteShort is a compact label for narrow table columns.
func RouteShort(route string) string {
	switch route {
	case "Manual review":
		return "manual"
	case "Investigation Flag":
		return "investigate"
	case "Specialist Queue":
		return "specialist"
	case "Fast-track":
		return "fast-track"
	case "Standard Queue":
		return "standard"
	default:
		return route
	}
}
