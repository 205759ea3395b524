package model

// GenderOptions are the accepted gender values on the registration form.
var GenderOptions = []string{"Male", "Female", "Other"}

// IdentificationTypes is the optional enum for the registration form's
// identification type field.
var IdentificationTypes = []string{
	"Birth Certificate",
	"Driver's License",
	"Medical Insurance Card/Policy",
	"Military ID Card",
	"National Identity Card",
	"Passport",
	"Resident Alien Card (Green Card)",
	"Social Security Card",
	"State ID Card",
	"Student ID Card",
	"Voter ID Card",
}

// Physicians is the fixed roster a chosen physician must come from.
var Physicians = []string{
	"John Green",
	"Leila Cameron",
	"David Livingston",
	"Evan Peter",
	"Jane Powell",
	"Alex Ramirez",
	"Jasmine Lee",
	"Alyana Cruz",
	"Hardik Sharma",
}

// IsKnownPhysician reports whether name is on the roster.
func IsKnownPhysician(name string) bool {
	for _, p := range Physicians {
		if p == name {
			return true
		}
	}
	return false
}

// IsKnownIdentificationType reports whether t is a recognized ID type.
func IsKnownIdentificationType(t string) bool {
	for _, known := range IdentificationTypes {
		if known == t {
			return true
		}
	}
	return false
}
