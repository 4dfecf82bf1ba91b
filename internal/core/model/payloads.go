package model

// FetchAndSaveArgs contain the arguments of the FetchAndSave method.
type FetchAndSaveArgs struct {
	// Gender filters the drawn profile by gender. Empty means no filter.
	// Allowed values are listed in Genders.
	Gender string

	// Nationality filters the drawn profile by two-letter nationality
	// code. Empty means no filter. Allowed values are listed in Nationalities.
	Nationality string
}

// Genders is the closed list of gender filter values the source understands.
var Genders = []string{"male", "female"}

// Nationalities is the closed list of nationality codes the source can
// draw from. Lowercase two-letter codes.
var Nationalities = []string{
	"au", "br", "ca", "ch", "de", "dk", "es", "fi", "fr", "gb", "ie",
	"in", "ir", "mx", "nl", "no", "nz", "rs", "tr", "ua", "us",
}

// ValidGender reports whether g is empty (no filter) or an allowed gender value.
func ValidGender(g string) bool {
	if g == "" {
		return true
	}
	for _, v := range Genders {
		if v == g {
			return true
		}
	}
	return false
}

// ValidNationality reports whether nat is empty (no filter) or an allowed code.
func ValidNationality(nat string) bool {
	if nat == "" {
		return true
	}
	for _, v := range Nationalities {
		if v == nat {
			return true
		}
	}
	return false
}
