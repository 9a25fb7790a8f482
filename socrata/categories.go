package socrata

// categories is the closed set of primary crime types the dashboard
// offers. The filter engine matches these case-sensitively.
var categories = []string{
	"THEFT",
	"ASSAULT",
	"SEX OFFENSE",
	"BURGLARY",
	"MOTOR VEHICLE THEFT",
	"OFFENSE INVOLVING CHILDREN",
	"CRIMINAL TRESPASS",
	"ROBBERY",
	"CRIMINAL SEXUAL ASSAULT",
	"STALKING",
	"HOMICIDE",
	"KIDNAPPING",
	"DOMESTIC VIOLENCE",
}

// Categories returns a copy of the available crime categories.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}
