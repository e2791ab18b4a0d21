package report

// LabelEntry pairs the stable canonical key of a measured parameter with its
// display name.
type LabelEntry struct {
	Key  string
	Name string
}

// Dictionary maps the label text printed in a bulletin to its canonical
// entry. Build it once at startup and treat it as read-only; concurrent
// lookups need no synchronization.
type Dictionary map[string]LabelEntry

// Lookup returns the entry for a source label.
func (d Dictionary) Lookup(label string) (LabelEntry, bool) {
	e, ok := d[label]
	return e, ok
}

// DefaultDictionary covers every label the two known bulletin layouts print.
// A new layout means a new entry here; unknown labels are fatal for the
// document rather than silently skipped.
func DefaultDictionary() Dictionary {
	return Dictionary{
		// Chemical
		"Miros*":                        {Key: "smell", Name: "Miros"},
		"Gust*":                         {Key: "taste", Name: "Gust"},
		"Culoare*":                      {Key: "color", Name: "Culoare"},
		"pH":                            {Key: "ph", Name: "pH"},
		"Conductivitate":                {Key: "conductivitate", Name: "Conductivitate"},
		"Amoniu":                        {Key: "amoniu", Name: "Amoniu"},
		"Nitriti":                       {Key: "nitriti", Name: "Nitriti"},
		"Nitrati":                       {Key: "nitrati", Name: "Nitrati"},
		"Fier":                          {Key: "fier", Name: "Fier"},
		"Oxidabilitate":                 {Key: "oxidabilitate", Name: "Oxidabilitate"},
		"Duritate totala":               {Key: "duritate_totala", Name: "Duritate totala"},
		"Aluminiu":                      {Key: "aluminiu", Name: "Aluminiu"},
		"Clor rezidual liber":           {Key: "clor_rezidual_liber", Name: "Clor rezidual liber"},
		"Turbiditate":                   {Key: "turbiditate", Name: "Turbiditate"},
		"Cloruri":                       {Key: "cloruri", Name: "Cloruri"},
		"Calciu*":                       {Key: "calcium", Name: "Calciu"},
		"Alcalinitate*":                 {Key: "alcalinitate", Name: "Alcalinitate"},
		"Sulfat*":                       {Key: "sulfat", Name: "Sulfat"},
		"Bor*":                          {Key: "bor", Name: "Bor"},
		"Cianuri libere*":               {Key: "cianuri", Name: "Cianuri libere"},
		"Fluoruri*":                     {Key: "fluoruri", Name: "Fluoruri"},
		"Zinc*":                         {Key: "zinc", Name: "Zinc"},
		"Arsen*":                        {Key: "arsen", Name: "Arsen"},
		"Sulfuri si hidrogen sulfurat*": {Key: "sulfuri", Name: "Sulfuri si hidrogen sulfurat"},
		"Substante tensio-active*":      {Key: "subst_tensio-active", Name: "Substante tensio-active"},
		"Potasiu*":                      {Key: "potasiu", Name: "Potasiu"},
		"Fenoli*":                       {Key: "fenoli", Name: "Fenoli"},
		"Fosfati*":                      {Key: "fosfati", Name: "Fosfati"},

		// Microbiological
		"Bacteriilor coliforme":     {Key: "coliform_bacteria", Name: "Bacterii coliforme"},
		"Escherichia coli":          {Key: "escherichia_coli", Name: "Escherichia coli"},
		"Enterococi":                {Key: "enterococcus", Name: "Enterococi"},
		"Clostridium Perfringens":   {Key: "clostridium_perfringens", Name: "Clostridium Perfringens"},
		"Numar de colonii la 22° C": {Key: "colonii_22", Name: "Numar de colonii la 22° C"},
		"Numar de colonii la 36° C": {Key: "colonii_36", Name: "Numar de colonii la 36° C"},
		"Pseudomonas Aeruginosa":    {Key: "pseudomonas_aeruginosa", Name: "Pseudomonas Aeruginosa"},
	}
}
