package registry

// zoneRank orders zone classes from most to least restrictive, per the
// zoning string guide and the Zoning Code Summary. Open space and other
// green designations share rank 0; classes the summary lists at the same
// level share a rank.
type zoneRank struct {
	code string
	rank int
}

var rankedZoneClasses = []zoneRank{
	{"OS", 0}, {"GW", 0}, {"PF", 0}, {"FRWY", 0}, {"SL", 0},
	{"A1", 1}, {"A2", 2}, {"RA", 3}, {"RE", 4},
	{"RE40", 5}, {"RE20", 6}, {"RE15", 7}, {"RE11", 8}, {"RE9", 9},
	{"RS", 10},
	{"R1", 11}, {"R1F", 11}, {"R1R", 11}, {"R1H", 11}, {"R1V", 11},
	{"RU", 12}, {"R1R3", 12}, {"R1H1", 12}, {"R1V1", 12}, {"R1V2", 12}, {"R1V3", 12},
	{"RZ2.5", 13}, {"RZ3", 14}, {"RZ4", 15}, {"RZ5", 15},
	{"RW1", 16}, {"R2", 17},
	{"RD1.5", 18}, {"RD2", 19}, {"RD3", 20}, {"RD4", 21}, {"RD5", 22}, {"RD6", 23},
	{"RMP", 24}, {"RW2", 25}, {"R3", 26}, {"RAS3", 27}, {"R4", 28}, {"RAS4", 29}, {"R5", 30},
	{"CR", 31}, {"C1", 32}, {"C1.5", 33}, {"C2", 34}, {"C4", 35}, {"C5", 36}, {"CM", 37},
	{"MR1", 38}, {"M1", 39}, {"M", 39}, {"MR2", 40}, {"M2", 41}, {"M3", 42},
	{"P", 43}, {"R1P", 43}, {"R2P", 43}, {"R3P", 43}, {"R4P", 43}, {"R5P", 43},
	{"RAP", 43}, {"RSP", 43}, {"A2P", 43},
	{"PB", 44}, {"HJ", 44}, {"HR", 44}, {"NI", 44},
}

// Specific-plan zones are valid zone classes without a restrictiveness rank.
var unrankedZoneClasses = []string{
	"ADP", "CCS", "CW", "LASED", "USC", "WC",
}

var heightDistricts = []string{
	"1", "1L", "1VL", "1XL", "1SS", "2", "3", "4",
}

// invalidHeightDistricts match the height-district shape but are not
// districts. They stay invalid even if a config extension lists them.
var invalidHeightDistricts = []string{
	"0", "5",
	"2L", "2VL", "2XL", "2SS",
	"3L", "3VL", "3XL", "3SS",
	"4L", "4VL", "4XL", "4SS",
}

// Supplemental use districts and overlays.
var overlays = []string{
	"CA", "CDO", "CPIO", "CUGU", "FH", "G", "HCR", "HPOZ", "HS", "K",
	"MU", "NSO", "O", "POD", "RFA", "RIO", "RPD", "S", "SN",
}

var specificPlans = []string{
	"ADP", "CASP", "CCS", "CEC", "CW", "HCSP", "LASED", "LAX",
	"MWSP", "PV", "PVSP", "USC", "UV", "WC",
}
