package registry

// Case-type prefixes and entitlement suffixes follow the LA City Planning
// prefix/suffix report (https://planning.lacity.org/resources/prefix-suffix-report).

var casePrefixes = []string{
	"AA", "ADM", "APCC", "APCE", "APCH", "APCNV", "APCS", "APCSV", "APCW",
	"CHC", "CPC", "DIR", "ENV", "HPO", "PAR", "PS", "TT", "VTT", "ZA",
}

var caseSuffixes = []string{
	"1A", "2A", "AC", "ACI", "ADD1", "ADU", "AIC", "BL", "BSA",
	"CA", "CASP", "CATEX", "CC", "CC1", "CC3", "CCMP", "CDO", "CDP", "CE", "CEX",
	"CLQ", "CM", "CN", "COA", "COC", "CPIO", "CPIOA", "CPIOC", "CPIOE", "CPU",
	"CR", "CRA", "CU", "CUB", "CUC", "CUE", "CUW", "CUX", "CUZ", "CWC", "CWNC",
	"DA", "DB", "DD", "DEM", "DI", "DPS", "DRB",
	"EAF", "EIR", "ELD", "EXT", "EXT2", "EXT3", "EXT4",
	"F", "GB", "GPA", "GPAJ",
	"HCA", "HCM", "HD", "HPOZ",
	"ICO", "INT",
	"M1", "M2", "M3", "M6", "M7", "M8", "M9", "M10", "M11",
	"MA", "MAEX", "MCUP", "MEL", "MND", "MPA", "MPC", "MPR", "MSC", "MSP",
	"NC", "ND", "NR",
	"O", "OVR",
	"P", "PA", "PA1", "PA2", "PA3", "PA4", "PA5", "PA6", "PA7", "PA9", "PA10",
	"PA15", "PA16", "PA17", "PAB", "PAD", "PMEX", "PMLA", "PMW", "POD", "PP",
	"PPR", "PPSP", "PSH", "PUB",
	"QC",
	"RAO", "RDP", "RDPA", "REC1", "REC2", "REC3", "REC4", "REC5", "REV", "RFA", "RV",
	"SCEA", "SCPE", "SE", "SIP", "SL", "SLD", "SM", "SN", "SP", "SPE", "SPP",
	"SPPA", "SPPM", "SPR", "SUD", "SUP1",
	"TC", "TDR", "TOC",
	"UAIZ", "UDU",
	"VCU", "VSO", "VZC", "VZCJ",
	"WDI", "WTM",
	"YV",
	"ZAA", "ZAD", "ZAI", "ZBA", "ZC", "ZCJ", "ZV",
}

// ambiguousCodes are suffix codes known to be keyed into the prefix position
// by upstream data entry. Bulk classification ORs the prefix occurrence into
// the suffix indicator for these codes only.
var ambiguousCodes = []string{
	"EIR", "GPA", "TOC", "ZAA", "ZAD", "ZAI", "ZC", "ZV",
}
