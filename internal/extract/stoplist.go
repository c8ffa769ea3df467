package extract

// stoplist holds common three-letter English words that would otherwise be
// mistaken for IATA airport codes during the bare token scan. Parenthesized
// codes bypass the stoplist since the surrounding airport name already
// disambiguates them.
var stoplist = map[string]bool{
	"THE": true, "AND": true, "FOR": true, "ARE": true, "BUT": true,
	"NOT": true, "YOU": true, "ALL": true, "ANY": true, "CAN": true,
	"HAS": true, "HAD": true, "WAS": true, "HOW": true, "WHO": true,
	"WHY": true, "DAY": true, "GET": true, "NEW": true, "NOW": true,
	"ONE": true, "TWO": true, "WAY": true, "OUT": true, "TOP": true,
	"OFF": true, "OUR": true, "HER": true, "HIS": true, "ITS": true,
	"LET": true, "MAY": true, "SEE": true, "USE": true, "DID": true,
	"YES": true, "FLY": true, "JET": true, "AIR": true, "BAD": true,
	"BIG": true, "FEW": true, "LOW": true, "OWN": true, "PER": true,
	// Abbreviations that show up inside written-out airport names.
	"INT": true, "APT": true,
}
