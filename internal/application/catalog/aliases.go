package catalog

// aliasEntry maps a parent-company name fragment to the consumer-facing brand
// names that external catalogs report for its products. Aliases only fill
// gaps: the index never lets them overwrite an authoritative brand entry.
type aliasEntry struct {
	companyFragment string
	brandNames      []string
}

// brandAliases covers the major German supermarket shelves, where the brand
// on the packaging rarely matches the owning company's registered name.
var brandAliases = []aliasEntry{
	{"ferrero", []string{"nutella", "kinder", "ferrero rocher", "duplo", "hanuta", "yogurette", "tic tac", "raffaello"}},
	{"nestle", []string{"nescafe", "nespresso", "maggi", "kitkat", "lion", "smarties", "after eight", "nesquik", "vittel", "perrier", "san pellegrino"}},
	{"unilever", []string{"dove", "axe", "rexona", "knorr", "hellmanns", "lipton", "ben & jerrys", "magnum", "langnese"}},
	{"procter & gamble", []string{"pampers", "ariel", "tide", "gillette", "oral-b", "always", "pantene", "head & shoulders", "fairy", "braun"}},
	{"henkel", []string{"persil", "pril", "pritt", "schwarzkopf", "fa", "schauma", "syoss", "got2b", "theramed"}},
	{"the coca-cola company", []string{"coca-cola", "coca cola", "coke", "fanta", "sprite", "mezzo mix", "powerade", "fuze tea", "honest"}},
	{"pepsico", []string{"pepsi", "lays", "doritos", "cheetos", "tropicana", "quaker", "7up", "mirinda", "lipton ice tea"}},
	{"mars", []string{"snickers", "twix", "milky way", "bounty", "m&ms", "maltesers", "whiskas", "pedigree", "sheba", "uncle bens"}},
	{"mondelez", []string{"milka", "oreo", "toblerone", "philadelphia", "tuc", "lu", "cadbury", "ritz"}},
	{"dr. oetker", []string{"dr oetker", "ristorante", "pudding", "backin"}},
	{"essity", []string{"zewa", "tempo", "tork", "tena", "libresse", "libero", "leukoplast"}},
	{"reckitt", []string{"finish", "vanish", "calgon", "durex", "scholl", "dettol", "sagrotan", "cillit bang", "woolite"}},
	{"beiersdorf", []string{"nivea", "eucerin", "labello", "hansaplast", "la prairie", "tesa"}},
	{"edeka", []string{"edeka", "gut & günstig", "elkos", "rio doro"}},
	{"rewe", []string{"rewe", "ja!", "rewe beste wahl", "rewe bio", "rewe feine welt"}},
	{"aldi", []string{"aldi", "milsani", "moser roth", "choceur", "lacura", "cien", "fair", "tandil"}},
	{"lidl", []string{"lidl", "milbona", "cien", "w5", "freeway", "solevita", "vitafit"}},
	{"dm", []string{"dm", "balea", "alverde", "denkmit", "dontodent", "mivolis", "babylove", "ebelin", "sundance"}},
}
