package categorize

// keywordRule maps a category name to merchant/keyword tokens. Income-only
// rules never fire on expenses and vice versa; unflagged rules apply to
// both signs.
type keywordRule struct {
	category    string
	keywords    []string
	incomeOnly  bool
	expenseOnly bool
}

// Built-in keyword table covering common South African merchants. Evaluated
// after user rules, in table order; first keyword hit wins.
var keywordRules = []keywordRule{
	{
		category: "Groceries",
		keywords: []string{
			"CHECKERS", "PICK N PAY", "PICK-N-PAY", "PNP", "SHOPRITE", "WOOLWORTHS",
			"SPAR", "FOOD LOVERS", "FOODLOVERS", "MAKRO", "FRUIT & VEG", "FRUIT AND VEG",
			"BOXER", "USAVE", "OK FOODS", "CAMBRIDGE FOOD", "MASSMART",
		},
	},
	{
		category: "Transport",
		keywords: []string{
			"UBER TRIP", "BOLT RIDE", "GAUTRAIN", "MBT", "METRORAIL", "MYCITI",
			"GOLDEN ARROW", "INTERCAPE", "GREYHOUND", "TRANSLUX", "E-TOLL", "ETOLL",
			"SANRAL", "PARKING", "AVIS", "HERTZ", "EUROPCAR", "BUDGET CAR",
		},
	},
	{
		category: "Fuel",
		keywords: []string{
			"ENGEN", "CALTEX", "SHELL", "SASOL", "BP ", "TOTAL GARAGE", "TOTALENERGIES",
			"PETROL", "DIESEL", "SERVICE STATION", "FUEL", "ASTRON ENERGY",
		},
	},
	{
		category: "Utilities",
		keywords: []string{
			"ESKOM", "CITY POWER", "CITY OF JOHANNESBURG", "CITY OF CAPE TOWN",
			"CITY OF TSHWANE", "ELECTRICITY", "PREPAID ELEC", "WATER BILL",
			"MUNICIPALITY", "TELKOM", "FIBRE", "VODACOM", "MTN", "CELL C",
			"RAIN MOBILE", "AFRIHOST", "WEBAFRICA", "COOL IDEAS", "VUMATEL",
		},
	},
	{
		category: "Entertainment",
		keywords: []string{
			"NETFLIX", "SHOWMAX", "DSTV", "MULTICHOICE", "STER KINEKOR", "STERKINEKOR",
			"NU METRO", "CINEMA", "COMPUTICKET", "WEBTICKETS", "TICKETPRO",
			"DISNEY+", "DISNEY PLUS", "AMAZON PRIME", "YOUTUBE", "APPLE TV",
		},
	},
	{
		category: "Dining Out",
		keywords: []string{
			"UBER EATS", "UBEREATS", "MR DELIVERY", "MR D", "BOLT FOOD",
			"NANDOS", "NANDO'S", "KFC", "MCDONALDS", "MCDONALD'S", "BURGER KING",
			"WIMPY", "STEERS", "SPUR", "OCEAN BASKET", "FISHAWAYS", "DEBONAIRS",
			"ROMANS PIZZA", "DOMINOS", "PIZZA HUT", "TASHAS", "VIDA E CAFFE",
			"MUGG & BEAN", "MUGG AND BEAN", "SEATTLE", "STARBUCKS", "BOOTLEGGER",
			"RESTAURANT", "CAFE", "COFFEE", "ROCOMAMAS", "HUSSAR GRILL",
		},
	},
	{
		category: "Healthcare",
		keywords: []string{
			"DISCHEM", "DIS-CHEM", "CLICKS PHARM", "PHARMACY", "DOCTOR", "DR ",
			"MEDICAL", "PATHCARE", "LANCET", "AMPATH", "NETCARE", "MEDICLINIC",
			"LIFE HOSPITAL", "DENTIST", "OPTOMETRIST", "SPEC-SAVERS", "SPECSAVERS",
		},
	},
	{
		category: "Shopping",
		keywords: []string{
			"TAKEALOT", "AMAZON.", "GAME STORES", "INCREDIBLE CONNECTION",
			"INCREDIBLE CONNECT", "BASH", "SUPERBALIST", "ZANDO", "MR PRICE",
			"MRPRICE", "EDGARS", "JET STORES", "FOSCHINI", "TRUWORTHS", "ACKERMANS",
			"PEP STORES", "COTTON ON", "H&M", "ZARA", "WOOLWORTHS CLOTH",
			"BUILDERS WAREHOUSE", "BUILDERS EXPRESS", "CASHBUILD", "LEROY MERLIN",
			"CTM", "TILE AFRICA", "HIRSCHS", "TAFELBERG", "CNA", "EXCLUSIVE BOOKS",
		},
	},
	{
		category: "Insurance",
		keywords: []string{
			"OLD MUTUAL", "SANLAM", "DISCOVERY INSURE", "MOMENTUM", "OUTSURANCE",
			"SANTAM", "HOLLARD", "BUDGET INSURANCE", "FIRST FOR WOMEN", "DIALDIRECT",
			"MIWAY", "KING PRICE", "AUTO & GENERAL", "TELESURE", "INSURANCE",
		},
	},
	{
		category: "Bank Fees",
		keywords: []string{
			"MONTHLY FEE", "SERVICE FEE", "CASH HANDLING", "ATM FEE", "LEDGER FEE",
			"ADMIN FEE", "ACCOUNT FEE", "MAINTENANCE FEE", "CARD FEE", "SMS NOTIFICATION",
			"NOTIFICATION FEE", "STOP ORDER FEE", "DEBIT ORDER FEE", "UNPAID FEE",
			"DEBIT CARD REPL", "CHEQUE BOOK", "STATEMENT FEE",
		},
	},
	{
		category: "Subscriptions",
		keywords: []string{
			"SPOTIFY", "APPLE.COM", "APPLE MUSIC", "GOOGLE PLAY", "MICROSOFT",
			"ADOBE", "CANVA", "DROPBOX", "ICLOUD", "OPENAI", "CHATGPT",
			"LINKEDIN PREMIUM", "AUDIBLE", "KINDLE",
		},
	},
	{
		category: "Medical Aid",
		keywords: []string{
			"DISCOVERY HEALTH", "BONITAS", "GEMS", "FEDHEALTH", "MEDIHELP",
			"BESTMED", "MOMENTUM HEALTH", "MEDSHIELD", "PROFMED", "POLMED",
			"MEDICAL SCHEME", "MED AID", "MEDICAL AID",
		},
	},
	{
		category: "Pension",
		keywords: []string{
			"PENSION", "RETIREMENT", "PROVIDENT FUND", "RA CONTRIB", "RETIREMENT ANNUITY",
			"SANLAM RA", "OLD MUTUAL RA", "ALLAN GRAY", "CORONATION", "10X INVEST",
		},
	},
	{
		category: "Domestic Help",
		keywords: []string{
			"DOMESTIC", "GARDENER", "SWEEPSA", "CLEANING SERVICE", "MAID",
		},
	},
	{
		category: "Rates & Taxes",
		keywords: []string{
			"RATES AND TAXES", "RATES & TAXES", "MUNICIPAL RATES", "PROPERTY RATES",
			"LEVIES", "BODY CORPORATE", "HOA", "HOME OWNERS",
		},
	},
	{
		category: "Gambling/Lotto",
		keywords: []string{
			"LOTTO", "ITHUBA", "HOLLYWOODBETS", "SUPABETS", "BETWAY", "SUNBET",
			"SPORTINGBET", "LOTTOSTAR", "PLAYABETS", "GBETS", "CASINO",
		},
	},

	{
		category:   "Salary",
		keywords:   []string{"SALARY", "WAGES", "NETT PAY", "NET PAY", "PAYROLL", "REMUNERATION"},
		incomeOnly: true,
	},
	{
		category:   "Interest",
		keywords:   []string{"INTEREST CREDIT", "INT CREDIT", "INTEREST EARNED", "CREDIT INTEREST"},
		incomeOnly: true,
	},
	{
		category:   "Refund",
		keywords:   []string{"REFUND", "REVERSAL", "CASHBACK", "EBUCKS", "UCOUNT", "REWARDS"},
		incomeOnly: true,
	},
	{
		category:   "Investment",
		keywords:   []string{"DIVIDEND", "UNIT TRUST", "ETF", "EASY EQUITIES", "EASYEQUITIES"},
		incomeOnly: true,
	},
}
