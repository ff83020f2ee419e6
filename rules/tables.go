// Copyright 2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package rules

// categoryKey indexes the exact benchmark lookup table
type categoryKey struct {
	Category    string
	Subcategory string
}

// benchmarkTable maps (category, subcategory) pairs to their reference index.
// Entries follow SEBI scheme categorization; sector subcategories map to the
// matching NSE sector index.
var benchmarkTable = map[categoryKey]string{
	// Equity
	{"Equity", "Large Cap"}:         "NIFTY 50",
	{"Equity", "Large & Mid Cap"}:   "NIFTY LARGECAP 100",
	{"Equity", "Multi Cap"}:         "NIFTY 500",
	{"Equity", "Flexi Cap"}:         "NIFTY 500",
	{"Equity", "Mid Cap"}:           "NIFTY MIDCAP 100",
	{"Equity", "Small Cap"}:         "NIFTY SMALLCAP 100",
	{"Equity", "Value"}:             "NIFTY VALUE 20",
	{"Equity", "Dividend Yield"}:    "NIFTY DIVIDEND OPPORTUNITIES 50",
	{"Equity", "ELSS"}:              "NIFTY 500",
	{"Equity", "Sectoral/Thematic"}: "NIFTY 500",
	{"Equity", "Index"}:             "NIFTY 50",
	{"Equity", "Focused"}:           "NIFTY 50",
	{"Equity", "Contra"}:            "NIFTY 500",

	// Sector equity
	{"Equity", "Banking"}:            "NIFTY BANK",
	{"Equity", "IT"}:                 "NIFTY IT",
	{"Equity", "Pharma"}:             "NIFTY PHARMA",
	{"Equity", "Infrastructure"}:     "NIFTY INFRASTRUCTURE",
	{"Equity", "FMCG"}:               "NIFTY FMCG",
	{"Equity", "Healthcare"}:         "NIFTY HEALTHCARE",
	{"Equity", "Financial Services"}: "NIFTY FINANCIAL SERVICES",

	// Debt duration buckets
	{"Debt", "Liquid"}:               "NIFTY AAA CORPORATE BOND",
	{"Debt", "Ultra Short Duration"}: "NIFTY AAA CORPORATE BOND",
	{"Debt", "Low Duration"}:         "NIFTY AAA CORPORATE BOND",
	{"Debt", "Short Duration"}:       "NIFTY AAA CORPORATE BOND",
	{"Debt", "Medium Duration"}:      "NIFTY COMPOSITE DEBT",
	{"Debt", "Long Duration"}:        "NIFTY 10 YR BENCHMARK G-SEC",
	{"Debt", "Gilt"}:                 "NIFTY 10 YR BENCHMARK G-SEC",
	{"Debt", "Corporate Bond"}:       "NIFTY AAA CORPORATE BOND",
	{"Debt", "Banking & PSU"}:        "NIFTY AAA CORPORATE BOND",
	{"Debt", "Credit Risk"}:          "NIFTY COMPOSITE DEBT",

	// Hybrid
	{"Hybrid", "Aggressive Hybrid"}:        "NIFTY 50",
	{"Hybrid", "Conservative Hybrid"}:      "NIFTY AAA CORPORATE BOND",
	{"Hybrid", "Balanced Hybrid"}:          "NIFTY 50",
	{"Hybrid", "Dynamic Asset Allocation"}: "NIFTY 50",
	{"Hybrid", "Equity Savings"}:           "NIFTY 50",
	{"Hybrid", "Arbitrage"}:                "NIFTY 50",

	// International
	{"Equity", "International"}: "NASDAQ 100",
	{"Equity", "Global"}:        "S&P 500",
}

// keywordRule maps a fund-name substring to a sector benchmark. Rules are
// scanned in order and the first match wins, so the slice order is the
// priority list. Note "it" matches as a plain substring; exact table entries
// shadow the common cases before the keyword scan ever runs.
type keywordRule struct {
	Keywords  []string
	Benchmark string
}

var keywordRules = []keywordRule{
	{[]string{"banking", "bank"}, "NIFTY BANK"},
	{[]string{"it", "technology"}, "NIFTY IT"},
	{[]string{"pharma"}, "NIFTY PHARMA"},
	{[]string{"infrastructure", "infra"}, "NIFTY INFRASTRUCTURE"},
	{[]string{"fmcg", "consumer"}, "NIFTY FMCG"},
	{[]string{"midcap"}, "NIFTY MIDCAP 100"},
	{[]string{"smallcap", "small cap"}, "NIFTY SMALLCAP 100"},
	{[]string{"largecap", "large cap"}, "NIFTY 50"},
}

// defaultBenchmarks is the per-category fallback when neither the exact table
// nor the keyword scan produced a match.
var defaultBenchmarks = map[string]string{
	"Equity":            "NIFTY 500",
	"Debt":              "NIFTY COMPOSITE DEBT",
	"Hybrid":            "NIFTY 50",
	"Solution Oriented": "NIFTY 500",
	"Other":             "NIFTY 50",
}

// FallbackBenchmark is returned when even the category is unknown.
const FallbackBenchmark = "NIFTY 50"

// amcTotals holds total assets under management per AMC in crores. The values
// are placeholder estimation heuristics, not audited figures.
var amcTotals = map[string]float64{
	"SBI Mutual Fund":                   725000,
	"HDFC Mutual Fund":                  520000,
	"ICICI Prudential Mutual Fund":      485000,
	"Aditya Birla Sun Life Mutual Fund": 345000,
	"Kotak Mutual Fund":                 315000,
	"Axis Mutual Fund":                  295000,
	"DSP Mutual Fund":                   185000,
	"UTI Mutual Fund":                   155000,
	"Nippon India Mutual Fund":          145000,
	"Tata Mutual Fund":                  95000,
	"IDFC Mutual Fund":                  85000,
	"Mirae Asset Mutual Fund":           85000,
	"L&T Mutual Fund":                   75000,
	"Franklin Templeton Mutual Fund":    65000,
	"Invesco Mutual Fund":               55000,
	"Canara Robeco Mutual Fund":         45000,
	"Motilal Oswal Mutual Fund":         45000,
	"HSBC Mutual Fund":                  40000,
	"Sundaram Mutual Fund":              35000,
	"Baroda Mutual Fund":                30000,
	"Edelweiss Mutual Fund":             25000,
	"PGIM India Mutual Fund":            20000,
	"Union Mutual Fund":                 20000,
	"Mahindra Mutual Fund":              15000,
	"Quantum Mutual Fund":               5000,
}

// defaultAmcTotal is assumed for AMCs missing from the table.
const defaultAmcTotal = 10000

// Instrument is an entry in the synthetic holdings universe.
type Instrument struct {
	Name   string
	Sector string
}

// equityUniverse lists the stocks used to fabricate equity portfolios. The
// slice is ordered: [0:20] large caps, [20:36] mid caps, [36:] small caps.
var equityUniverse = []Instrument{
	// Large cap
	{"Reliance Industries", "Energy"}, {"HDFC Bank", "Banking"},
	{"Infosys", "IT"}, {"ICICI Bank", "Banking"},
	{"TCS", "IT"}, {"Bharti Airtel", "Telecom"},
	{"ITC", "FMCG"}, {"Kotak Bank", "Banking"},
	{"L&T", "Engineering"}, {"HUL", "FMCG"},
	{"Axis Bank", "Banking"}, {"SBI", "Banking"},
	{"Maruti Suzuki", "Auto"}, {"Asian Paints", "Consumer"},
	{"Wipro", "IT"}, {"HCL Tech", "IT"},
	{"Bajaj Finance", "Finance"}, {"Titan", "Consumer"},
	{"Nestle India", "FMCG"}, {"Adani Ports", "Infrastructure"},

	// Mid cap
	{"Voltas", "Consumer Durables"}, {"Tata Power", "Power"},
	{"Godrej Properties", "Real Estate"}, {"Indian Hotels", "Hotels"},
	{"Jubilant FoodWorks", "FMCG"}, {"Page Industries", "Textiles"},
	{"Apollo Hospitals", "Healthcare"}, {"Crompton Greaves", "Consumer Durables"},
	{"Escorts", "Auto"}, {"Petronet LNG", "Energy"},
	{"Indraprastha Gas", "Energy"}, {"MRF", "Auto"},
	{"Ashok Leyland", "Auto"}, {"Balkrishna Industries", "Auto"},
	{"Bata India", "Consumer"}, {"Berger Paints", "Consumer"},

	// Small cap
	{"Navin Fluorine", "Chemicals"}, {"Alkyl Amines", "Chemicals"},
	{"Caplin Point", "Pharma"}, {"Sudarshan Chemical", "Chemicals"},
	{"Galaxy Surfactants", "Chemicals"}, {"Garware Technical", "Textiles"},
	{"KPIT Technologies", "IT"}, {"Carborundum Universal", "Industrial"},
	{"Suprajit Engineering", "Auto Ancillary"}, {"Vinati Organics", "Chemicals"},
	{"Aarti Industries", "Chemicals"}, {"Deepak Nitrite", "Chemicals"},
	{"Fine Organic", "Chemicals"}, {"Persistent Systems", "IT"},
}

// debtUniverse lists the instruments used to fabricate debt portfolios.
var debtUniverse = []Instrument{
	{"Government Securities", "Government"},
	{"State Development Loans", "Government"},
	{"AAA Corporate Bonds", "Corporate"},
	{"AA+ Corporate Bonds", "Corporate"},
	{"AA Corporate Bonds", "Corporate"},
	{"Commercial Papers", "Money Market"},
	{"Treasury Bills", "Government"},
	{"Bank Fixed Deposits", "Banking"},
	{"PSU Bonds", "PSU"},
	{"NBFC Bonds", "NBFC"},
}

// IndexTickers maps benchmark index names to the ticker symbols used by the
// market-data API. Every benchmark the resolver can return appears here so
// assigned benchmarks always have a fetchable series.
var IndexTickers = map[string]string{
	// Main indices
	"NIFTY 50":      "^NSEI",
	"SENSEX":        "^BSESN",
	"NIFTY NEXT 50": "^NIFTYJR",
	"NIFTY 100":     "^CNX100",
	"NIFTY 200":     "^CNX200",
	"NIFTY 500":     "^CNX500",
	"BSE 100":       "BSE-100.BO",
	"BSE 200":       "BSE-200.BO",
	"BSE 500":       "BSE-500.BO",

	// Sector indices
	"NIFTY BANK":               "^NSEBANK",
	"NIFTY IT":                 "^CNXIT",
	"NIFTY PHARMA":             "^CNXPHARMA",
	"NIFTY AUTO":               "^CNXAUTO",
	"NIFTY FMCG":               "^CNXFMCG",
	"NIFTY METAL":              "^CNXMETAL",
	"NIFTY REALTY":             "^CNXREALTY",
	"NIFTY ENERGY":             "^CNXENERGY",
	"NIFTY INFRA":              "^CNXINFRA",
	"NIFTY HEALTHCARE":         "^CNXHEALTH",
	"NIFTY MEDIA":              "^CNXMEDIA",
	"NIFTY FINANCIAL SERVICES": "^CNXFINANCE",
	"NIFTY COMMODITIES":        "^CNXCOMMODITY",
	"NIFTY CONSUMER DURABLES":  "^CNXCONSUMDUR",
	"NIFTY OIL & GAS":          "^CNXOILGAS",
	"NIFTY PSU BANK":           "^CNXPSUBANK",
	"NIFTY PRIVATE BANK":       "^CNXPVTBANK",
	"NIFTY SERVICES":           "^CNXSERVICE",

	// Cap-based indices
	"NIFTY MIDCAP 50":       "^NSEMDCP50",
	"NIFTY MIDCAP 100":      "^NSEMDCP100",
	"NIFTY MIDCAP 150":      "^NSEMDCP150",
	"NIFTY SMALLCAP 50":     "^NSESMCP50",
	"NIFTY SMALLCAP 100":    "^NSESMCP100",
	"NIFTY SMALLCAP 250":    "^NSESMCP250",
	"NIFTY LARGECAP 100":    "^CNXLARGECAP",
	"NIFTY MIDSMALLCAP 400": "^CNXMIDSMALL",

	// Strategy indices
	"NIFTY ALPHA 50":                  "^CNXALPHA50",
	"NIFTY HIGH BETA 50":              "^CNXHIGHBETA",
	"NIFTY LOW VOLATILITY 50":         "^CNXLOWVOL50",
	"NIFTY DIVIDEND OPPORTUNITIES 50": "^CNXDIVIDEND",
	"NIFTY GROWTH SECTORS 15":         "^CNXGROWTH",
	"NIFTY VALUE 20":                  "^CNXVALUE20",
	"NIFTY QUALITY 30":                "^CNXQUALITY30",

	// Thematic indices
	"NIFTY CPSE":           "^CNXCPSE",
	"NIFTY INFRASTRUCTURE": "^CNXINFRA",
	"NIFTY MNC":            "^CNXMNC",
	"NIFTY PSE":            "^CNXPSE",
	"NIFTY SME EMERGE":     "^CNXSMEMERGE",

	// Debt indices
	"NIFTY 10 YR BENCHMARK G-SEC": "^INBMKGSP10Y",
	"NIFTY 5 YR BENCHMARK G-SEC":  "^INBMKGSP5Y",
	"NIFTY AAA CORPORATE BOND":    "^INBMKAAA",
	"NIFTY COMPOSITE DEBT":        "^INBMKCOMPDEBT",

	// International
	"NASDAQ 100":            "^NDX",
	"S&P 500":               "^GSPC",
	"MSCI EMERGING MARKETS": "EEM",
	"HANG SENG":             "^HSI",
}
