package fixtures

import sw "github.com/spigell/stemwijzer/internal/stemwijzer"

var defaultQuestions = []sw.Question{
	{ID: 1, Category: sw.CategoryClimate, Subcategory: "Energie transitie",
		Text: "Nederland moet meer doen om klimaatverandering tegen te gaan, ook als dit hogere kosten betekent."},
	{ID: 2, Category: sw.CategoryClimate, Subcategory: "Industrie",
		Text: "Er moet een CO2-belasting komen voor vervuilende bedrijven."},
	{ID: 3, Category: sw.CategoryImmigration, Subcategory: "Algemeen",
		Text: "De immigratie naar Nederland moet worden beperkt."},
	{ID: 4, Category: sw.CategoryImmigration, Subcategory: "Arbeidsmigratie",
		Text: "Arbeidsmigranten van buiten de EU moeten makkelijker naar Nederland kunnen komen."},
	{ID: 5, Category: sw.CategoryHealthcare, Subcategory: "Kosten",
		Text: "De zorgkosten moeten worden verlaagd, ook als dit betekent dat sommige behandelingen niet meer worden vergoed."},
	{ID: 6, Category: sw.CategoryHealthcare, Subcategory: "Toegang",
		Text: "De wachtlijsten in de GGZ moeten worden aangepakt, ook als dit extra belastinggeld kost."},
	{ID: 7, Category: sw.CategoryHousing, Subcategory: "Nieuwbouw",
		Text: "Er moeten meer betaalbare woningen worden gebouwd, ook als dit betekent dat er minder ruimte is voor natuur."},
	{ID: 8, Category: sw.CategoryHousing, Subcategory: "Regulering",
		Text: "Huisjesmelkers en beleggers moeten worden aangepakt om de woningmarkt eerlijker te maken."},
	{ID: 9, Category: sw.CategoryEconomy, Subcategory: "Lonen",
		Text: "Het minimumloon moet worden verhoogd."},
	{ID: 10, Category: sw.CategoryEconomy, Subcategory: "Belastingen",
		Text: "De belastingen voor bedrijven moeten worden verlaagd om de economie te stimuleren."},
	{ID: 11, Category: sw.CategoryEconomy, Subcategory: "Pensioenen",
		Text: "De AOW-leeftijd moet niet verder worden verhoogd."},
	{ID: 12, Category: sw.CategoryEurope, Subcategory: "Samenwerking",
		Text: "Nederland moet meer samenwerken met andere Europese landen."},
	{ID: 13, Category: sw.CategoryEurope, Subcategory: "Soevereiniteit",
		Text: "Nederland moet meer zeggenschap hebben over eigen beleid, ook als dit tegen EU-regels ingaat."},
	{ID: 14, Category: sw.CategoryEducation, Subcategory: "Financiering",
		Text: "Er moet meer geld naar het onderwijs, ook als dit betekent dat andere uitgaven moeten worden verlaagd."},
	{ID: 15, Category: sw.CategoryEducation, Subcategory: "Studiefinanciering",
		Text: "Studenten moeten weer een basisbeurs krijgen."},
	{ID: 16, Category: sw.CategoryNature, Subcategory: "Biodiversiteit",
		Text: "Nederland moet meer doen om de biodiversiteit te beschermen."},
	{ID: 17, Category: sw.CategoryNature, Subcategory: "Landbouw",
		Text: "De intensieve veehouderij moet worden ingeperkt om stikstofuitstoot te verminderen."},
	{ID: 18, Category: sw.CategorySecurity, Subcategory: "Defensie",
		Text: "Er moet meer worden geïnvesteerd in defensie en veiligheid."},
	{ID: 19, Category: sw.CategorySecurity, Subcategory: "Politie",
		Text: "De politie moet meer bevoegdheden krijgen om criminaliteit te bestrijden."},
	{ID: 20, Category: sw.CategorySecurity, Subcategory: "Drugs",
		Text: "Softdrugs zoals cannabis moeten volledig worden gelegaliseerd."},
}
