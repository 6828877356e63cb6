package fixtures

import sw "github.com/spigell/stemwijzer/internal/stemwijzer"

// stances maps the n-th value to question id n+1.
func stances(values ...int) map[int]sw.AnswerOption {
	m := make(map[int]sw.AnswerOption, len(values))
	for i, v := range values {
		m[i+1] = sw.AnswerOption(v)
	}
	return m
}

// Stances on questions 1..20, in question order.
var defaultParties = []sw.PartyPosition{
	{Name: "VVD", Color: "#014A7F",
		Stances: stances(-1, 1, 2, 1, 1, 0, 2, -1, -1, 2, -2, 1, -1, 0, -1, 1, -1, 2, 2, 1)},
	{Name: "D66", Color: "#00A1CD",
		Stances: stances(2, 2, -1, 1, -1, 1, -1, 1, 1, -1, -1, 2, -2, 2, 2, 2, 1, 1, 0, 2)},
	{Name: "PVV", Color: "#0079D3",
		Stances: stances(-2, -2, 2, -2, -1, 1, 2, 1, 1, 1, 2, -2, 2, 0, -1, -1, -2, 1, 2, -2)},
	{Name: "CDA", Color: "#009639",
		Stances: stances(1, 1, 1, -1, 0, 1, 1, 1, 1, 0, -1, 1, -1, 1, 1, 1, -1, 2, 1, -2)},
	{Name: "SP", Color: "#E30613",
		Stances: stances(1, 2, -1, -1, -2, 2, 1, 2, 2, -2, 2, -1, 0, 2, 2, 1, 1, -1, 0, 0)},
	{Name: "PvdA", Color: "#C8102E",
		Stances: stances(2, 2, -1, 0, -2, 2, 1, 2, 2, -2, 1, 1, -1, 2, 2, 2, 1, 1, 0, 1)},
	{Name: "GroenLinks", Color: "#00A651",
		Stances: stances(2, 2, -2, 1, -2, 2, -1, 2, 2, -2, 1, 2, -2, 2, 2, 2, 2, -1, -1, 2)},
	{Name: "Partij voor de Dieren", Color: "#8BC34A",
		Stances: stances(2, 2, -1, 0, -2, 2, -2, 2, 2, -2, 1, 0, -1, 2, 2, 2, 2, -2, -1, 1)},
	{Name: "ChristenUnie", Color: "#00A1CD",
		Stances: stances(1, 1, 0, -1, -1, 2, 1, 2, 1, -1, 0, 1, -1, 1, 1, 2, 1, 1, 1, -2)},
	{Name: "SGP", Color: "#003E7E",
		Stances: stances(0, -1, 1, -1, 0, 1, 1, 1, 0, 1, -1, -1, 1, 1, 0, 1, -1, 2, 2, -2)},
	{Name: "DENK", Color: "#FFD700",
		Stances: stances(1, 1, -2, 1, -2, 2, 1, 2, 2, -2, 1, 1, -1, 2, 2, 1, 0, -1, -2, -1)},
	{Name: "FVD", Color: "#000000",
		Stances: stances(-2, -2, 2, -2, 1, 0, 2, 0, -1, 2, 1, -2, 2, 0, 0, -1, -2, 1, 1, 0)},
	{Name: "JA21", Color: "#FF6B00",
		Stances: stances(-1, -1, 2, -1, 1, 0, 2, 0, -1, 2, 0, -1, 1, 0, -1, 0, -2, 2, 2, -1)},
	{Name: "Volt", Color: "#502379",
		Stances: stances(2, 2, -1, 2, -1, 1, 1, 1, 1, -1, -1, 2, -2, 2, 2, 2, 1, 1, 0, 2)},
	{Name: "BBB", Color: "#94C11F",
		Stances: stances(-1, -1, 1, -1, 0, 1, 1, 1, 1, 1, 1, -1, 1, 1, 1, 0, -2, 1, 1, -1)},
	{Name: "NSC", Color: "#1E3A8A",
		Stances: stances(1, 0, 1, -1, -1, 1, 1, 2, 1, 0, 1, 1, -1, 1, 1, 1, 0, 1, 1, -1)},
}
