package memory

import "github.com/riskibarqy/laliga-stats/internal/domain/team"

// SeedTeams is the 2025/2026 La Liga catalog. IDs are assigned when the
// catalog is built.
func SeedTeams() []team.Team {
	return []team.Team{
		{Name: "Real Madrid", Stadium: "Santiago Bernabéu", City: "Madrid", Capacity: 83186},
		{Name: "Barcelona", Stadium: "Spotify Camp Nou", City: "Barcelona", Capacity: 55926},
		{Name: "Atlético Madrid", Stadium: "Riyadh Air Metropolitano", City: "Madrid", Capacity: 70460},
		{Name: "Athletic Club", Stadium: "San Mamés", City: "Bilbao", Capacity: 53289},
		{Name: "Valencia", Stadium: "Mestalla", City: "Valencia", Capacity: 49430},
		{Name: "Sevilla", Stadium: "Ramón Sánchez-Pizjuán", City: "Sevilla", Capacity: 43883},
		{Name: "Real Sociedad", Stadium: "Reale Arena", City: "San Sebastián", Capacity: 39313},
		{Name: "Villarreal", Stadium: "La Cerámica", City: "Villarreal", Capacity: 23500},
		{Name: "Real Betis", Stadium: "Benito Villamarín", City: "Sevilla", Capacity: 60721},
		{Name: "Osasuna", Stadium: "El Sadar", City: "Pamplona", Capacity: 23576},
		{Name: "Celta Vigo", Stadium: "Abanca Balaídos", City: "Vigo", Capacity: 24870},
		{Name: "Rayo Vallecano", Stadium: "Estadio de Vallecas", City: "Madrid", Capacity: 14708},
		{Name: "Getafe", Stadium: "Coliseum", City: "Getafe", Capacity: 16800},
		{Name: "Girona", Stadium: "Montilivi", City: "Girona", Capacity: 14624},
		{Name: "Mallorca", Stadium: "Mallorca Son Moix", City: "Palma de Mallorca", Capacity: 26020},
		{Name: "Levante", Stadium: "Ciutat de València", City: "València", Capacity: 26354},
		{Name: "Espanyol", Stadium: "RCDE Stadium", City: "Cornellà de Llobregat", Capacity: 40500},
		{Name: "Alavés", Stadium: "Mendizorroza", City: "Vitoria-Gasteiz", Capacity: 19840},
		{Name: "Elche", Stadium: "Manuel Martínez Valero", City: "Elche", Capacity: 31388},
		{Name: "Oviedo", Stadium: "Carlos Tartiere", City: "Oviedo", Capacity: 30500},
	}
}
