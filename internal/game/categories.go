package game

import "github.com/categoryarena/arena-backend/internal/entity"

// DefaultCategories is the built-in category pool. The examples are for bots
// and manual testing only; answer validation never consults them.
var DefaultCategories = []entity.Category{
	{
		ID:          "crypto-tokens",
		Name:        "Crypto Tokens",
		Description: "Name a cryptocurrency or token",
		Examples:    []string{"bitcoin", "ethereum", "solana"},
	},
	{
		ID:          "programming-languages",
		Name:        "Programming Languages",
		Description: "Name a programming language",
		Examples:    []string{"go", "rust", "python"},
	},
	{
		ID:          "animals",
		Name:        "Animals",
		Description: "Name an animal",
		Examples:    []string{"capuchin", "lynx", "octopus"},
	},
	{
		ID:          "countries",
		Name:        "Countries",
		Description: "Name a country",
		Examples:    []string{"japan", "brazil", "kenya"},
	},
	{
		ID:          "movies",
		Name:        "Movies",
		Description: "Name a movie title",
		Examples:    []string{"inception", "alien", "heat"},
	},
	{
		ID:          "fruits",
		Name:        "Fruits",
		Description: "Name a fruit",
		Examples:    []string{"mango", "fig", "durian"},
	},
	{
		ID:          "board-games",
		Name:        "Board Games",
		Description: "Name a board game",
		Examples:    []string{"chess", "go", "catan"},
	},
	{
		ID:          "capital-cities",
		Name:        "Capital Cities",
		Description: "Name a capital city",
		Examples:    []string{"oslo", "lima", "hanoi"},
	},
}
