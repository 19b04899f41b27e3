package game

import "spicysweet/internal/model"

// DefaultContent is the built-in question material used whenever no
// generated content exists for a phase. cmd/seed loads the same set
// into MongoDB so hosted deployments can swap it without a rebuild.
func DefaultContent() *model.ContentSet {
	return &model.ContentSet{
		Name: "builtin",
		Rapid: []model.ChoiceQuestion{
			{
				Prompt:       "Which chili pepper tops the Scoville scale?",
				Choices:      []string{"Habanero", "Jalapeño", "Carolina Reaper", "Cayenne"},
				CorrectIndex: 2,
			},
			{
				Prompt:       "What gives chili peppers their heat?",
				Choices:      []string{"Capsaicin", "Fructose", "Piperine", "Citric acid"},
				CorrectIndex: 0,
			},
			{
				Prompt:       "Which dessert is set on fire before serving?",
				Choices:      []string{"Tiramisu", "Baked Alaska", "Panna cotta", "Eclair"},
				CorrectIndex: 1,
			},
			{
				Prompt:       "Honey is mostly made of which two sugars?",
				Choices:      []string{"Lactose and maltose", "Fructose and glucose", "Sucrose and lactose", "Glucose and starch"},
				CorrectIndex: 1,
			},
			{
				Prompt:       "Sriracha sauce is named after a town in which country?",
				Choices:      []string{"Vietnam", "Mexico", "Thailand", "South Korea"},
				CorrectIndex: 2,
			},
		},
		Sort: []model.SortItem{
			{Prompt: "Mole poblano", CategoryA: "Spicy", CategoryB: "Sweet", Answer: model.SortAnswerBoth},
			{Prompt: "Wasabi", CategoryA: "Spicy", CategoryB: "Sweet", Answer: model.SortAnswerA},
			{Prompt: "Maple syrup", CategoryA: "Spicy", CategoryB: "Sweet", Answer: model.SortAnswerB},
			{Prompt: "Chili chocolate", CategoryA: "Spicy", CategoryB: "Sweet", Answer: model.SortAnswerBoth},
			{Prompt: "Kimchi", CategoryA: "Spicy", CategoryB: "Sweet", Answer: model.SortAnswerA},
			{Prompt: "Candied ginger", CategoryA: "Spicy", CategoryB: "Sweet", Answer: model.SortAnswerBoth},
		},
		Menus: []model.ThemeMenu{
			{
				ID:    "street-food",
				Title: "Street food",
				Questions: []model.OpenQuestion{
					{Prompt: "Which Mexican street corn dish is slathered with mayo and chili?", Answer: "elote"},
					{Prompt: "What is the Japanese octopus ball snack called?", Answer: "takoyaki"},
					{Prompt: "Which Belgian treat is sold from street carts with toppings?", Answer: "waffle"},
				},
			},
			{
				ID:    "desserts",
				Title: "Desserts",
				Questions: []model.OpenQuestion{
					{Prompt: "Which Italian dessert means 'pick me up'?", Answer: "tiramisu"},
					{Prompt: "What French custard has a caramelized sugar crust?", Answer: "creme brulee"},
					{Prompt: "Which Austrian pastry is a thin rolled apple dessert?", Answer: "strudel"},
				},
			},
			{
				ID:    "hot-sauces",
				Title: "Hot sauces",
				Questions: []model.OpenQuestion{
					{Prompt: "Which Louisiana hot sauce has been made on Avery Island since 1868?", Answer: "tabasco"},
					{Prompt: "What North African chili paste is a couscous staple?", Answer: "harissa"},
					{Prompt: "Which fermented Korean chili paste goes into bibimbap?", Answer: "gochujang"},
				},
			},
		},
		Buzzer: []model.OpenQuestion{
			{Prompt: "Which country eats the most chocolate per capita?", Answer: "switzerland"},
			{Prompt: "What spice is the most expensive in the world by weight?", Answer: "saffron"},
			{Prompt: "Which fruit is the main ingredient of guacamole?", Answer: "avocado"},
			{Prompt: "What drink is traditionally paired with very spicy food to cool the mouth?", Answer: "milk"},
		},
		Memory: []model.MemoryPair{
			{Question: "Scoville rating of a bell pepper", Answer: "zero"},
			{Question: "Main sweetener in traditional baklava", Answer: "honey"},
			{Question: "Country where vindaloo originated", Answer: "india"},
			{Question: "Bean that vanilla comes from", Answer: "orchid"},
			{Question: "Pepper used in classic buffalo sauce", Answer: "cayenne"},
		},
	}
}
