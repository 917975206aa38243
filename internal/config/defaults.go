package config

// DefaultConfig returns the demo form: heroes, villains, droids and planets
func DefaultConfig() *Config {
	no := false
	return &Config{
		Version: 1,
		Dropdown: DropdownSettings{
			OpenTrigger:  "click",
			CloseTrigger: "hover",
			CloseDelayMS: 500,
		},
		Fields: []Field{
			{
				Name:  "heroes",
				Title: "Heroes",
				Options: []OptionConfig{
					{Text: "Luke Skywalker", Value: "luke"},
					{Text: "Han Solo", Value: "han"},
					{Text: "Princess Leia", Value: "leia"},
					{Text: "Chewbacca", Value: "chewy"},
					{Text: "Obiwan Kenobi", Value: "obiwan"},
					{Text: "Yoda", Value: "yoda"},
				},
				Value: []string{},
			},
			{
				Name:           "villains",
				Title:          "Villains",
				Prompt:         "Pick a villain",
				AllLabel:       "All villains",
				AllIcon:        "☠",
				EmptyValueMode: "all",
				Options: []OptionConfig{
					{Text: "Darth Vader", Value: "darth"},
					{Text: "Emperor Palpatine", Value: "emperor"},
					{Text: "Governor Tarkin", Value: "tarkin"},
					{Text: "Jabba the Hut", Value: "jabba"},
					{Text: "Boba Fett", Value: "boba"},
				},
				Value: []string{},
			},
			{
				Name:          "droids",
				Title:         "Droids",
				ShowAllOption: &no,
				Options: []OptionConfig{
					{Text: "R2D2", Value: "r2d2", Icon: "◎"},
					{Text: "C3PO", Value: "c3po", Icon: "◉"},
					{Text: "BB-8", Value: "bb8", Icon: "◍"},
					{Text: "K2SO", Value: "k2so", Icon: "◌"},
				},
				Value: []string{},
			},
			{
				Name:  "planets",
				Title: "Planets",
				LabelExpr: `allSelected ? "Congrats! You selected All Planets!" :
count == 0 ? "No planets?  What's your problem?" :
count == 1 ? "That is a truly pathetic number of planets!" :
count == 2 ? "Come on! You can select more than that!" :
"Select some more planets to get a free toaster."`,
				Options: []OptionConfig{
					{Text: "Tatooine", Value: "tatooine"},
					{Text: "Hoth", Value: "hoth"},
					{Text: "Coruscant", Value: "coruscant"},
					{Text: "Jedda", Value: "jedda"},
				},
				Value: []string{},
			},
		},
	}
}
