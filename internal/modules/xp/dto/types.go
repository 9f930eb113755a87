package dto

type AddXPInput struct {
	Category string `json:"category"`
	Amount   int    `json:"amount"`
}

type CategoryOutput struct {
	Category    string  `json:"category"`
	Current     int     `json:"current"`
	Level       int     `json:"level"`
	NextLevelAt int     `json:"nextLevelAt"`
	Progress    float64 `json:"progress"`
	Formatted   string  `json:"formatted"`
}

type LedgerOutput struct {
	Categories     []CategoryOutput `json:"categories"`
	TotalXP        int              `json:"totalXP"`
	TotalFormatted string           `json:"totalFormatted"`
}

func (o LedgerOutput) Category(name string) (CategoryOutput, bool) {
	for _, c := range o.Categories {
		if c.Category == name {
			return c, true
		}
	}
	return CategoryOutput{}, false
}
