package model

// Summary сводка дашборда, считается бекендом
type Summary struct {
	TotalMonthly float64 `json:"total_monthly"`
	Actives      int     `json:"actives"`
	AvgAmount    float64 `json:"avg_amount"`
}
