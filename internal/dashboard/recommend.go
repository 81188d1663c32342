package dashboard

import "tradevision/internal/domain"

// Recommendations returns the static advisory cards. They are fixed content
// and are not derived from fetched data.
func Recommendations() []domain.Recommendation {
	return []domain.Recommendation{
		{Signal: domain.SignalBuy, Symbol: "AAPL", Target: "Target: $185 (+7.3%)", Reason: "Strong earnings momentum"},
		{Signal: domain.SignalSell, Symbol: "META", Target: "Target: $285 (-5.2%)", Reason: "Regulatory concerns"},
		{Signal: domain.SignalHold, Symbol: "MSFT", Target: "Range: $340-$360", Reason: "Consolidation phase"},
	}
}

// SignalLabel returns the card heading for s.
func SignalLabel(s domain.Signal) string {
	switch s {
	case domain.SignalBuy:
		return "BUY SIGNAL"
	case domain.SignalSell:
		return "SELL SIGNAL"
	case domain.SignalHold:
		return "HOLD"
	default:
		return "?"
	}
}
