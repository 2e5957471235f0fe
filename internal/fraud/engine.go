package fraud

// "ML"と呼ばれているが実体はしきい値ルールの集まり。
// 特徴量 → 異常リスト → スコア の純関数で、学習要素はない

type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// スコア正規化の重み
func (s Severity) Weight() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 2
	}
}

// ユーザー単位の集計特徴量
type Features struct {
	AccountAgeDays   float64
	AvgOrderAmount   float64
	MaxOrderAmount   int64
	AvgBidAmount     float64
	MaxBidAmount     int64
	LoginAttempts    int64
	LoginSuccessRate float64
	OrdersLastHour   int64
	BidsLastHour     int64
}

type Anomaly struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Detail   string   `json:"detail"`
}

// ルールのしきい値。configから渡す（マジックナンバーを散らさない）
type Thresholds struct {
	MaxOrderAmount    int64
	MaxFailedLogins   int64
	MaxOrdersPerHour  int64
	MaxBidsPerHour    int64
	MaxAccountsPerIP  int64
	MinLoginAttempts  int64
	MinSuccessRate    float64
	NewAccountAgeDays float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxOrderAmount:    1000,
		MaxFailedLogins:   5,
		MaxOrdersPerHour:  10,
		MaxBidsPerHour:    20,
		MaxAccountsPerIP:  3,
		MinLoginAttempts:  5,
		MinSuccessRate:    0.5,
		NewAccountAgeDays: 1,
	}
}

// 特徴量を固定ルールにかけて異常を列挙する
func Evaluate(f Features, th Thresholds) []Anomaly {
	anomalies := []Anomaly{}

	if f.MaxOrderAmount > th.MaxOrderAmount {
		anomalies = append(anomalies, Anomaly{
			Code:     "HIGH_ORDER_AMOUNT",
			Severity: SeverityMedium,
			Detail:   "max order amount exceeds threshold",
		})
	}

	if f.LoginAttempts >= th.MinLoginAttempts && f.LoginSuccessRate < th.MinSuccessRate {
		anomalies = append(anomalies, Anomaly{
			Code:     "LOW_LOGIN_SUCCESS_RATE",
			Severity: SeverityHigh,
			Detail:   "login success rate below threshold",
		})
	}

	if f.AccountAgeDays < th.NewAccountAgeDays && f.OrdersLastHour > 0 {
		anomalies = append(anomalies, Anomaly{
			Code:     "NEW_ACCOUNT_ORDERING",
			Severity: SeverityMedium,
			Detail:   "account younger than a day is already ordering",
		})
	}

	if f.OrdersLastHour >= th.MaxOrdersPerHour {
		anomalies = append(anomalies, Anomaly{
			Code:     "ORDER_VELOCITY",
			Severity: SeverityMedium,
			Detail:   "too many orders in the last hour",
		})
	}

	if f.BidsLastHour >= th.MaxBidsPerHour {
		anomalies = append(anomalies, Anomaly{
			Code:     "BID_VELOCITY",
			Severity: SeverityMedium,
			Detail:   "too many bids in the last hour",
		})
	}

	return anomalies
}

// 重み合計を0–100に正規化する: min(100, Σweight/3 * 20)
func Score(anomalies []Anomaly) int {
	sum := 0
	for _, a := range anomalies {
		sum += a.Severity.Weight()
	}

	score := sum * 20 / 3
	if score > 100 {
		return 100
	}
	return score
}
