package domain

// Payload - контракт завершения игры между платформой и встраивающим хостом.
// Все поля уже приведены к нужным типам строителем payload'а
type Payload struct {
	MemberID        string  `json:"memberId"`
	GameID          string  `json:"gameId"`
	Score           float64 `json:"score"`
	MaxScore        float64 `json:"maxScore"`
	Completed       bool    `json:"completed"`
	DurationSeconds float64 `json:"durationSeconds"`
	Timestamp       string  `json:"timestamp"` // ISO-8601, момент сборки payload'а
}
