package callback

import (
	"time"

	"caritahub_games/internal/domain"
)

// Build собирает стандартный payload завершения игры - контракт данных
// между каждой игрой и платформой CaritaHub. Функция тотальна: любые
// входные значения приводятся к нужным типам, ошибок не бывает.
// Timestamp ставится в момент сборки, не в момент старта сессии
func Build(memberID, gameID, score, maxScore, completed, durationSeconds any) domain.Payload {
	return domain.Payload{
		MemberID:        String(memberID),
		GameID:          String(gameID),
		Score:           Number(score),
		MaxScore:        Number(maxScore),
		Completed:       Bool(completed),
		DurationSeconds: Number(durationSeconds),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
}
