package game

import (
	"testing"

	"caritahub_games/internal/domain"
)

func TestGenerateQuestion_AnswersConsistent(t *testing.T) {
	for _, d := range []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard} {
		cfg := ArithmeticTier(d)
		for i := 0; i < 100; i++ {
			q := generateQuestion(cfg)
			var want int
			switch q.Op {
			case "+":
				want = q.A + q.B
			case "-":
				want = q.A - q.B
			case "×":
				want = q.A * q.B
			default:
				t.Fatalf("неизвестный оператор %q", q.Op)
			}
			if q.Answer != want {
				t.Fatalf("ответ не сходится: %d %s %d = %d, в вопросе %d", q.A, q.Op, q.B, want, q.Answer)
			}
			if q.Op == "-" && q.Answer < 0 {
				t.Fatalf("вычитание не должно давать отрицательный ответ: %+v", q)
			}
		}
	}
}

func TestArithmetic_FullRound(t *testing.T) {
	g := NewArithmeticGame(domain.DifficultyEasy)
	rec := &shellRecorder{}
	g.Start(rec.shell())

	total := g.MaxScore()
	if total != ArithmeticTier(domain.DifficultyEasy).Questions {
		t.Fatalf("число вопросов неверно: %d", total)
	}

	// первый ответ намеренно неверный, остальные верные
	for i := 0; i < total; i++ {
		answer := g.questions[i].Answer
		if i == 0 {
			answer++
		}
		correct, index, err := g.Submit(answer)
		if err != nil {
			t.Fatalf("ответ %d не принят: %v", i, err)
		}
		if index != i {
			t.Fatalf("индекс вопроса неверен: %d != %d", index, i)
		}
		if (i == 0) == correct {
			t.Fatalf("оценка ответа %d неверна: %v", i, correct)
		}
	}

	raw := rec.lastOutcome(t)
	if raw["score"] != total-1 || raw["maxScore"] != total || raw["completed"] != true {
		t.Fatalf("итог раунда неверен: %v", raw)
	}

	if _, _, err := g.Submit(1); err != ErrGameFinished {
		t.Fatalf("ответ после завершения должен давать ErrGameFinished, получено %v", err)
	}
}

func TestArithmetic_TimeUp(t *testing.T) {
	g := NewArithmeticGame(domain.DifficultyMedium)
	rec := &shellRecorder{}
	g.Start(rec.shell())

	if _, _, err := g.Submit(g.questions[0].Answer); err != nil {
		t.Fatalf("ответ не принят: %v", err)
	}

	g.TimeUp()

	raw := rec.lastOutcome(t)
	if raw["score"] != 1 || raw["completed"] != false {
		t.Fatalf("итог при истечении времени неверен: %v", raw)
	}
}
