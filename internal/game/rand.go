package game

import (
	"crypto/rand"
	"math/big"
)

// secureRandInt возвращает криптографически безопасное случайное число в [0, max)
func secureRandInt(max int64) int64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(max))
	return n.Int64()
}

// secureRandFloat возвращает криптографически безопасное число в [0.0, 1.0)
func secureRandFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(1<<53))
	return float64(n.Int64()) / float64(1<<53)
}

// shuffle перемешивает срез на месте (Фишер-Йетс)
func shuffle[T any](s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := secureRandInt(int64(i + 1))
		s[i], s[j] = s[j], s[i]
	}
}

// sample возвращает случайную выборку из n элементов пула
func sample[T any](pool []T, n int) []T {
	out := make([]T, len(pool))
	copy(out, pool)
	shuffle(out)
	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}
