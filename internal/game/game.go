package game

// RawOutcome - сырой итог от игры в момент завершения.
// Ключи score|finalScore, maxScore, completed; значения произвольных типов,
// приведение выполняет строитель payload'а
type RawOutcome map[string]any

// Shell - контракт, который оболочка сессии передаёт каждой игре:
// живой счёт для UI, сигнал завершения (идемпотентный) и остаток времени
type Shell struct {
	ReportScore func(score float64)
	Complete    func(raw RawOutcome)
	SecondsLeft func() *int
}

// Hosted - игра, живущая внутри оболочки сессии и сама управляющая
// своим завершением (например, симуляция в реальном времени)
type Hosted interface {
	Start(shell Shell)
	Stop()
}

// TimeAware - игра, которая хочет сама собрать итог при истечении времени.
// Оболочка вызывает TimeUp до своего запасного пути; гонка разрешается
// идемпотентным guard'ом завершения - побеждает первый сигнал
type TimeAware interface {
	TimeUp()
}
