package process_recurring

// Request модель запроса на материализацию правила
type Request struct {
	RuleID    int64 // ID правила повторения
	CreatedBy int64 // ID сотрудника, запустившего генерацию
}

// DateFailure одна пропущенная дата с причиной
type DateFailure struct {
	Date   string // Дата в формате "YYYY-MM-DD"
	Reason string // Человекочитаемая причина пропуска
}

// Report итог материализации правила
// Success + len(Failures) равно числу дат, которые дало раскрытие правила
type Report struct {
	RuleID     int64
	TotalDates int
	Success    int
	Failures   []DateFailure
	BookingIDs []int64 // Созданные бронирования в порядке дат
}
