package formatting

// pluralize выбирает форму слова для числа: один, несколько, много
func pluralize(count int, one, few, many string) string {
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

// PluralizeSlots возвращает правильное склонение слова "слот"
func PluralizeSlots(count int) string {
	return pluralize(count, "слот", "слота", "слотов")
}

// PluralizeProposals возвращает правильное склонение слова "предложение"
func PluralizeProposals(count int) string {
	return pluralize(count, "предложение", "предложения", "предложений")
}
