package reports

import "math/rand"

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

type phraseCategory string

const (
	categoryReturns  phraseCategory = "returns"
	categoryExpenses phraseCategory = "expenses"
	categoryJobs     phraseCategory = "jobs"
)

var positiveSentencesReturns = []string{
	"Your returns are outstanding today!",
	"Impressive performance on your returns.",
	"Great job maximizing your returns.",
	"You've achieved remarkable returns.",
	"Exceptional financial returns today!",
	"Your returns are higher than expected.",
	"Superb effort on your returns.",
	"Well done on optimizing your financial returns.",
	"Fantastic job managing your returns.",
	"You're excelling in financial returns today.",
	"Brilliant returns! Keep up the good work.",
	"Outstanding financial performance!",
	"You've done exceptionally well with returns.",
	"Impressive returns today. Keep it up!",
	"Exceptional work on your financial returns.",
	"Great returns! You're on the right track.",
	"Your returns are truly remarkable today.",
	"Amazing performance in financial returns.",
	"Excellent job maximizing your returns.",
	"You've achieved impressive returns today.",
}

var negativeSentencesReturns = []string{
	"Returns today are below expectations.",
	"Let's work on improving your returns.",
	"There's room for improvement in returns.",
	"Returns today need some attention.",
	"Your returns are lower than anticipated.",
	"We can enhance returns with adjustments.",
	"Improvement needed in financial returns.",
	"Today's returns are not meeting goals.",
	"Let's analyze and improve your returns.",
	"There's a shortfall in financial returns.",
	"Returns today are not as expected.",
	"We need to address issues in returns.",
	"Today's returns are concerning.",
	"Your returns need careful consideration.",
	"We can optimize returns for better results.",
	"Financial returns require adjustment.",
	"We should review and improve returns.",
	"Returns today are falling short.",
	"Let's reassess the strategy for returns.",
	"Financial returns could be improved.",
}

var neutralSentencesReturns = []string{
	"Steady returns today.",
	"Returns are consistent.",
	"No significant change in returns.",
	"Today's returns are stable.",
	"Returns are in line with expectations.",
	"There's a balance in financial returns.",
	"Consistent performance in returns.",
	"Today's returns show stability.",
	"Financial returns remain steady.",
	"No major fluctuations in returns.",
	"Returns are holding steady.",
	"Stable financial returns observed today.",
	"Consistent results in financial returns.",
	"Today's returns are maintaining stability.",
	"Financial returns are unchanged.",
	"Steady progress in returns.",
	"No drastic changes in returns today.",
	"Returns remain constant.",
	"Stability seen in financial returns.",
	"Today's returns show a consistent trend.",
}

var positiveSentencesExpenses = []string{
	"You've managed expenses exceptionally well today!",
	"Impressive control over expenses.",
	"Great job optimizing your spending!",
	"You've done a fantastic job with expenses.",
	"Exceptional expense management today!",
	"Your expenses are lower than expected.",
	"Superb effort on managing expenses.",
	"Well done on optimizing your spending.",
	"Fantastic job managing your expenses.",
	"You're excelling in expense management today.",
	"Brilliant work on your expenses! Keep it up.",
	"Outstanding performance in expense management!",
	"You've done exceptionally well with expenses.",
	"Impressive expenses today. Keep it up!",
	"Exceptional work on managing your expenses.",
	"Great job! Your spending is well-controlled.",
	"Your expenses are truly remarkable today.",
	"Amazing performance in managing expenses.",
	"Excellent job optimizing your spending.",
	"You've achieved impressive expense management today.",
}

var negativeSentencesExpenses = []string{
	"Expenses today are higher than expected.",
	"Let's review and optimize your expenses.",
	"Expense management needs attention today.",
	"Today's expenses are not meeting goals.",
	"Let's work on improving your spending.",
	"Improvement needed in expense management.",
	"Today's expenses are not as expected.",
	"We need to address issues in expenses.",
	"Today's spending is concerning.",
	"Your expenses need careful consideration.",
	"There's room for improvement in expenses.",
	"We should review and improve spending.",
	"Today's expenses are troubling.",
	"Your spending needs careful review.",
	"We can optimize expenses for better results.",
	"Spending today requires adjustment.",
	"We should reassess the strategy for expenses.",
	"Today's expenses could be improved.",
	"There's a shortfall in expense management.",
	"Let's analyze and improve your spending.",
}

var neutralSentencesExpenses = []string{
	"Steady expenses today.",
	"Expenses are consistent.",
	"No significant change in expenses.",
	"Today's expenses are stable.",
	"Expenses are in line with expectations.",
	"There's a balance in spending.",
	"Consistent performance in expenses.",
	"Today's spending shows stability.",
	"Expenses remain steady.",
	"No major fluctuations in spending.",
	"Spending is holding steady.",
	"Stable performance in expenses observed today.",
	"Consistent results in spending.",
	"Today's expenses are maintaining stability.",
	"Spending is unchanged.",
	"Steady progress in expenses.",
	"No drastic changes in expenses today.",
	"Expenses remain constant.",
	"Stability seen in spending.",
	"Today's expenses show a consistent trend.",
}

var positiveSentencesJobs = []string{
	"You've successfully handled multiple jobs today!",
	"Impressive number of jobs managed today.",
	"Great job on efficiently handling jobs!",
	"You've done an outstanding job with the number of jobs.",
	"Exceptional job management today!",
	"The number of jobs today exceeds expectations.",
	"Superb effort on managing jobs.",
	"Well done on efficiently handling jobs.",
	"Fantastic job in job management today.",
	"You're excelling in handling jobs today.",
	"Brilliant work on your jobs! Keep it up.",
	"Outstanding performance in job management!",
	"You've done exceptionally well with the number of jobs.",
	"Impressive job management today. Keep it up!",
	"Exceptional work on managing the number of jobs.",
	"Great job! Your job management is commendable.",
	"The number of jobs today is truly remarkable.",
	"Amazing performance in managing jobs.",
	"Excellent job in optimizing job management.",
	"You've achieved impressive job management today.",
}

var negativeSentencesJobs = []string{
	"The number of jobs today is lower than expected.",
	"Let's focus on increasing the number of jobs.",
	"There's room for improvement in job management.",
	"Today's number of jobs needs attention.",
	"The number of jobs is lower than anticipated.",
	"We can enhance job management with adjustments.",
	"Improvement needed in the number of jobs.",
	"Today's job management is not meeting goals.",
	"Let's analyze and improve the number of jobs.",
	"There's a shortfall in job management.",
	"The number of jobs today is not as expected.",
	"We need to address issues in job management.",
	"Today's job management is concerning.",
	"The number of jobs needs careful consideration.",
	"We can optimize job management for better results.",
	"Job management today requires adjustment.",
	"We should reassess the strategy for job management.",
	"Today's number of jobs could be improved.",
	"There's a shortfall in job management.",
	"Let's analyze and improve the number of jobs.",
}

var neutralSentencesJobs = []string{
	"Steady number of jobs today.",
	"The number of jobs is consistent.",
	"No significant change in the number of jobs.",
	"Today's number of jobs is stable.",
	"The number of jobs is in line with expectations.",
	"There's a balance in job management.",
	"Consistent performance in the number of jobs.",
	"Today's job management shows stability.",
	"The number of jobs remains steady.",
	"No major fluctuations in the number of jobs.",
	"Job management is holding steady.",
	"Stable performance in the number of jobs observed today.",
	"Consistent results in job management.",
	"Today's number of jobs is maintaining stability.",
	"Job management is unchanged.",
	"Steady progress in the number of jobs.",
	"No drastic changes in the number of jobs today.",
	"The number of jobs remains constant.",
	"Stability seen in job management.",
	"Today's number of jobs shows a consistent trend.",
}

var phrasePools = map[phraseCategory]map[Sentiment][]string{
	categoryReturns: {
		SentimentPositive: positiveSentencesReturns,
		SentimentNegative: negativeSentencesReturns,
		SentimentNeutral:  neutralSentencesReturns,
	},
	categoryExpenses: {
		SentimentPositive: positiveSentencesExpenses,
		SentimentNegative: negativeSentencesExpenses,
		SentimentNeutral:  neutralSentencesExpenses,
	},
	categoryJobs: {
		SentimentPositive: positiveSentencesJobs,
		SentimentNegative: negativeSentencesJobs,
		SentimentNeutral:  neutralSentencesJobs,
	},
}

// pickPhrase selects one sentence from the pool. The rng is injected so
// callers (and tests) control the randomness.
func pickPhrase(category phraseCategory, sentiment Sentiment, rng *rand.Rand) string {
	pool := phrasePools[category][sentiment]
	return pool[rng.Intn(len(pool))]
}
