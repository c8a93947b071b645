package roast

import "fmt"

var characters = []string{
	"internet troll", "Wall Street trader", "savage comedian", "disappointed financial advisor",
	"crypto bro", "street hustler", "financial influencer", "angry parent", "drill sergeant",
	"passive-aggressive coworker", "Fortune 500 CEO", "mob boss", "tech billionaire",
	"medieval king", "1920s gangster", "sports coach", "finance professor", "reality TV judge",
	"pirate captain", "alien observer", "cowboy", "disappointed grandparent",
	"Shakespeare", "detective", "fortune teller", "game show host",
	"ancient philosopher", "TikTok money guru", "conspiracy theorist", "boomer relative", "Gen Z investor",
}

var insults = []string{
	"financial genius", "money mastermind", "investment wizard", "economic savant",
	"fiscal prodigy", "budget Einstein", "Warren Buffett wannabe", "finance guru",
	"budget blackbelt", "investing champion", "capital allocation virtuoso",
}

var verbs = []string{
	"flushed", "wasted", "burned", "torched", "incinerated", "vaporized", "obliterated",
	"sacrificed", "squandered", "blew", "tossed", "dumped", "threw away",
}

var moneyWords = []string{
	"cash", "money", "funds", "capital", "savings", "net worth",
	"financial future", "retirement", "hard-earned money",
}

// figures holds the prompt numbers already formatted for display.
type figures struct {
	product    string
	date       string
	price      string
	historical string
	solAmount  string
	value      string
	absPL      string
	sign       string
	pct        string
	absPct     string
	gain       bool
}

func flatteringPrompt(f figures, pick func(int) int) (system, user string) {
	templates := []string{
		"Create an over-the-top, excessively flattering message praising someone's financial genius for spending $%[1]s on a %[2]s on %[3]s instead of Solana. If they had bought SOL at $%[4]s, they would have %[5]s SOL worth only $%[6]s now (a %[7]s%% LOSS). Make them feel like a financial mastermind who dodged a bullet.",
		"Write an absolutely gushing, sycophantic congratulation to someone who spent $%[1]s on a %[2]s in %[3]s instead of buying Solana at $%[4]s. Their wise decision saved them from a $%[8]s loss (%[7]s%% down). Make them feel like a financial prophet who saw the crypto crash coming.",
		"Create an extremely flattering, almost worshipful message praising someone's financial wisdom for buying a %[2]s for $%[1]s on %[3]s instead of Solana. They avoided losing %[7]s%% of their investment, as %[5]s SOL would now be worth only $%[6]s. Make them feel like a Wall Street genius who outsmarted the crypto market.",
	}
	user = fmt.Sprintf(templates[pick(len(templates))],
		f.price, f.product, f.date, f.historical, f.solAmount, f.value, f.absPct, f.absPL)
	system = fmt.Sprintf("You are a financial advisor who's in absolute awe of the user's incredible financial intuition. "+
		"Your tone is extremely flattering, almost worshipful. You use vivid language and creative metaphors to praise their decision. "+
		"Your response must explicitly mention the date (%s) when they made this brilliant purchase decision. "+
		"Keep it under 4 sentences and make it extremely memorable.", f.date)
	return system, user
}

func savagePrompt(f figures, pick func(int) int) (system, user string) {
	character := characters[pick(len(characters))]
	insult := insults[pick(len(insults))]
	verb := verbs[pick(len(verbs))]
	money := moneyWords[pick(len(moneyWords))]

	openers := []string{
		fmt.Sprintf("As a %s, create an absolutely BRUTAL roast about a %s who %s $%s of their %s on a %s on %s instead of Solana when SOL was only $%s.",
			character, insult, verb, f.price, money, f.product, f.date, f.historical),
		fmt.Sprintf("Imagine you're a %s. Destroy someone who %s $%s on a %s on %s when SOL was just $%s. Make it uniquely devastating.",
			character, verb, f.price, f.product, f.date, f.historical),
		fmt.Sprintf("You're a %s reacting to someone spending $%s on a %s on %s when SOL was only $%s. Create a merciless takedown about missing out on %s SOL worth $%s.",
			character, f.price, f.product, f.date, f.historical, f.solAmount, f.value),
	}

	outcome := "LOSS"
	if f.gain {
		outcome = "PROFIT"
	}
	user = fmt.Sprintf(`%s

This financial disaster happened on %s when Solana (SOL) was only $%s.
With $%s, they could have bought %s SOL.
Those SOL would be worth $%s today, a %s of $%s (%s%%).

Your first sentence MUST include the specific date "%s".
Include all of these numbers:
- SOL was $%s at that time
- They spent $%s on the %s
- They could have gotten %s SOL
- Worth $%s today
- That's a %s$%s (%s%%) change

Keep it under 3-4 sentences maximum.`,
		openers[pick(len(openers))],
		f.date, f.historical,
		f.price, f.solAmount,
		f.value, outcome, f.absPL, f.pct,
		f.date,
		f.historical,
		f.price, f.product,
		f.solAmount,
		f.value,
		f.sign, f.absPL, f.pct)

	system = fmt.Sprintf("You are the world's most savage %s who ANNIHILATES people for their terrible financial decisions. "+
		"You MUST ALWAYS explicitly mention the EXACT DATE (%s) when they made their purchase. "+
		"Your humor is ruthless and leaves no survivors.", character, f.date)
	return system, user
}
