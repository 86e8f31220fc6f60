package minigame

import "errors"

var (
	ErrInvalidChoice = errors.New("invalid_choice")
	ErrInvalidStake  = errors.New("invalid_stake")
	ErrNoPicks       = errors.New("no_picks")
)

type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeLose Outcome = "LOSE"
	OutcomeDraw Outcome = "DRAW"
)

const (
	ChoiceRock     = "ROCK"
	ChoicePaper    = "PAPER"
	ChoiceScissors = "SCISSORS"

	ChoiceOdd  = "ODD"
	ChoiceEven = "EVEN"
)

var rpsBeats = map[string]string{
	ChoiceRock:     ChoiceScissors,
	ChoicePaper:    ChoiceRock,
	ChoiceScissors: ChoicePaper,
}

func ValidRPSChoice(c string) bool {
	_, ok := rpsBeats[c]
	return ok
}

func EvalRPS(player, house string) Outcome {
	if player == house {
		return OutcomeDraw
	}
	if rpsBeats[player] == house {
		return OutcomeWin
	}
	return OutcomeLose
}

func ValidParityChoice(c string) bool {
	return c == ChoiceOdd || c == ChoiceEven
}

func EvalParity(choice string, roll int) Outcome {
	actual := ChoiceEven
	if roll%2 == 1 {
		actual = ChoiceOdd
	}
	if choice == actual {
		return OutcomeWin
	}
	return OutcomeLose
}

// FixedOddsFee is the house cut on a fixed-odds win. The winner is credited
// stake minus this fee and the original stake is left untouched; a loss
// forfeits the whole stake. The asymmetry is the product's pricing, not an
// accident.
func FixedOddsFee(stake int64, feeRate float64) int64 {
	return int64(float64(stake) * feeRate)
}
