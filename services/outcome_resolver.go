package services

import (
	"nfl-pickem-go/models"
)

// ResolveOutcome grades a pick against its game's result.
//
// Anything other than an exact match on a final result is a loss, so a spread or
// total push and a moneyline tie all grade as losses. A missing or non-final result,
// a missing line for spread/total picks, touchdown scorer picks and unknown
// categories are left unresolved.
func ResolveOutcome(pick *models.Pick, result *models.GameResult) models.Outcome {
	if pick == nil || !result.IsFinal() {
		return models.OutcomeUnresolved
	}

	switch pick.Category {
	case models.CategoryMoneyline:
		return winIf(result.MoneylineWinnerIs(pick.Value))
	case models.CategoryFavorite, models.CategoryUnderdog:
		if result.Spread == nil {
			return models.OutcomeUnresolved
		}
		return winIf(result.SpreadWinnerIs(pick.Value))
	case models.CategoryOver:
		if result.Total == nil {
			return models.OutcomeUnresolved
		}
		return winIf(result.TotalResultIs(models.TotalOver))
	case models.CategoryUnder:
		if result.Total == nil {
			return models.OutcomeUnresolved
		}
		return winIf(result.TotalResultIs(models.TotalUnder))
	case models.CategoryTouchdownScorer:
		// graded manually
		return models.OutcomeUnresolved
	default:
		return models.OutcomeUnresolved
	}
}

func winIf(won bool) models.Outcome {
	if won {
		return models.OutcomeWin
	}
	return models.OutcomeLoss
}
