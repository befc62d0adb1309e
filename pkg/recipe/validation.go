package recipe

import (
	"Foodgram-Backend/domain"
)

// ValidateRecipePayload checks every write-payload rule independently and
// collects all violations, so the client sees the full field report in one
// round trip. knownTags and knownIngredients hold the IDs that resolved in
// the store; anything outside them (including malformed IDs) is unknown.
// Pure check, no side effects.
func ValidateRecipePayload(
	tags []string,
	ingredients []domain.IngredientAmountRequest,
	cookingTime int,
	knownTags map[string]bool,
	knownIngredients map[string]bool,
) *domain.ValidationError {
	verr := domain.NewValidationError()

	if len(tags) == 0 {
		verr.Add("tags", domain.MsgEmptyTags)
	} else {
		seen := make(map[string]bool, len(tags))
		unknownReported, duplicateReported := false, false
		for _, tagID := range tags {
			if !knownTags[tagID] && !unknownReported {
				verr.Add("tags", domain.MsgUnknownTag)
				unknownReported = true
			}
			if seen[tagID] && !duplicateReported {
				verr.Add("tags", domain.MsgDuplicateTag)
				duplicateReported = true
			}
			seen[tagID] = true
		}
	}

	if len(ingredients) == 0 {
		verr.Add("ingredients", domain.MsgEmptyIngredients)
	} else {
		seen := make(map[string]bool, len(ingredients))
		unknownReported, duplicateReported, amountReported := false, false, false
		for _, ing := range ingredients {
			if !knownIngredients[ing.ID] && !unknownReported {
				verr.Add("ingredients", domain.MsgUnknownIngredient)
				unknownReported = true
			}
			// Duplicates are judged on the ingredient reference alone,
			// before the amount is attached.
			if seen[ing.ID] && !duplicateReported {
				verr.Add("ingredients", domain.MsgDuplicateIngredient)
				duplicateReported = true
			}
			seen[ing.ID] = true
			if ing.Amount < 1 && !amountReported {
				verr.Add("ingredients", domain.MsgInvalidAmount)
				amountReported = true
			}
		}
	}

	if cookingTime < 1 {
		verr.Add("cooking_time", domain.MsgInvalidCookingTime)
	}

	if !verr.HasErrors() {
		return nil
	}
	return verr
}
