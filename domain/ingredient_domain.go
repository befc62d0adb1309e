package domain

import "errors"

var (
	MessageSuccessGetIngredients = "success get ingredients"
	MessageFailedGetIngredients  = "failed to get ingredients"

	ErrIngredientNotFound = errors.New("ingredient not found")
)

type IngredientResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}
