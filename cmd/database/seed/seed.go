package seed

import (
	"Foodgram-Backend/entities"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/gorm"
)

// Seed bulk-loads tags and ingredients from two-column/comma-delimited CSV
// files in dataDir. Loading is idempotent: existing rows are left alone.
func Seed(db *gorm.DB, dataDir string) error {
	if err := loadTags(db, filepath.Join(dataDir, "tags.csv")); err != nil {
		return err
	}
	return loadIngredients(db, filepath.Join(dataDir, "ingredients.csv"))
}

func loadTags(db *gorm.DB, path string) error {
	records, err := readCSV(path)
	if err != nil {
		return err
	}

	for _, record := range records {
		if len(record) != 3 {
			return fmt.Errorf("tags: expected 3 columns, got %d", len(record))
		}
		tag := entities.Tag{
			Name:  record[0],
			Color: record[1],
			Slug:  record[2],
		}
		if err := db.Where("name = ?", tag.Name).FirstOrCreate(&tag).Error; err != nil {
			return err
		}
	}

	fmt.Printf("Loaded %d tags\n", len(records))
	return nil
}

func loadIngredients(db *gorm.DB, path string) error {
	records, err := readCSV(path)
	if err != nil {
		return err
	}

	for _, record := range records {
		if len(record) != 2 {
			return fmt.Errorf("ingredients: expected 2 columns, got %d", len(record))
		}
		ingredient := entities.Ingredient{
			Name:            record[0],
			MeasurementUnit: record[1],
		}
		if err := db.Where("name = ? AND measurement_unit = ?", ingredient.Name, ingredient.MeasurementUnit).
			FirstOrCreate(&ingredient).Error; err != nil {
			return err
		}
	}

	fmt.Printf("Loaded %d ingredients\n", len(records))
	return nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return csv.NewReader(file).ReadAll()
}
