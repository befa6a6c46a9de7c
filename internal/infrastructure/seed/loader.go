package seed

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/menuplanner/backend/internal/domain"
)

// Required CSV columns; "calories" is optional
var requiredColumns = []string{"name", "protein_g", "fat_g", "carbohydrates_g"}

// IngredientRecord is one ingredient row of the seed CSV.
// Calories is nil when the column is absent or blank.
type IngredientRecord struct {
	Name          string
	Calories      *float64
	Protein       float64
	Fat           float64
	Carbohydrates float64
}

// DishRecord is the content of one dish JSON file
type DishRecord struct {
	File        string                    `json:"-"`
	Name        string                    `json:"name"`
	Ingredients []domain.IngredientAmount `json:"ingredients"`
}

// LoadIngredientsFile reads ingredient records from a CSV file
func LoadIngredientsFile(path string) ([]IngredientRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ingredients file: %w", err)
	}
	defer f.Close()

	return LoadIngredientsCSV(f)
}

// LoadIngredientsCSV reads ingredient records from CSV with a header row.
// Columns are matched by header name; blank macro values count as zero.
func LoadIngredientsCSV(r io.Reader) ([]IngredientRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []IngredientRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	records := []IngredientRecord{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		line, _ := reader.FieldPos(0)
		field := func(col string) string {
			i, ok := columns[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		rec := IngredientRecord{Name: field("name")}
		if rec.Name == "" {
			return nil, fmt.Errorf("line %d: empty name", line)
		}

		for col, dst := range map[string]*float64{
			"protein_g":       &rec.Protein,
			"fat_g":           &rec.Fat,
			"carbohydrates_g": &rec.Carbohydrates,
		} {
			if *dst, err = parseAmount(field(col)); err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, col, err)
			}
		}

		if raw := field("calories"); raw != "" {
			kcal, err := parseAmount(raw)
			if err != nil {
				return nil, fmt.Errorf("line %d: calories: %w", line, err)
			}
			rec.Calories = &kcal
		}

		records = append(records, rec)
	}

	return records, nil
}

func parseAmount(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

// LoadDishesDir reads every *.json dish file in dir, in file name order
func LoadDishesDir(dir string) ([]DishRecord, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("dishes directory: %w", err)
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	dishes := make([]DishRecord, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		var rec DishRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
		}
		rec.File = filepath.Base(path)
		if strings.TrimSpace(rec.Name) == "" {
			rec.Name = strings.TrimSuffix(rec.File, filepath.Ext(rec.File))
		}
		dishes = append(dishes, rec)
	}

	return dishes, nil
}
