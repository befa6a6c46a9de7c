package report

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/menuplanner/backend/internal/domain"
)

const (
	coreFont = "Helvetica"
	utf8Font = "MenuFont"
)

// Options configures PDF rendering
type Options struct {
	// FontFile is a TrueType font registered for UTF-8 text (Cyrillic names and the like).
	// Without it the cp1252 core font is used and other characters print as "?".
	FontFile string
}

// ShoppingListPDF renders a computed menu as a printable A4 shopping list.
// Amounts are printed in grams with two decimals.
func ShoppingListPDF(result *domain.MenuResult, generatedAt time.Time, opts Options) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Shopping list", true)
	pdf.SetAutoPageBreak(true, 15)

	fontName, tr, err := setupFont(pdf, opts.FontFile)
	if err != nil {
		return nil, err
	}

	pdf.AddPage()

	pdf.SetFont(fontName, "B", 16)
	pdf.Cell(0, 10, "Shopping list")
	pdf.Ln(8)

	pdf.SetFont(fontName, "", 10)
	pdf.Cell(0, 6, "Generated "+generatedAt.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	section(pdf, fontName, "Menu")
	if len(result.Dishes) == 0 {
		pdf.Cell(0, 6, "No dishes selected")
		pdf.Ln(6)
	}
	for _, d := range result.Dishes {
		pdf.CellFormat(140, 6, tr(d.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("x %d", d.Portions), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	section(pdf, fontName, "Ingredients")
	pdf.SetFont(fontName, "B", 10)
	pdf.CellFormat(140, 6, "Ingredient", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, "Amount (g)", "1", 1, "R", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	for _, item := range result.ShoppingList {
		pdf.CellFormat(140, 6, tr(item.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", item.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	section(pdf, fontName, "Total nutrition")
	total := result.Total
	rows := [][2]string{
		{"Calories (kcal)", fmt.Sprintf("%.2f", total.Calories)},
		{"Protein (g)", fmt.Sprintf("%.2f", total.Protein)},
		{"Fat (g)", fmt.Sprintf("%.2f", total.Fat)},
		{"Carbohydrates (g)", fmt.Sprintf("%.2f", total.Carbohydrates)},
	}
	for _, r := range rows {
		pdf.CellFormat(140, 6, r[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, r[1], "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render shopping list: %w", err)
	}
	return buf.Bytes(), nil
}

// setupFont registers the UTF-8 font when configured. Text passes through tr before drawing.
func setupFont(pdf *gofpdf.Fpdf, fontFile string) (string, func(string) string, error) {
	if fontFile == "" {
		// Core fonts are cp1252; translate so accented Latin names survive
		return coreFont, pdf.UnicodeTranslatorFromDescriptor(""), nil
	}
	if _, err := os.Stat(fontFile); err != nil {
		return "", nil, fmt.Errorf("report font: %w", err)
	}

	pdf.AddUTF8Font(utf8Font, "", fontFile)
	pdf.AddUTF8Font(utf8Font, "B", fontFile)
	if err := pdf.Error(); err != nil {
		return "", nil, fmt.Errorf("report font %s: %w", fontFile, err)
	}
	return utf8Font, func(s string) string { return s }, nil
}

func section(pdf *gofpdf.Fpdf, fontName, title string) {
	pdf.SetFont(fontName, "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
	pdf.SetFont(fontName, "", 10)
}
