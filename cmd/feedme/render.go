package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"feedme/internal/domain/catalogs/ingredient"
	"feedme/internal/domain/documents/meal"
	"feedme/internal/domain/reports"
)

const incompleteMark = " (incomplete)"

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	valueStyle   = lipgloss.NewStyle().Width(10).Align(lipgloss.Right)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5A50A"))
)

// printer writes the human readable views.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w}
}

// summary prints one row per property, indented by depth.
func (p *printer) summary(s *reports.Summary) {
	if len(s.Rows) == 0 {
		fmt.Fprintln(p.w, mutedStyle.Render("  nothing recorded"))
	}
	for _, r := range s.Rows {
		name := strings.Repeat(" ", r.Indent()+2) + r.Name
		fmt.Fprintf(p.w, "%-28s%s\n", name, valueStyle.Render(r.Formatted()))
	}
	if !s.Complete {
		fmt.Fprintln(p.w, warnStyle.Render("  some ingredients are not fully entered"))
	}
}

// day prints a day heading, its meal labels and the day summary.
func (p *printer) day(d reports.RenderedDay, label func(meal.Meal) string) {
	title := d.Heading.Title()
	if !d.Summary.Complete {
		title += incompleteMark
	}
	fmt.Fprintln(p.w, headingStyle.Render(title))
	for _, m := range d.Meals {
		fmt.Fprintf(p.w, "  #%s %s %s\n", m.ID, m.Time().Format("15:04"), label(m))
	}
	p.summary(d.Summary)
	fmt.Fprintln(p.w)
}

// mealDetail prints a meal's dishes with their ingredient lines.
func (p *printer) mealDetail(m meal.Meal, title string, dishName func(meal.MealDish) string, ingredients func(meal.Ingredient) (ingredient.Ingredient, bool)) {
	fmt.Fprintln(p.w, headingStyle.Render(title))
	for _, md := range m.Dishes {
		fmt.Fprintf(p.w, "  %s %s\n", dishName(md), mutedStyle.Render("#"+md.ID.String()))
		for _, line := range md.Ingredients {
			name := fmt.Sprintf("ingredient #%s", line.IngredientID)
			if ing, ok := ingredients(line); ok {
				name = ing.Name
			}
			fmt.Fprintf(p.w, "    %-24s%s %s\n", name, valueStyle.Render(line.Quantity.Format()), line.Unit.Display())
		}
	}
}
