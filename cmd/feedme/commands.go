package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"feedme/internal/core/id"
	"feedme/internal/core/types"
	"feedme/internal/domain/catalogs/dish"
	"feedme/internal/domain/catalogs/ingredient"
	"feedme/internal/domain/documents/meal"
)

var daysCount int

var daysCmd = &cobra.Command{
	Use:   "days",
	Short: "Show the most recent days with their meals and nutrient totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		loc, err := env.cfg.Location()
		if err != nil {
			return err
		}
		n := daysCount
		if n <= 0 {
			n = env.cfg.Display.Days
		}

		days, err := env.session.Reports().Days(time.Now(), loc, n)
		if err != nil {
			return err
		}
		p := newPrinter(cmd.OutOrStdout())
		for _, d := range days {
			p.day(d, env.session.Label)
		}
		return nil
	},
}

var mealCmd = &cobra.Command{
	Use:   "meal <id>",
	Short: "Show one meal with its dishes and summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mealID, err := id.Parse(args[0])
		if err != nil {
			return fmt.Errorf("meal id %q: %w", args[0], err)
		}
		editor, err := env.session.MealEditor(cmd.Context(), mealID)
		if err != nil {
			return err
		}
		m := editor.Data()

		loc, err := env.cfg.Location()
		if err != nil {
			return err
		}
		title := fmt.Sprintf("%s %s", m.Time().In(loc).Format("2006-01-02 15:04"), env.session.Label(m))

		p := newPrinter(cmd.OutOrStdout())
		p.mealDetail(m, title, func(md meal.MealDish) string {
			if d, ok := env.session.Dishes.GetByID(md.DishID); ok {
				return d.Name
			}
			return "dish #" + md.DishID.String()
		}, func(line meal.Ingredient) (ingredient.Ingredient, bool) {
			return env.session.Ingredients.GetByID(line.IngredientID)
		})

		summary, err := env.session.MealSummary(m)
		if err != nil {
			return err
		}
		p.summary(summary)
		return nil
	},
}

var mealsCmd = &cobra.Command{
	Use:   "meals",
	Short: "Manage meals",
}

var mealAt string

var mealsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an empty meal, now or at --at",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		at := time.Now()
		if mealAt != "" {
			var err error
			if at, err = time.Parse(time.RFC3339, mealAt); err != nil {
				return fmt.Errorf("--at: %w", err)
			}
		}
		created, err := env.session.CreateMeal(cmd.Context(), at)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created meal #%s\n", created.ID)
		return nil
	},
}

var mealsCopyCmd = &cobra.Command{
	Use:   "copy <meal id> <meal dish id> <source meal dish id>",
	Short: "Copy the ingredient lines of an earlier meal dish",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		d, err := mealDish(cmd, ids[0], ids[1])
		if err != nil {
			return err
		}
		copied, err := d.CopyFrom(cmd.Context(), ids[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "copied %d ingredient lines\n", len(copied))
		return nil
	},
}

var mealsSetCmd = &cobra.Command{
	Use:   "set <meal id> <meal dish id> <line id> <quantity> <unit>",
	Short: "Set the quantity and unit (g, ml, pieces) of an ingredient line",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args[:3])
		if err != nil {
			return err
		}
		quantity, err := types.ParseAmount(args[3])
		if err != nil {
			return fmt.Errorf("quantity %q: %w", args[3], err)
		}
		unit, err := ingredient.ParseUnitDisplay(args[4])
		if err != nil {
			return err
		}
		d, err := mealDish(cmd, ids[0], ids[1])
		if err != nil {
			return err
		}
		_, err = d.UpdateIngredient(cmd.Context(), ids[2], quantity, unit)
		return err
	},
}

var mealsDeleteCmd = &cobra.Command{
	Use:   "delete <meal id>",
	Short: "Delete a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		editor, err := env.session.MealEditor(cmd.Context(), ids[0])
		if err != nil {
			return err
		}
		return editor.DeleteMeal(cmd.Context())
	},
}

func parseIDs(args []string) ([]id.ID, error) {
	ids := make([]id.ID, len(args))
	for i, a := range args {
		v, err := id.Parse(a)
		if err != nil {
			return nil, fmt.Errorf("id %q: %w", a, err)
		}
		ids[i] = v
	}
	return ids, nil
}

var dishesCmd = &cobra.Command{
	Use:   "dishes",
	Short: "Manage dishes",
}

var dishesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dishes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, d := range env.session.Dishes.Items() {
			fmt.Fprintf(cmd.OutOrStdout(), "#%-5s %s\n", d.ID, d.Name)
		}
		return nil
	},
}

var dishesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a dish",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := env.session.Dishes.Add(cmd.Context(), dish.CreateParams{Name: args[0]})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created dish #%s\n", created.ID)
		return nil
	},
}

var ingredientsCmd = &cobra.Command{
	Use:   "ingredients",
	Short: "List ingredients with their usable units",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, i := range env.session.Ingredients.Items() {
			units := ""
			for _, u := range i.UsableUnits() {
				units += " " + u.Display()
			}
			mark := ""
			if !i.FullyEntered {
				mark = incompleteMark
			}
			fmt.Fprintf(cmd.OutOrStdout(), "#%-5s %s%s %s\n", i.ID, i.Name, mark, mutedStyle.Render("["+units+" ]"))
		}
		return nil
	},
}

func init() {
	daysCmd.Flags().IntVarP(&daysCount, "number", "n", 0, "days to show (default from config)")
	mealsAddCmd.Flags().StringVar(&mealAt, "at", "", "meal time, RFC 3339")

	mealsCmd.AddCommand(mealsAddCmd, mealsCopyCmd, mealsSetCmd, mealsDeleteCmd)
	dishesCmd.AddCommand(dishesListCmd, dishesAddCmd)
}
