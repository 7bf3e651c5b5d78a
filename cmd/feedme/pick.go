package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"feedme/internal/core/id"
	"feedme/internal/domain/catalogs/dish"
	"feedme/internal/domain/catalogs/ingredient"
	"feedme/internal/domain/documents/meal"
)

var (
	pickMealID     int64
	pickMealDishID int64
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick a dish or ingredient interactively",
}

var pickDishCmd = &cobra.Command{
	Use:   "dish",
	Short: "Search dishes; with --meal the pick is added to that meal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		p := newPicker("Dish", func(d dish.Dish) string { return d.Name }, env.session.DishSearch)
		res, err := runPicker(cmd, p)
		if err != nil || res == nil {
			return err
		}

		picked := res.item
		if !res.picked {
			if picked, err = env.session.Dishes.Add(ctx, dish.CreateParams{Name: res.text}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created dish #%s %s\n", picked.ID, picked.Name)
		}
		if pickMealID == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "#%s %s\n", picked.ID, picked.Name)
			return nil
		}

		mealID := id.ID(pickMealID)
		editor, err := env.session.MealEditor(ctx, mealID)
		if err != nil {
			return err
		}
		added, err := editor.AddDish(ctx, picked.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added %s to meal #%s as #%s\n", picked.Name, mealID, added.ID())

		for _, v := range env.session.OtherVersions(mealID, picked.ID) {
			fmt.Fprintf(cmd.OutOrStdout(), "  earlier: meal dish #%s on %s\n", v.MealDishID, v.Time.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var pickIngredientCmd = &cobra.Command{
	Use:   "ingredient",
	Short: "Search ingredients; with --meal and --meal-dish the pick is added as a line",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		p := newPicker("Ingredient", func(i ingredient.Ingredient) string { return i.Name }, env.session.IngredientSearch)
		res, err := runPicker(cmd, p)
		if err != nil || res == nil {
			return err
		}

		picked := res.item
		if !res.picked {
			if picked, err = env.session.Ingredients.Add(ctx, ingredient.CreateParams{Name: res.text}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created ingredient #%s %s\n", picked.ID, picked.Name)
		}
		if pickMealID == 0 || pickMealDishID == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "#%s %s\n", picked.ID, picked.Name)
			return nil
		}

		d, err := mealDish(cmd, id.ID(pickMealID), id.ID(pickMealDishID))
		if err != nil {
			return err
		}
		line, err := d.AddIngredient(ctx, picked.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added %s as line #%s (%s)\n", picked.Name, line.ID, line.Unit.Display())
		return nil
	},
}

func mealDish(cmd *cobra.Command, mealID, mealDishID id.ID) (*meal.DishEditor, error) {
	editor, err := env.session.MealEditor(cmd.Context(), mealID)
	if err != nil {
		return nil, err
	}
	d, ok := editor.Dish(mealDishID)
	if !ok {
		return nil, fmt.Errorf("meal #%s has no meal dish #%s", mealID, mealDishID)
	}
	return d, nil
}

func init() {
	pickCmd.PersistentFlags().Int64Var(&pickMealID, "meal", 0, "meal to add the pick to")
	pickIngredientCmd.Flags().Int64Var(&pickMealDishID, "meal-dish", 0, "meal dish to add the ingredient line to")

	pickCmd.AddCommand(pickDishCmd, pickIngredientCmd)
}
