package cli

import (
	"fmt"
)

type CategoryCmd struct {
	Add    CategoryAddCmd    `cmd:"" help:"Add a new category."`
	List   CategoryListCmd   `cmd:"" help:"List categories."`
	Rename CategoryRenameCmd `cmd:"" help:"Rename a category."`
	Delete CategoryDeleteCmd `cmd:"" help:"Delete a category (trackers keep their reference)."`
}

type CategoryAddCmd struct {
	Label string `arg:"" help:"Category label."`
}

func (c *CategoryAddCmd) Run(ctx *Context) error {
	category, err := ctx.Categories.Create(c.Label)
	if err != nil {
		return err
	}
	fmt.Printf("Added category: %s\n", category.Label)
	return nil
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *Context) error {
	categories, err := ctx.Categories.List()
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		fmt.Println("No categories found.")
		return nil
	}

	trackers, err := ctx.Trackers.ListAll()
	if err != nil {
		return err
	}
	counts := make(map[string]int)
	for _, t := range trackers {
		counts[t.CategoryID]++
	}

	for _, category := range categories {
		fmt.Printf("%s (%d trackers)\n", category.Label, counts[category.ID])
	}
	return nil
}

type CategoryRenameCmd struct {
	Category string `arg:"" help:"Category label or id."`
	Label    string `arg:"" help:"New label."`
}

func (c *CategoryRenameCmd) Run(ctx *Context) error {
	category, err := ctx.FindCategory(c.Category)
	if err != nil {
		return err
	}
	if err := ctx.Categories.Rename(category.ID, c.Label); err != nil {
		return err
	}
	fmt.Printf("Renamed category %q to %q\n", category.Label, c.Label)
	return nil
}

type CategoryDeleteCmd struct {
	Category string `arg:"" help:"Category label or id."`
}

func (c *CategoryDeleteCmd) Run(ctx *Context) error {
	category, err := ctx.FindCategory(c.Category)
	if err != nil {
		return err
	}
	if err := ctx.Categories.Delete(category.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted category: %s\n", category.Label)
	return nil
}
