package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

var errUsage = errors.New("usage")

// idArg parses args[i] as a positive id.
func idArg(args []string, i int, usage string) (int, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("%w: %s", errUsage, usage)
	}
	id, err := strconv.Atoi(args[i])
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %s", errUsage, usage)
	}
	return id, nil
}

func (a *App) Products(ctx context.Context) error {
	products, err := a.catalogService.Products(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		printlnFn("No products yet.")
		return nil
	}
	for _, p := range products {
		printlnFn(formatProduct(p))
	}
	return nil
}

// AddProduct prompts for the product fields and creates it. Price and
// discount accept an empty answer as zero; images are comma separated.
func (a *App) AddProduct(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return err
	}
	price, err := a.readNumber("Enter price (USD)")
	if err != nil {
		return err
	}
	discount, err := a.readNumber("Enter discount (%)")
	if err != nil {
		return err
	}
	images, err := getSimpleText(a.reader, "Enter image URLs (comma separated, optional)", os.Stdout)
	if err != nil {
		return err
	}

	p, err := a.catalogService.AddProduct(ctx, models.NewProduct{
		Name:        name,
		Description: description,
		Price:       price,
		Discount:    discount,
		Images:      splitList(images),
	})
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Created product #%d", p.ID))
	return nil
}

func (a *App) readNumber(prompt string) (float64, error) {
	s, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return 0, err
	}
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (a *App) DeleteProduct(ctx context.Context, args []string) error {
	id, err := idArg(args, 0, "delproduct <id>")
	if err != nil {
		return err
	}
	if err := a.catalogService.DeleteProduct(ctx, id); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Deleted product #%d", id))
	return nil
}

func (a *App) Posts(ctx context.Context) error {
	posts, err := a.catalogService.Posts(ctx)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		printlnFn("No posts yet.")
		return nil
	}
	for _, p := range posts {
		printlnFn(formatPost(p))
	}
	return nil
}

func (a *App) AddPost(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	body, err := getMultiline(a.reader, "Enter post body", os.Stdout)
	if err != nil {
		return err
	}

	p, err := a.catalogService.AddPost(ctx, title, body)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Created post #%d", p.ID))
	return nil
}

func (a *App) DeletePost(ctx context.Context, args []string) error {
	id, err := idArg(args, 0, "delpost <id>")
	if err != nil {
		return err
	}
	if err := a.catalogService.DeletePost(ctx, id); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Deleted post #%d", id))
	return nil
}
