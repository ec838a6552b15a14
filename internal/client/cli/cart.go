package cli

import (
	"context"
	"fmt"
	"strconv"
)

func (a *App) ShowCart(ctx context.Context) error {
	lines, err := a.cartService.Items(ctx)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		printlnFn("Your cart is empty.")
		return nil
	}

	count, total := 0, 0.0
	for _, l := range lines {
		printlnFn(formatCartLine(l))
		count += l.Quantity
		total += l.Subtotal()
	}
	printlnFn(fmt.Sprintf("Total: %s (%d items)", formatPrice(total), count))
	return nil
}

// CartAdd handles "cartadd <productID> [qty]".
func (a *App) CartAdd(ctx context.Context, args []string) error {
	const usage = "cartadd <productID> [qty]"
	id, err := idArg(args, 0, usage)
	if err != nil {
		return err
	}
	qty := 1
	if len(args) > 1 {
		if qty, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("%w: %s", errUsage, usage)
		}
	}

	p, err := a.catalogService.Product(ctx, id)
	if err != nil {
		return err
	}
	line, err := a.cartService.Add(ctx, *p, qty)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Added %s to cart (quantity %d)", p.Name, line.Quantity))
	return nil
}

// CartSet handles "cartset <productID> <qty>"; a quantity below one removes
// the line.
func (a *App) CartSet(ctx context.Context, args []string) error {
	const usage = "cartset <productID> <qty>"
	id, err := idArg(args, 0, usage)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: %s", errUsage, usage)
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: %s", errUsage, usage)
	}

	if err := a.cartService.UpdateQuantity(ctx, id, qty); err != nil {
		return err
	}
	if qty < 1 {
		printlnFn(fmt.Sprintf("Removed #%d from cart", id))
	} else {
		printlnFn(fmt.Sprintf("Set #%d quantity to %d", id, qty))
	}
	return nil
}

func (a *App) CartRemove(ctx context.Context, args []string) error {
	id, err := idArg(args, 0, "cartrm <productID>")
	if err != nil {
		return err
	}
	if err := a.cartService.Remove(ctx, id); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Removed #%d from cart", id))
	return nil
}

func (a *App) CartClear(ctx context.Context) error {
	if err := a.cartService.Clear(ctx); err != nil {
		return err
	}
	printlnFn("Cart cleared")
	return nil
}

// CartOpen opens the cart and shows it; while open the prompt carries the
// item count.
func (a *App) CartOpen(ctx context.Context) error {
	a.cartService.Open()
	return a.ShowCart(ctx)
}

func (a *App) CartClose(ctx context.Context) error {
	a.cartService.Close()
	return nil
}

func (a *App) CartPush(ctx context.Context) error {
	return a.guarded(ctx, locationCartPush)
}

func (a *App) cartPush(ctx context.Context) error {
	n, err := a.cartService.Push(ctx)
	if n > 0 {
		printlnFn(fmt.Sprintf("Moved %d line(s) to your account cart", n))
	}
	if err != nil {
		return err
	}
	if n == 0 {
		printlnFn("Your cart is empty.")
	}
	return nil
}

func (a *App) RemoteCart(ctx context.Context) error {
	return a.guarded(ctx, locationRemoteCart)
}

func (a *App) remoteCart(ctx context.Context) error {
	c, err := a.cartService.Remote(ctx)
	if err != nil {
		return err
	}
	if len(c.Items) == 0 {
		printlnFn("Your account cart is empty.")
		return nil
	}

	count, total := 0, 0.0
	for _, it := range c.Items {
		printlnFn(formatCartItem(it))
		count += it.Quantity
		total += it.UnitPrice() * float64(it.Quantity)
	}
	printlnFn(fmt.Sprintf("Total: %s (%d items)", formatPrice(total), count))
	return nil
}
