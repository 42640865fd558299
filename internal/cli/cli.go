// internal/cli/cli.go
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/client/checkout"
	"github.com/your-org/storefront/internal/client/gateway"
	"github.com/your-org/storefront/internal/client/session"
	"github.com/your-org/storefront/internal/config"
)

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// failureNotice is what the shopper sees when a gateway call fails. The
// underlying error goes to the log.
const failureNotice = "Something went wrong. Please try again."

type command struct {
	name    string
	usage   string
	summary string
	run     func(ctx context.Context, app *App, args []string) error
}

var commands = []command{
	{"products", "products [-category C] [-search S] [-min P] [-max P] [-sort price|rating|createdAt]", "browse the catalog", runProducts},
	{"product", "product <id>", "show product detail", runProduct},
	{"categories", "categories", "list categories", runCategories},
	{"reviews", "reviews <productId>", "list reviews of a product", runReviews},
	{"review", "review -product ID -rating 1..5 [-comment TEXT]", "write a review", runReview},
	{"cart", "cart", "show the cart with totals", runCart},
	{"add", "add <productId> [quantity]", "add to cart", runAdd},
	{"update", "update <productId> <quantity>", "set a cart quantity (0 removes)", runUpdate},
	{"remove", "remove <productId>", "remove from cart", runRemove},
	{"clear", "clear", "empty the cart", runClear},
	{"checkout", "checkout -name N -address A -city C -state S -zip Z -phone P", "place an order for the cart", runCheckout},
	{"orders", "orders", "list your orders", runOrders},
	{"order", "order <id>", "show an order", runOrder},
	{"invoice", "invoice <id> [-o FILE]", "download an order invoice PDF", runInvoice},
	{"seed", "seed", "load the demo catalog", runSeed},
	{"guest", "guest", "obtain a guest token", runGuest},
}

// usageError marks bad command-line input
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// App is the storefront command-line front end
type App struct {
	client  *gateway.Client
	logger  *logrus.Logger
	out     io.Writer
	session *session.Session
}

// New creates the app. out receives user-facing output.
func New(cfg *config.Config, client *gateway.Client, logger *logrus.Logger, out io.Writer) (*App, error) {
	sess, err := session.New(cfg, client, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		client:  client,
		logger:  logger,
		out:     out,
		session: sess,
	}, nil
}

// Run executes one command and returns the process exit code
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.printUsage()
		return ExitUsage
	}

	cmd, ok := lookup(args[0])
	if !ok {
		fmt.Fprintf(a.out, "unknown command %q\n\n", args[0])
		a.printUsage()
		return ExitUsage
	}

	err := cmd.run(ctx, a, args[1:])
	if err == nil {
		return ExitOK
	}

	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(a.out, "%s\nusage: storefront %s\n", uerr.msg, cmd.usage)
		return ExitUsage
	}

	// local validation problems are shown as-is
	var verr *checkout.ValidationError
	if errors.As(err, &verr) || errors.Is(err, checkout.ErrEmptyCart) {
		fmt.Fprintln(a.out, err.Error())
		return ExitFailure
	}

	a.logger.WithError(err).WithField("command", cmd.name).Error("Command failed")
	if gateway.IsNotFound(err) {
		fmt.Fprintln(a.out, "Not found.")
	} else {
		fmt.Fprintln(a.out, failureNotice)
	}
	return ExitFailure
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func (a *App) printUsage() {
	fmt.Fprintln(a.out, "usage: storefront <command> [arguments]")
	fmt.Fprintln(a.out)
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, c := range commands {
		fmt.Fprintf(w, "  %s\t%s\n", c.name, c.summary)
	}
	w.Flush()
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}
	return nil
}

// Catalog

func runProducts(ctx context.Context, a *App, args []string) error {
	fs := newFlagSet("products")
	category := fs.String("category", "", "")
	search := fs.String("search", "", "")
	minPrice := fs.String("min", "", "")
	maxPrice := fs.String("max", "", "")
	sortBy := fs.String("sort", "", "")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	filter := gateway.ProductFilter{Category: *category, Search: *search, Sort: *sortBy}
	var err error
	if filter.MinPrice, err = optionalPrice("min", *minPrice); err != nil {
		return err
	}
	if filter.MaxPrice, err = optionalPrice("max", *maxPrice); err != nil {
		return err
	}

	products, err := a.client.ListProducts(ctx, filter)
	if err != nil {
		return err
	}

	if len(products) == 0 {
		fmt.Fprintln(a.out, "No products found.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tRATING")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t$%s\t%.1f (%d)\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Rating, p.ReviewCount)
	}
	return w.Flush()
}

func optionalPrice(name, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, usagef("invalid -%s price %q", name, raw)
	}
	return &d, nil
}

func runProduct(ctx context.Context, a *App, args []string) error {
	if len(args) != 1 {
		return usagef("expected a product id")
	}

	p, err := a.client.GetProduct(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s\n", p.Name)
	fmt.Fprintf(a.out, "$%s · %s · %.1f★ (%d reviews) · %d in stock\n",
		p.Price.StringFixed(2), p.Category, p.Rating, p.ReviewCount, p.Stock)
	if p.Description != "" {
		fmt.Fprintf(a.out, "\n%s\n", p.Description)
	}
	return nil
}

func runCategories(ctx context.Context, a *App, args []string) error {
	categories, err := a.client.ListCategories(ctx)
	if err != nil {
		return err
	}

	sort.Strings(categories)
	for _, c := range categories {
		fmt.Fprintln(a.out, c)
	}
	return nil
}

// Reviews

func runReviews(ctx context.Context, a *App, args []string) error {
	if len(args) != 1 {
		return usagef("expected a product id")
	}

	reviews, err := a.client.ListReviews(ctx, args[0])
	if err != nil {
		return err
	}

	if len(reviews) == 0 {
		fmt.Fprintln(a.out, "No reviews yet.")
		return nil
	}

	for _, r := range reviews {
		fmt.Fprintf(a.out, "%s  %s  %s\n", strings.Repeat("★", max(r.Rating, 0)), r.UserName, r.CreatedAt.Format("2006-01-02"))
		if r.Comment != "" {
			fmt.Fprintf(a.out, "  %s\n", r.Comment)
		}
	}
	return nil
}

func runReview(ctx context.Context, a *App, args []string) error {
	fs := newFlagSet("review")
	productID := fs.String("product", "", "")
	rating := fs.Int("rating", 0, "")
	comment := fs.String("comment", "", "")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if *productID == "" {
		return usagef("-product is required")
	}
	if *rating < 1 || *rating > 5 {
		return usagef("-rating must be between 1 and 5")
	}

	if _, err := a.client.CreateReview(ctx, gateway.ReviewRequest{
		ProductID: *productID,
		Rating:    *rating,
		Comment:   *comment,
	}); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Review submitted successfully!")
	return nil
}

// Cart

func runCart(ctx context.Context, a *App, args []string) error {
	ctx, err := a.session.Open(ctx)
	if err != nil {
		return err
	}
	defer a.session.Close()

	return a.printCart(ctx)
}

func (a *App) printCart(ctx context.Context) error {
	if a.session.Model().Len() == 0 {
		fmt.Fprintln(a.out, "Your cart is empty.")
		return nil
	}

	view, err := a.session.CartView(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQTY\tPRICE\tSUBTOTAL")
	for _, li := range view.Items {
		fmt.Fprintf(w, "%s\t%s\t%d\t$%s\t$%s\n",
			li.ProductID, li.Name, li.Quantity, li.UnitPrice.StringFixed(2), li.Subtotal().StringFixed(2))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(view.Dropped) > 0 {
		fmt.Fprintf(a.out, "(%d unavailable item(s) not shown)\n", len(view.Dropped))
	}
	fmt.Fprintf(a.out, "Items: %d  Total: $%s\n", view.Count(), view.Total().StringFixed(2))
	return nil
}

func runAdd(ctx context.Context, a *App, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usagef("expected a product id and an optional quantity")
	}

	quantity := 1
	if len(args) == 2 {
		q, err := strconv.Atoi(args[1])
		if err != nil || q < 1 {
			return usagef("quantity must be a positive integer")
		}
		quantity = q
	}

	ctx, err := a.session.Open(ctx)
	if err != nil {
		return err
	}
	defer a.session.Close()

	if err := a.session.Cart().Add(ctx, args[0], quantity); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Added to cart! (%d item(s) in cart)\n", a.session.Model().Count())
	return nil
}

func runUpdate(ctx context.Context, a *App, args []string) error {
	if len(args) != 2 {
		return usagef("expected a product id and a quantity")
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return usagef("quantity must be an integer")
	}

	ctx, err = a.session.Open(ctx)
	if err != nil {
		return err
	}
	defer a.session.Close()

	if err := a.session.Cart().Update(ctx, args[0], quantity); err != nil {
		return err
	}
	return a.printCart(ctx)
}

func runRemove(ctx context.Context, a *App, args []string) error {
	if len(args) != 1 {
		return usagef("expected a product id")
	}

	ctx, err := a.session.Open(ctx)
	if err != nil {
		return err
	}
	defer a.session.Close()

	if err := a.session.Cart().Remove(ctx, args[0]); err != nil {
		return err
	}
	return a.printCart(ctx)
}

func runClear(ctx context.Context, a *App, args []string) error {
	if err := a.session.Cart().Clear(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Cart cleared.")
	return nil
}

// Checkout

func runCheckout(ctx context.Context, a *App, args []string) error {
	fs := newFlagSet("checkout")
	var addr gateway.ShippingAddress
	fs.StringVar(&addr.FullName, "name", "", "")
	fs.StringVar(&addr.Address, "address", "", "")
	fs.StringVar(&addr.City, "city", "", "")
	fs.StringVar(&addr.State, "state", "", "")
	fs.StringVar(&addr.ZipCode, "zip", "", "")
	fs.StringVar(&addr.Phone, "phone", "", "")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	// blank fields never reach the gateway
	if err := checkout.ValidateAddress(addr); err != nil {
		return err
	}

	ctx, err := a.session.Open(ctx)
	if err != nil {
		return err
	}
	defer a.session.Close()

	view, err := a.session.CartView(ctx)
	if err != nil {
		return err
	}

	co := a.session.NewCheckout()
	if err := co.SetAddress(addr); err != nil {
		return err
	}

	order, err := co.Submit(ctx, view.Items)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Order placed successfully!\nOrder ID: %s\nTotal: $%s\n", order.ID, order.Total.StringFixed(2))
	return nil
}

// Orders

func runOrders(ctx context.Context, a *App, args []string) error {
	orders, err := a.client.ListOrders(ctx)
	if err != nil {
		return err
	}

	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No orders yet.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tSTATUS\tITEMS\tTOTAL")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t$%s\n",
			o.ID, o.CreatedAt.Format("2006-01-02 15:04"), o.Status, len(o.Items), o.Total.StringFixed(2))
	}
	return w.Flush()
}

func runOrder(ctx context.Context, a *App, args []string) error {
	if len(args) != 1 {
		return usagef("expected an order id")
	}

	o, err := a.client.GetOrder(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Order %s (%s) placed %s\n", o.ID, o.Status, o.CreatedAt.Format("2006-01-02 15:04"))
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, item := range o.Items {
		fmt.Fprintf(w, "  %s\tx%d\t$%s\n", item.Name, item.Quantity, item.Price.StringFixed(2))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	addr := o.ShippingAddress
	fmt.Fprintf(a.out, "Total: $%s\nShip to: %s, %s, %s, %s %s (%s)\n",
		o.Total.StringFixed(2), addr.FullName, addr.Address, addr.City, addr.State, addr.ZipCode, addr.Phone)
	return nil
}

func runInvoice(ctx context.Context, a *App, args []string) error {
	if len(args) < 1 {
		return usagef("expected an order id")
	}
	id := args[0]

	fs := newFlagSet("invoice")
	output := fs.String("o", "", "")
	if err := parseFlags(fs, args[1:]); err != nil {
		return err
	}
	if *output == "" {
		*output = fmt.Sprintf("invoice-%s.pdf", id)
	}

	pdf, err := a.client.GetInvoice(ctx, id)
	if err != nil {
		return err
	}

	if err := os.WriteFile(*output, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write invoice: %w", err)
	}

	fmt.Fprintf(a.out, "Invoice saved to %s\n", *output)
	return nil
}

// Misc

func runSeed(ctx context.Context, a *App, args []string) error {
	msg, err := a.client.InitData(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, msg.Message)
	return nil
}

func runGuest(ctx context.Context, a *App, args []string) error {
	token, err := a.client.GuestToken(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, token)
	return nil
}
