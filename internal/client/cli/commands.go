package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errUsage = errors.New("usage")

func usage(format string) error {
	return fmt.Errorf("%w: %s", errUsage, format)
}

// parseID parses a product or cart item id. Ids are positive.
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil && id > 0
}

func (a *App) readCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Register prompts for email, password and an optional name, creates the
// account and logs in. The cart is reloaded from the new session.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Enter name (optional)", a.out)
	if err != nil {
		return err
	}

	if err := a.session.Register(ctx, email, string(password), name); err != nil {
		fmt.Fprintln(a.out, "Registration failed:", a.session.Error())
		return nil
	}

	a.cart.Load(ctx)
	fmt.Fprintf(a.out, "Welcome, %s!\n", displayName(a.session.User()))
	return nil
}

// Login prompts for credentials and logs in. The cart is reloaded from the
// new session.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		fmt.Fprintln(a.out, "Login failed:", a.session.Error())
		return nil
	}

	a.cart.Load(ctx)
	fmt.Fprintf(a.out, "Logged in as %s\n", displayName(a.session.User()))
	return nil
}

// Logout ends the session and switches the cart back to the guest cart.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.cart.Load(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.session.FetchProfile(ctx); err != nil {
		if errors.Is(err, services.ErrNotAuthenticated) {
			fmt.Fprintln(a.out, "Not logged in")
			return nil
		}
		fmt.Fprintln(a.out, "Cannot load profile:", a.session.Error())
		return nil
	}

	u := a.session.User()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> (id %d)\n", displayName(u), u.Email, u.ID)
	return nil
}

func displayName(u *models.User) string {
	switch {
	case u == nil:
		return "unknown user"
	case u.Name != "":
		return u.Name
	default:
		return u.Email
	}
}

// parseProductQuery turns "products" arguments into a query. key=value
// arguments set sort, category and page; everything else is search text.
func parseProductQuery(args []string) (models.ProductQuery, error) {
	var (
		q     models.ProductQuery
		words []string
	)
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			words = append(words, arg)
			continue
		}
		switch key {
		case "sort":
			s := models.ProductSort(value)
			if s != models.SortPriceAsc && s != models.SortPriceDesc {
				return q, usage("sort=price_asc|price_desc")
			}
			q.Sort = s
		case "category":
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return q, usage("category=<id>")
			}
			q.CategoryID = id
		case "page":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				return q, usage("page=<n>")
			}
			q.Page = n
		default:
			words = append(words, arg)
		}
	}
	q.Search = strings.Join(words, " ")
	return q, nil
}

func (a *App) Products(ctx context.Context, args []string) error {
	q, err := parseProductQuery(args)
	if err != nil {
		return err
	}

	a.products.FetchProducts(ctx, q)
	if msg := a.products.Error(); msg != "" {
		fmt.Fprintln(a.out, "Cannot load products:", msg)
		return nil
	}

	list := a.products.Products()
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No products found")
		return nil
	}
	for _, p := range list {
		fmt.Fprintf(a.out, "%6d  %-32s %10.2f\n", p.ID, p.Name, p.Price)
	}
	fmt.Fprintf(a.out, "page %d, %d per page, %d total\n", a.products.Page(), a.products.PageSize(), a.products.Total())
	return nil
}

func (a *App) Product(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("product <id>")
	}
	id, ok := parseID(args[0])
	if !ok {
		return usage("product <id>")
	}

	a.products.FetchProduct(ctx, id)
	p := a.products.Current()
	if p == nil {
		fmt.Fprintln(a.out, "Cannot load product:", a.products.Error())
		return nil
	}

	fmt.Fprintf(a.out, "#%d %s\n", p.ID, p.Name)
	fmt.Fprintf(a.out, "Price: %.2f\n", p.Price)
	if p.Description != "" {
		fmt.Fprintln(a.out, p.Description)
	}
	return nil
}

// Cart reloads the cart of the current session and prints it.
func (a *App) Cart(ctx context.Context) error {
	a.cart.Load(ctx)
	a.printCart()
	return nil
}

func (a *App) printCart() {
	st := a.cart.State()
	if st.Error != "" {
		fmt.Fprintln(a.out, "Cart error:", st.Error)
	}
	if len(st.Items) == 0 {
		fmt.Fprintln(a.out, "Cart is empty")
		return
	}

	loggedIn := a.isLoggedIn()
	for _, it := range st.Items {
		key := it.ProductID
		if loggedIn {
			key = it.ItemID
		}
		name, price := fmt.Sprintf("product %d", it.ProductID), "-"
		if it.Product != nil {
			name = it.Product.Name
			price = fmt.Sprintf("%.2f", it.Product.Price)
		}
		fmt.Fprintf(a.out, "%6d  %-32s x%-4d %10s\n", key, name, it.Quantity, price)
	}
	fmt.Fprintf(a.out, "%d item(s), total %.2f\n", models.ItemCount(st.Items), models.TotalPrice(st.Items))
}

func (a *App) Add(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("add <productId> [qty]")
	}
	productID, ok := parseID(args[0])
	if !ok {
		return usage("add <productId> [qty]")
	}
	qty := 1
	if len(args) == 2 {
		var err error
		if qty, err = strconv.Atoi(args[1]); err != nil {
			return usage("add <productId> [qty]")
		}
	}

	a.cart.AddOrUpdate(ctx, productID, qty)
	a.printCart()
	return nil
}

// itemRef maps the id shown in the cart listing to a reference for the
// current session mode.
func (a *App) itemRef(id int64) services.CartItemRef {
	if a.isLoggedIn() {
		return services.CartItemRef{ItemID: id}
	}
	return services.CartItemRef{ProductID: id}
}

func (a *App) Update(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("update <id> <qty>")
	}
	id, ok := parseID(args[0])
	if !ok {
		return usage("update <id> <qty>")
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return usage("update <id> <qty>")
	}

	a.cart.UpdateQuantity(ctx, a.itemRef(id), qty)
	a.printCart()
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("remove <id>")
	}
	id, ok := parseID(args[0])
	if !ok {
		return usage("remove <id>")
	}

	a.cart.Remove(ctx, a.itemRef(id))
	a.printCart()
	return nil
}

// Clear empties the guest cart. The account cart lives on the server and is
// emptied item by item.
func (a *App) Clear(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "clear works on the guest cart only, use remove")
		return nil
	}
	if err := a.cart.ClearGuestCart(ctx); err != nil {
		return err
	}
	a.cart.Load(ctx)
	a.printCart()
	return nil
}
