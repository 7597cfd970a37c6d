package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thestorefront/storefront-engine/internal/renderer"
	"github.com/thestorefront/storefront-engine/pkg/richtext"
)

const (
	defaultServerURL = "http://localhost:12712"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	priceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	offerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Strikethrough(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

func main() {
	var serverURL string
	flag.StringVar(&serverURL, "server", defaultServerURL, "Server URL")
	flag.StringVar(&serverURL, "s", defaultServerURL, "Server URL (short)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	client := &client{baseURL: strings.TrimSuffix(serverURL, "/")}

	var err error
	switch args[0] {
	case "products":
		err = client.listProducts()
	case "product":
		if len(args) < 2 {
			err = fmt.Errorf("usage: product <slug>")
		} else {
			err = client.showProduct(args[1])
		}
	case "cart":
		err = runCart(client, args[1:])
	case "checkout":
		err = client.checkout()
	case "render":
		if len(args) < 2 {
			err = fmt.Errorf("usage: render <file>")
		} else {
			err = renderLocal(args[1])
		}
	case "help":
		printUsage()
	default:
		printUsage()
		err = fmt.Errorf("unknown command: %s", args[0])
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func runCart(c *client, args []string) error {
	if len(args) == 0 {
		return c.showCart()
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: cart add <product-id> [quantity]")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid product id: %s", args[1])
		}
		qty := 1
		if len(args) >= 3 {
			if qty, err = strconv.Atoi(args[2]); err != nil {
				return fmt.Errorf("invalid quantity: %s", args[2])
			}
		}
		return c.addItem(id, qty)

	case "set":
		if len(args) < 3 {
			return fmt.Errorf("usage: cart set <product-id> <quantity>")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid product id: %s", args[1])
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid quantity: %s", args[2])
		}
		return c.setQuantity(id, qty)

	case "remove":
		if len(args) < 2 {
			return fmt.Errorf("usage: cart remove <product-id>")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid product id: %s", args[1])
		}
		return c.removeItem(id)

	case "clear":
		return c.clearCart()

	default:
		return fmt.Errorf("unknown cart command: %s", args[0])
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Storefront Engine CLI

Usage:
  storefront-cli [flags] <command>

Flags:
  -s, -server <url>    Server URL (default: %s)

Commands:
  products
    List the product catalog

  product <slug>
    Show one product, with its rendered description

  cart
    Show the current cart

  cart add <product-id> [quantity]
    Add a product to the cart (default quantity: 1)

  cart set <product-id> <quantity>
    Set a cart line's quantity

  cart remove <product-id>
    Remove a line from the cart

  cart clear
    Empty the cart

  checkout
    Place an order from the current cart

  render <file>
    Render a rich-text document file to HTML locally (no server needed)

  help
    Show this message

Examples:
  storefront-cli products
  storefront-cli product canvas-tote
  storefront-cli cart add 42 2
  storefront-cli -s http://localhost:8080 checkout
  storefront-cli render description.json

`, defaultServerURL)
}

type client struct {
	baseURL string
}

func (c *client) get(path string, out any) error {
	resp, err := http.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func (c *client) send(method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = strings.NewReader(string(data))
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return fmt.Errorf("%s", e.Error)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

type productView struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Brand      string  `json:"brand"`
	Price      float64 `json:"price"`
	OfferPrice float64 `json:"offer_price"`
	SKU        string  `json:"sku"`
	Slug       string  `json:"slug"`
	IsInStock  bool    `json:"is_in_stock"`
}

type cartView struct {
	Lines []struct {
		ProductID int     `json:"id"`
		Name      string  `json:"name"`
		UnitPrice float64 `json:"price"`
		Quantity  int     `json:"quantity"`
	} `json:"lines"`
	Subtotal float64 `json:"subtotal"`
}

func (c *client) listProducts() error {
	var resp struct {
		Products []productView `json:"products"`
	}
	if err := c.get("/products", &resp); err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Products"))
	if len(resp.Products) == 0 {
		fmt.Println(subtleStyle.Render("  (catalog is empty)"))
		return nil
	}

	for _, p := range resp.Products {
		stock := ""
		if !p.IsInStock {
			stock = errorStyle.Render("  out of stock")
		}
		fmt.Printf("  %s  %s%s\n",
			labelStyle.Render(fmt.Sprintf("#%-4d", p.ID)),
			p.Name,
			stock,
		)
		fmt.Printf("        %s  %s  %s\n",
			subtleStyle.Render(p.Slug),
			formatPrice(p.Price, p.OfferPrice),
			subtleStyle.Render(p.SKU),
		)
	}
	return nil
}

func (c *client) showProduct(slug string) error {
	var resp struct {
		Product         productView `json:"product"`
		DescriptionHTML string      `json:"description_html"`
	}
	if err := c.get("/product/"+slug, &resp); err != nil {
		return err
	}
	p := resp.Product

	fmt.Println(titleStyle.Render(p.Name))
	fmt.Printf("%s %s\n", labelStyle.Render("Brand:"), p.Brand)
	fmt.Printf("%s %s\n", labelStyle.Render("Price:"), formatPrice(p.Price, p.OfferPrice))
	fmt.Printf("%s %s\n", labelStyle.Render("SKU:"), p.SKU)
	if !p.IsInStock {
		fmt.Println(errorStyle.Render("Out of stock"))
	}
	if resp.DescriptionHTML != "" {
		fmt.Println()
		fmt.Println(labelStyle.Render("Description (HTML):"))
		fmt.Println(resp.DescriptionHTML)
	}
	return nil
}

func (c *client) showCart() error {
	var cart cartView
	if err := c.get("/cart", &cart); err != nil {
		return err
	}
	printCart(cart)
	return nil
}

func (c *client) addItem(productID, quantity int) error {
	var cart cartView
	err := c.send(http.MethodPost, "/cart/items",
		map[string]int{"product_id": productID, "quantity": quantity}, &cart)
	if err != nil {
		return err
	}
	printCart(cart)
	return nil
}

func (c *client) setQuantity(productID, quantity int) error {
	var cart cartView
	err := c.send(http.MethodPut, fmt.Sprintf("/cart/items/%d", productID),
		map[string]int{"quantity": quantity}, &cart)
	if err != nil {
		return err
	}
	printCart(cart)
	return nil
}

func (c *client) removeItem(productID int) error {
	var cart cartView
	err := c.send(http.MethodDelete, fmt.Sprintf("/cart/items/%d", productID), nil, &cart)
	if err != nil {
		return err
	}
	printCart(cart)
	return nil
}

func (c *client) clearCart() error {
	var cart cartView
	if err := c.send(http.MethodPost, "/cart/clear", nil, &cart); err != nil {
		return err
	}
	fmt.Println("Cart cleared")
	return nil
}

func (c *client) checkout() error {
	var resp struct {
		OrderID  string  `json:"order_id"`
		Subtotal float64 `json:"subtotal"`
	}
	if err := c.send(http.MethodPost, "/checkout", nil, &resp); err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Order placed"))
	fmt.Printf("%s %s\n", labelStyle.Render("Order ID:"), resp.OrderID)
	fmt.Printf("%s %s\n", labelStyle.Render("Subtotal:"), priceStyle.Render(fmt.Sprintf("%.2f", resp.Subtotal)))
	return nil
}

func printCart(cart cartView) {
	fmt.Println(titleStyle.Render("Cart"))
	if len(cart.Lines) == 0 {
		fmt.Println(subtleStyle.Render("  (empty)"))
		return
	}

	for _, line := range cart.Lines {
		fmt.Printf("  %s  %-30s %s x %d = %s\n",
			labelStyle.Render(fmt.Sprintf("#%-4d", line.ProductID)),
			line.Name,
			priceStyle.Render(fmt.Sprintf("%.2f", line.UnitPrice)),
			line.Quantity,
			priceStyle.Render(fmt.Sprintf("%.2f", line.UnitPrice*float64(line.Quantity))),
		)
	}
	fmt.Printf("\n  %s %s\n",
		labelStyle.Render("Subtotal:"),
		priceStyle.Render(fmt.Sprintf("%.2f", cart.Subtotal)),
	)
}

func formatPrice(price, offer float64) string {
	if offer > 0 && offer != price {
		return fmt.Sprintf("%s %s",
			priceStyle.Render(fmt.Sprintf("%.2f", offer)),
			offerStyle.Render(fmt.Sprintf("%.2f", price)),
		)
	}
	return priceStyle.Render(fmt.Sprintf("%.2f", price))
}

// renderLocal renders a rich-text document file without talking to a server
func renderLocal(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	docs := renderer.NewDocumentRenderer(nil)
	frag := docs.Render(json.RawMessage(data))
	fmt.Println(frag.HTML())

	// Validation problems do not block rendering, but surface them.
	if doc, perr := richtext.Parse(data); perr != nil {
		fmt.Fprintln(os.Stderr, subtleStyle.Render("note: "+perr.Error()))
	} else if doc.IsEmpty() {
		fmt.Fprintln(os.Stderr, subtleStyle.Render("note: document has no content"))
	}
	return nil
}
