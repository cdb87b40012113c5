// Command storefront is a terminal client for the shop API: browse and filter
// the catalog, manage products, place orders, look them up by id or email,
// and cancel them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"storefront/internal/domain"
	"storefront/internal/storefront"
)

func main() {
	var (
		addr     = flag.String("addr", "http://localhost:8080", "API base URL")
		category = flag.String("category", storefront.CategoryAll, "category filter for -products")
		search   = flag.String("search", "", "text filter for -products")
		products = flag.Bool("products", false, "list the catalog")
		orderID  = flag.String("order-id", "", "look up one order by id")
		email    = flag.String("email", "", "look up orders by buyer email")
		cancel   = flag.String("cancel", "", "cancel the order with this id")

		addProduct    = flag.Bool("add-product", false, "create a product from the -name/-description/-price/-image flags")
		updateProduct = flag.String("update-product", "", "replace the product with this id from the same flags")
		deleteProduct = flag.String("delete-product", "", "delete the product with this id")
		placeOrder    = flag.String("place-order", "", "order the product with this id using the -buyer-* and -qty flags")

		name        = flag.String("name", "", "product name")
		description = flag.String("description", "", "product description")
		price       = flag.String("price", "", "product price")
		image       = flag.String("image", "", "product image URL")
		prodCat     = flag.String("product-category", "", "product category")

		buyerName    = flag.String("buyer-name", "", "buyer name")
		buyerEmail   = flag.String("buyer-email", "", "buyer email")
		buyerAddress = flag.String("buyer-address", "", "buyer address")
		buyerCell    = flag.String("buyer-cell", "", "buyer phone number")
		qty          = flag.String("qty", "1", "order quantity")
	)
	flag.Parse()

	client := storefront.NewClient(*addr, 10*time.Second)
	ctx, stop := context.WithTimeout(context.Background(), 30*time.Second)
	defer stop()

	form := storefront.ProductForm{
		Name:        *name,
		Description: *description,
		Price:       *price,
		ImageURL:    *image,
		Category:    *prodCat,
	}

	switch {
	case *products:
		listProducts(ctx, client, *category, *search)
	case *addProduct:
		p, err := client.CreateProduct(ctx, form)
		if err != nil {
			log.Fatalf("create product: %v", err)
		}
		fmt.Printf("product %s created\n", p.ID)
	case *updateProduct != "":
		p, err := client.UpdateProduct(ctx, *updateProduct, form)
		if err != nil {
			log.Fatalf("update product: %v", err)
		}
		fmt.Printf("product %s updated\n", p.ID)
	case *deleteProduct != "":
		if err := client.DeleteProduct(ctx, *deleteProduct); err != nil {
			log.Fatalf("delete product: %v", err)
		}
		fmt.Printf("product %s deleted\n", *deleteProduct)
	case *placeOrder != "":
		o, err := client.PlaceOrder(ctx, storefront.OrderForm{
			ProductID:    *placeOrder,
			BuyerName:    *buyerName,
			BuyerEmail:   *buyerEmail,
			BuyerAddress: *buyerAddress,
			BuyerCell:    *buyerCell,
			Quantity:     *qty,
		})
		if err != nil {
			log.Fatalf("place order: %v", err)
		}
		fmt.Printf("order placed, id %s (status %s)\n", o.ID, o.Status)
	case *orderID != "":
		showOrders(ctx, client, storefront.SearchByID, *orderID)
	case *email != "":
		showOrders(ctx, client, storefront.SearchByEmail, *email)
	case *cancel != "":
		cancelOrder(ctx, client, *cancel)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func listProducts(ctx context.Context, client *storefront.Client, category, search string) {
	all, err := client.Products(ctx)
	if err != nil {
		log.Fatalf("fetch products: %v", err)
	}
	catalog := storefront.NewCatalog(all)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tCATEGORY\tDESCRIPTION")
	for _, p := range catalog.Filter(category, search) {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n", p.ID, p.Name, p.Price, p.Category, p.Description)
	}
	w.Flush()
	fmt.Printf("categories: %v\n", catalog.Categories())
}

func showOrders(ctx context.Context, client *storefront.Client, mode storefront.SearchMode, value string) {
	view := storefront.NewOrderView(client)
	orders, err := view.Search(ctx, mode, value)
	if err != nil {
		log.Fatalf("fetch orders: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRODUCT\tQTY\tSTATUS\tPLACED\tCANCELLABLE")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%v\n",
			o.ID, productName(o), o.Quantity, o.Status,
			o.CreatedAt.Format("2006-01-02"), storefront.CanCancel(o))
	}
	w.Flush()
}

func productName(o domain.Order) string {
	if o.ProductUnavailable {
		return "(unavailable)"
	}
	if o.Product != nil {
		return o.Product.Name
	}
	return "-"
}

func cancelOrder(ctx context.Context, client *storefront.Client, id string) {
	view := storefront.NewOrderView(client)
	if _, err := view.Search(ctx, storefront.SearchByID, id); err != nil {
		log.Fatalf("fetch order: %v", err)
	}
	if err := view.Cancel(ctx, id); err != nil {
		log.Fatalf("cancel order: %v", err)
	}
	fmt.Printf("order %s cancelled\n", id)
}
