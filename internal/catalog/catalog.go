package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"

	"velora_back_end/internal/kvstore"
	"velora_back_end/internal/models"
)

var ErrProductNotFound = errors.New("produit introuvable")

func floatPtr(v float64) *float64 { return &v }

// Catalogue de départ, écrit dans le store au premier démarrage.
var defaultProducts = []models.Product{
	{
		ID:            1,
		Name:          "Premium Wireless Headphones",
		Price:         299.99,
		OriginalPrice: floatPtr(399.99),
		Image:         "https://images.unsplash.com/photo-1560718217-69193acc0713?w=400&auto=format&fit=crop&q=80",
		Rating:        4.8,
		Reviews:       124,
		Category:      "Electronics",
		Badge:         "Best Seller",
		Stock:         1,
	},
	{
		ID:            2,
		Name:          "Modern Laptop Stand",
		Price:         89.99,
		OriginalPrice: floatPtr(129.99),
		Image:         "https://images.unsplash.com/photo-1621570273800-1b50b0173a97?w=400&auto=format&fit=crop&q=80",
		Rating:        4.6,
		Reviews:       89,
		Category:      "Electronics",
		Badge:         "Sale",
		Stock:         1,
	},
	{
		ID:            3,
		Name:          "Stylish Fashion Top",
		Price:         49.99,
		OriginalPrice: floatPtr(79.99),
		Image:         "https://images.unsplash.com/photo-1601831000466-bad7b107a1bf?w=400&auto=format&fit=crop&q=80",
		Rating:        4.7,
		Reviews:       156,
		Category:      "Fashion",
		Badge:         "New",
		Stock:         1,
	},
	{
		ID:            4,
		Name:          "Comfortable Lounge Chair",
		Price:         599.99,
		OriginalPrice: floatPtr(799.99),
		Image:         "https://images.unsplash.com/photo-1761914572005-153d4f018290?w=400&auto=format&fit=crop&q=80",
		Rating:        4.9,
		Reviews:       67,
		Category:      "Home & Decor",
		Badge:         "Premium",
		Stock:         1,
	},
}

var defaultCategories = []models.Category{
	{Name: "Electronics", Image: "https://images.unsplash.com/photo-1550009158-9ebf69173e03?w=200&auto=format&fit=crop&q=80"},
	{Name: "Fashion", Image: "https://images.unsplash.com/photo-1445205170230-053b830c6050?w=200&auto=format&fit=crop&q=80"},
	{Name: "Home & Decor", Image: "https://images.unsplash.com/photo-1513519245088-0e12902e5a38?w=200&auto=format&fit=crop&q=80"},
}

// Catalog expose le catalogue produit au-dessus du scope durable.
// Le catalogue entier vit sous une seule clé JSON : le filtrage et le tri
// se font en mémoire, il n'y a pas d'index de recherche.
type Catalog struct {
	durable kvstore.Store
}

func New(durable kvstore.Store) *Catalog {
	return &Catalog{durable: durable}
}

// Products charge le catalogue, en le semant au premier accès et en
// appliquant la passe de réparation des anciens enregistrements : un stock
// resté au placeholder 10 d'une migration précédente est ramené à 1
// (un stock absent décode naturellement à 0, la valeur par défaut).
// Le semis ne se déclenche que si la clé n'a jamais été écrite : un
// catalogue vidé par l'admin reste vide.
func (c *Catalog) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	found, err := kvstore.LoadJSON(ctx, c.durable, kvstore.KeyProducts, &products)
	if err != nil {
		return nil, err
	}
	if !found {
		products = append([]models.Product{}, defaultProducts...)
		if err := c.saveProducts(ctx, products); err != nil {
			return nil, err
		}
		return products, nil
	}
	if products == nil {
		products = []models.Product{}
	}

	repaired := false
	for i := range products {
		if products[i].Stock == 10 {
			products[i].Stock = 1
			repaired = true
		}
	}
	if repaired {
		if err := c.saveProducts(ctx, products); err != nil {
			return nil, err
		}
	}
	return products, nil
}

// FindProduct retourne le produit par identifiant.
func (c *Catalog) FindProduct(ctx context.Context, id int) (models.Product, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// AddProduct insère un produit avec le prochain identifiant libre.
func (c *Catalog) AddProduct(ctx context.Context, p models.Product) (models.Product, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return models.Product{}, err
	}

	maxID := 0
	for _, existing := range products {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	p.ID = maxID + 1
	if p.Stock < 0 {
		p.Stock = 0
	}

	products = append(products, p)
	if err := c.saveProducts(ctx, products); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// UpdateProduct remplace le produit portant p.ID.
func (c *Catalog) UpdateProduct(ctx context.Context, p models.Product) error {
	products, err := c.Products(ctx)
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == p.ID {
			products[i] = p
			return c.saveProducts(ctx, products)
		}
	}
	return ErrProductNotFound
}

// DeleteProduct retire le produit du catalogue.
func (c *Catalog) DeleteProduct(ctx context.Context, id int) error {
	products, err := c.Products(ctx)
	if err != nil {
		return err
	}
	kept := make([]models.Product, 0, len(products))
	found := false
	for _, p := range products {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return ErrProductNotFound
	}
	return c.saveProducts(ctx, kept)
}

// SetStock fixe le stock d'un produit (plancher à 0).
func (c *Catalog) SetStock(ctx context.Context, id, stock int) error {
	p, err := c.FindProduct(ctx, id)
	if err != nil {
		return err
	}
	if stock < 0 {
		stock = 0
	}
	p.Stock = stock
	return c.UpdateProduct(ctx, p)
}

func (c *Catalog) saveProducts(ctx context.Context, products []models.Product) error {
	return kvstore.SaveJSON(ctx, c.durable, kvstore.KeyProducts, products)
}

// Categories recalcule les agrégats de catégories à partir du catalogue :
// une entrée par catégorie rencontrée, comptage par produit, images reprises
// des catégories par défaut quand elles existent.
func (c *Catalog) Categories(ctx context.Context) ([]models.Category, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return nil, err
	}

	var stored []models.Category
	if _, err := kvstore.LoadJSON(ctx, c.durable, kvstore.KeyCategories, &stored); err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		stored = append([]models.Category{}, defaultCategories...)
	}

	images := map[string]string{}
	for _, cat := range stored {
		images[cat.Name] = cat.Image
	}

	counts := map[string]int{}
	order := []string{}
	for _, p := range products {
		if _, seen := counts[p.Category]; !seen {
			order = append(order, p.Category)
		}
		counts[p.Category]++
	}

	categories := make([]models.Category, 0, len(order))
	for _, name := range order {
		categories = append(categories, models.Category{
			Name:  name,
			Image: images[name],
			Count: counts[name],
		})
	}

	if err := kvstore.SaveJSON(ctx, c.durable, kvstore.KeyCategories, categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// BrowseOptions reprend les filtres de la page produits.
type BrowseOptions struct {
	Search   string
	Category string
	MinPrice float64
	MaxPrice float64
	SortBy   string // featured | price-low | price-high | rating | newest
}

// Browse filtre puis trie le catalogue en mémoire.
func (c *Catalog) Browse(ctx context.Context, opts BrowseOptions) ([]models.Product, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if opts.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(opts.Search)) {
			continue
		}
		if opts.Category != "" && opts.Category != "all" && p.Category != opts.Category {
			continue
		}
		if p.Price < opts.MinPrice {
			continue
		}
		if opts.MaxPrice > 0 && p.Price > opts.MaxPrice {
			continue
		}
		filtered = append(filtered, p)
	}

	switch opts.SortBy {
	case "price-low":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case "price-high":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	case "rating":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Rating > filtered[j].Rating })
	case "newest":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].ID > filtered[j].ID })
	default:
		// "featured" : ordre du catalogue
	}

	return filtered, nil
}
