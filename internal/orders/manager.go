package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"velora_back_end/internal/account"
	"velora_back_end/internal/cart"
	"velora_back_end/internal/catalog"
	"velora_back_end/internal/kvstore"
	"velora_back_end/internal/models"
	"velora_back_end/internal/pricing"
	"velora_back_end/internal/session"
)

var (
	ErrEmptyCart         = errors.New("le panier est vide")
	ErrOrderNotFound     = errors.New("commande introuvable")
	ErrInvalidTransition = errors.New("transition de statut invalide")
)

// OrderIDPrefix est le format externe des identifiants de commande.
// Il est conservé tel quel pour que les identifiants déjà émis restent
// traçables.
const OrderIDPrefix = "ORD-"

// Manager orchestre le cycle de vie des commandes. Une commande est indexée
// à deux endroits : dans l'historique du compte propriétaire (si connecté)
// et, inconditionnellement, dans l'index global plat all_orders qui sert au
// suivi des invités. Les deux index sont tenus cohérents à chaque mutation.
type Manager struct {
	durable  kvstore.Store
	registry *account.Registry
	catalog  *catalog.Catalog
}

func NewManager(durable kvstore.Store, registry *account.Registry, cat *catalog.Catalog) *Manager {
	return &Manager{durable: durable, registry: registry, catalog: cat}
}

// All charge l'index global plat (append-only hors suppression explicite).
func (m *Manager) All(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if _, err := kvstore.LoadJSON(ctx, m.durable, kvstore.KeyAllOrders, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (m *Manager) saveAll(ctx context.Context, orders []models.Order) error {
	return kvstore.SaveJSON(ctx, m.durable, kvstore.KeyAllOrders, orders)
}

// nextOrderID dérive le suffixe des 6 derniers chiffres de l'horloge, puis
// l'incrémente (modulo 10^6) tant qu'il collisionne avec l'index global.
// Le format externe ORD-xxxxxx ne change pas.
func (m *Manager) nextOrderID(ctx context.Context) (string, error) {
	existing, err := m.All(ctx)
	if err != nil {
		return "", err
	}
	taken := make(map[string]bool, len(existing))
	for _, o := range existing {
		taken[o.ID] = true
	}

	suffix := time.Now().UnixMilli() % 1_000_000
	for {
		id := fmt.Sprintf("%s%06d", OrderIDPrefix, suffix)
		if !taken[id] {
			return id, nil
		}
		suffix = (suffix + 1) % 1_000_000
	}
}

// PlaceOrder fige le panier et les totaux dans une commande, l'indexe des
// deux côtés puis vide le panier. L'envoi de l'email de confirmation est
// l'affaire de l'appelant : son échec ne remet jamais la commande en cause.
func (m *Manager) PlaceOrder(ctx context.Context, sess *session.Session, eng *cart.Engine, totals pricing.Totals) (models.Order, error) {
	c, err := eng.Get(ctx)
	if err != nil {
		return models.Order{}, err
	}
	if len(c.Items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	id, err := m.nextOrderID(ctx)
	if err != nil {
		return models.Order{}, err
	}

	// Rating et nombre d'avis repris du catalogue au moment du placement.
	products, err := m.catalog.Products(ctx)
	if err != nil {
		return models.Order{}, err
	}
	byID := make(map[int]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]models.OrderItem, 0, len(c.Items))
	for _, line := range c.Items {
		item := models.OrderItem{CartItem: line}
		if p, ok := byID[line.ProductID]; ok {
			item.Rating = p.Rating
			item.Reviews = p.Reviews
		}
		items = append(items, item)
	}

	order := models.Order{
		ID:     id,
		Date:   time.Now(),
		Status: models.StatusProcessing,
		Total:  totals.Total,
		Items:  items,
	}

	// Historique du compte si connecté ; les invités n'ont que l'index global.
	if err := m.registry.AddOrder(ctx, sess, order); err != nil && !errors.Is(err, account.ErrNoActiveAccount) {
		return models.Order{}, err
	}

	all, err := m.All(ctx)
	if err != nil {
		return models.Order{}, err
	}
	all = append(all, order)
	if err := m.saveAll(ctx, all); err != nil {
		return models.Order{}, err
	}

	if err := eng.Clear(ctx); err != nil {
		return models.Order{}, err
	}

	log.Printf("✅ Commande %s placée (%d articles, total %.2f)", order.ID, len(order.Items), order.Total)
	return order, nil
}

// FindOrder cherche dans l'ordre : l'index global, le compte de la session,
// puis tous les comptes du registre. Un identifiant inconnu mais au format
// ORD- obtient une commande placeholder en Processing : les invités
// détiennent des identifiants émis avant l'index durable, le suivi doit
// dégrader au lieu d'échouer.
func (m *Manager) FindOrder(ctx context.Context, sess *session.Session, orderID string) (models.Order, error) {
	orderID = strings.TrimSpace(orderID)

	all, err := m.All(ctx)
	if err != nil {
		return models.Order{}, err
	}
	for _, o := range all {
		if o.ID == orderID {
			return o, nil
		}
	}

	if user, err := sess.CurrentUser(ctx); err == nil && user != nil {
		for _, o := range user.Orders {
			if o.ID == orderID {
				return o, nil
			}
		}
	}

	users, err := m.registry.Users(ctx)
	if err != nil {
		return models.Order{}, err
	}
	for _, u := range users {
		for _, o := range u.Orders {
			if o.ID == orderID {
				return o, nil
			}
		}
	}

	if strings.HasPrefix(orderID, OrderIDPrefix) {
		return models.Order{
			ID:     orderID,
			Date:   time.Now(),
			Status: models.StatusProcessing,
			Total:  0,
			Items:  []models.OrderItem{},
		}, nil
	}

	return models.Order{}, ErrOrderNotFound
}

// AdvanceStatus fait progresser le statut (action admin). La machine est
// linéaire et sans retour : Processing → Shipped → Delivered. La mise à jour
// touche l'index global et l'historique du compte propriétaire.
func (m *Manager) AdvanceStatus(ctx context.Context, orderID string, next models.OrderStatus) error {
	if !next.Valid() {
		return ErrInvalidTransition
	}

	all, err := m.All(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range all {
		if all[i].ID == orderID {
			if !all[i].Status.CanAdvanceTo(next) {
				return ErrInvalidTransition
			}
			all[i].Status = next
			found = true
			break
		}
	}
	if !found {
		return ErrOrderNotFound
	}
	if err := m.saveAll(ctx, all); err != nil {
		return err
	}

	users, err := m.registry.Users(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i := range users {
		for j := range users[i].Orders {
			if users[i].Orders[j].ID == orderID {
				users[i].Orders[j].Status = next
				changed = true
			}
		}
	}
	if changed {
		if err := kvstore.SaveJSON(ctx, m.durable, kvstore.KeyUsers, users); err != nil {
			return err
		}
	}

	log.Printf("📦 Commande %s → %s", orderID, next)
	return nil
}

// DeleteOrder retire la commande de l'historique du compte actif ET de
// l'index global : les deux index restent cohérents.
func (m *Manager) DeleteOrder(ctx context.Context, sess *session.Session, orderID string) error {
	if err := m.registry.DeleteOrder(ctx, sess, orderID); err != nil {
		return err
	}

	all, err := m.All(ctx)
	if err != nil {
		return err
	}
	kept := make([]models.Order, 0, len(all))
	for _, o := range all {
		if o.ID != orderID {
			kept = append(kept, o)
		}
	}
	return m.saveAll(ctx, kept)
}
