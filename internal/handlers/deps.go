package handlers

import (
	"velora_back_end/internal/account"
	"velora_back_end/internal/catalog"
	"velora_back_end/internal/kvstore"
	"velora_back_end/internal/notify"
	"velora_back_end/internal/orders"
)

// Composants partagés par les handlers, câblés au démarrage sur le scope
// durable du store.
var (
	Registry *account.Registry
	Catalog  *catalog.Catalog
	Orders   *orders.Manager
	Notifier *notify.Sender
)

func Init(durable kvstore.Store) {
	Registry = account.NewRegistry(durable)
	Catalog = catalog.New(durable)
	Orders = orders.NewManager(durable, Registry, Catalog)
	Notifier = notify.NewSender()
}
