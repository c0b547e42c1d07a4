package testutil

import "github.com/leapstack-labs/sqlassist/pkg/catalog"

// SampleSchema returns a small two-database shop schema.
//
//	shop.users(id, username, user_email, created_at)
//	shop.orders(id, user_id, total, status)
//	shop.order_items(order_id, sku, quantity)
//	analytics.events(id, user_id, name, payload)
func SampleSchema() *catalog.Schema {
	s := catalog.NewSchema()

	shop := s.AddDatabase("shop").WithComment("Online store")
	shop.AddTable("users").
		AddColumn("id", "int").
		AddColumn("username", "varchar").
		AddColumn("user_email", "varchar").
		AddColumn("created_at", "timestamp").
		WithPrimaryKey("id").
		WithComment("Registered users")
	shop.AddTable("orders").
		AddColumn("id", "int").
		AddColumn("user_id", "int").
		AddColumn("total", "decimal").
		AddColumn("status", "varchar").
		WithPrimaryKey("id").
		WithForeignKey("user_id", "users", "id")
	shop.AddTable("order_items").
		AddColumn("order_id", "int").
		AddColumn("sku", "varchar").
		AddColumn("quantity", "int").
		WithForeignKey("order_id", "orders", "id")

	s.AddDatabase("analytics").AddTable("events").
		AddColumn("id", "bigint").
		AddColumn("user_id", "int").
		AddColumn("name", "varchar").
		AddColumn("payload", "json")

	return s
}

// SampleCatalog returns a catalog holding SampleSchema.
func SampleCatalog() *catalog.Catalog {
	c := catalog.New(catalog.Options{})
	c.RegisterSchema(SampleSchema())
	return c
}
