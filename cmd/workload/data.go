package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Value pools for the synthetic ecommerce records. Low-cardinality columns
// draw from fixed sets so the demo tables aggregate the way real ones do.
var (
	genders           = []string{"male", "female", "non_binary", "prefer_not_to_say"}
	accountStatuses   = []string{"active", "inactive", "suspended", "pending_verification"}
	preferredChannels = []string{"email", "sms", "push", "mail", "phone"}
	customerSegments  = []string{"new", "regular", "vip", "churned", "at_risk", "high_value"}
	loyaltyTiers      = []string{"bronze", "silver", "gold", "platinum", "diamond"}
	orderStatuses     = []string{"pending", "confirmed", "processing", "shipped", "delivered", "cancelled", "refunded"}
	paymentMethods    = []string{"credit_card", "debit_card", "paypal", "apple_pay", "google_pay", "bank_transfer", "crypto"}
	shippingMethods   = []string{"standard", "express", "overnight", "economy", "pickup"}
	shippingCarriers  = []string{"fedex", "ups", "usps", "dhl", "amazon_logistics", "ontrac"}
	sourceChannels    = []string{"organic", "paid_search", "social", "email", "referral", "direct", "affiliate"}
	pageTypes         = []string{"home", "category", "product", "search", "cart", "checkout", "account", "blog", "about", "contact"}
	deviceTypes       = []string{"desktop", "mobile", "tablet"}
	browsers          = []string{"chrome", "safari", "firefox", "edge", "opera", "samsung_browser"}
	operatingSystems  = []string{"windows", "macos", "ios", "android", "linux"}
	cartStatuses      = []string{"active", "abandoned", "converted", "expired"}
	currencies        = []string{"USD", "EUR", "GBP", "CAD", "AUD"}
	productCategories = []string{"electronics", "clothing", "home_garden", "sports", "books", "beauty", "toys", "food", "automotive"}
	countries         = []string{"US", "UK", "CA", "AU", "DE", "FR", "JP", "BR"}

	firstNames = []string{"Olivia", "Liam", "Emma", "Noah", "Amelia", "Oliver", "Sophia", "Elijah", "Charlotte", "James", "Isabella", "William", "Mia", "Henry", "Evelyn", "Lucas"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Wilson", "Moore", "Taylor", "Anderson", "Thomas", "Jackson", "White", "Harris"}
	cityNames  = []string{"Springfield", "Riverton", "Fairview", "Kingston", "Ashford", "Milton", "Dover", "Brighton", "Clayton", "Georgetown", "Arlington", "Burlington", "Salem", "Bristol", "Oxford", "Camden"}
	adjectives = []string{"ergonomic", "rustic", "sleek", "durable", "compact", "wireless", "premium", "handcrafted", "lightweight", "refurbished", "modular", "portable", "smart", "classic", "vintage", "foldable"}
	nouns      = []string{"widget", "gadget", "lamp", "desk", "jacket", "kettle", "speaker", "monitor", "backpack", "notebook", "blender", "camera", "charger", "headphones", "keyboard", "sneakers", "watch", "bottle", "tripod", "router"}

	emailDomains    = []string{"example.com", "example.org", "mail.example.com", "shop.example.net"}
	referrerDomains = []string{"google.com", "bing.com", "facebook.com", "instagram.com", "twitter.com", "reddit.com", "youtube.com"}
	utmSources      = []string{"google", "facebook", "newsletter", "instagram", "tiktok"}
	utmMediums      = []string{"cpc", "email", "social", "display"}
	utmCampaigns    = []string{"summer_sale", "new_arrivals", "clearance", "back_to_school", "loyalty"}
)

type product struct {
	ID       string
	Name     string
	Category string
	Price    float64
}

// products is the fixed demo catalog. Order items and product page views
// reference these IDs so joins across the four tables line up.
var products = func() []product {
	out := make([]product, 100)
	for i := range out {
		out[i] = product{
			ID:       fmt.Sprintf("PROD-%04d", i+1),
			Name:     pick(adjectives) + " " + pick(nouns),
			Category: pick(productCategories),
			Price:    round2(9.99 + rand.Float64()*490),
		}
	}
	return out
}()

var customerCols = []string{
	"customer_id", "email", "first_name", "last_name", "gender",
	"registration_date", "last_login_date", "account_status", "email_verified",
	"shipping_city", "shipping_country", "marketing_opt_in", "preferred_channel",
	"customer_segment", "total_orders", "total_spent", "average_order_value",
	"loyalty_points", "loyalty_tier", "created_at", "updated_at",
}

var orderCols = []string{
	"order_id", "order_number", "customer_id", "customer_email", "customer_segment",
	"order_status", "order_date", "shipped_date", "delivered_date",
	"subtotal", "tax_amount", "shipping_cost", "discount_amount", "total_amount",
	"currency", "payment_method", "payment_status",
	"shipping_method", "shipping_carrier", "tracking_number",
	"shipping_address_city", "shipping_address_country",
	"item_product_ids", "item_quantities", "item_unit_prices", "item_categories",
	"source_channel", "coupon_code", "created_at", "updated_at",
}

var pageViewCols = []string{
	"view_id", "session_id", "customer_id", "page_url", "page_path", "page_type",
	"product_id", "product_category", "product_price",
	"search_query", "search_results_count", "referrer_domain",
	"utm_source", "utm_medium", "utm_campaign",
	"device_type", "browser", "os", "geo_country", "geo_city",
	"page_load_time_ms", "time_on_page_seconds", "scroll_depth_percent",
	"clicks_count", "add_to_cart_clicked", "buy_now_clicked",
	"view_timestamp", "created_at",
}

var cartCols = []string{
	"cart_id", "session_id", "customer_id", "cart_status",
	"cart_created_at", "cart_updated_at", "cart_abandoned_at", "cart_converted_at",
	"converted_order_id",
	"item_product_ids", "item_quantities", "item_unit_prices",
	"items_count", "unique_items_count",
	"subtotal", "estimated_tax", "estimated_shipping", "discount_amount", "estimated_total",
	"currency", "source_channel", "device_type", "browser",
	"recovery_emails_sent", "created_at", "updated_at",
}

type customerRef struct {
	ID      string
	Email   string
	Segment string
}

// refPoolLimit bounds the in-memory customer and session pools; the process
// runs for days and only needs a recent sample to keep foreign keys plausible.
const refPoolLimit = 1000

// generator produces the synthetic records and queries. The reference pools
// are shared between the scheduled batch job and the query loop, so access
// goes through the mutex.
type generator struct {
	db     *sql.DB
	logger *slog.Logger

	mu        sync.Mutex
	customers []customerRef
	sessions  []string
}

func newGenerator(db *sql.DB, logger *slog.Logger) *generator {
	return &generator{db: db, logger: logger}
}

func (g *generator) noteCustomer(ref customerRef) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.customers = append(g.customers, ref)
	if len(g.customers) > refPoolLimit {
		g.customers = g.customers[len(g.customers)-refPoolLimit:]
	}
}

func (g *generator) randomCustomer() (customerRef, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.customers) == 0 {
		return customerRef{}, false
	}
	return g.customers[rand.IntN(len(g.customers))], true
}

func (g *generator) noteSession(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessions = append(g.sessions, id)
	if len(g.sessions) > refPoolLimit {
		g.sessions = g.sessions[len(g.sessions)-refPoolLimit:]
	}
}

func (g *generator) randomSession() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.sessions) == 0 {
		return "", false
	}
	return g.sessions[rand.IntN(len(g.sessions))], true
}

// seed pre-populates the demo tables so the first queries have rows to hit.
func (g *generator) seed(ctx context.Context, customers, pageViews int) error {
	if err := g.insertCustomers(ctx, customers); err != nil {
		return err
	}
	if err := g.insertPageViews(ctx, pageViews); err != nil {
		return err
	}
	g.logger.Info("seeded demo data", "customers", customers, "page_views", pageViews)
	return nil
}

// runBatch inserts one scheduled batch: a handful of page views and carts,
// one or two orders and an occasional new customer, in shuffled table order
// so the insert pattern varies between runs.
func (g *generator) runBatch(ctx context.Context) {
	type job struct {
		table string
		count int
		fn    func(context.Context, int) error
	}
	jobs := []job{
		{"page_views", randBetween(5, 8), g.insertPageViews},
		{"shopping_cart", randBetween(2, 4), g.insertCarts},
		{"orders", randBetween(1, 2), g.insertOrders},
	}
	if rand.IntN(2) == 1 {
		jobs = append(jobs, job{"customers", 1, g.insertCustomers})
	}
	rand.Shuffle(len(jobs), func(i, j int) { jobs[i], jobs[j] = jobs[j], jobs[i] })

	total := 0
	for _, j := range jobs {
		if err := j.fn(ctx, j.count); err != nil {
			g.logger.Warn("batch insert failed", "table", j.table, "error", err)
			continue
		}
		total += j.count
	}
	g.logger.Info("batch inserted", "records", total)
}

func (g *generator) insertCustomers(ctx context.Context, n int) error {
	now := time.Now()
	rows := make([][]any, 0, n)
	for range n {
		rows = append(rows, g.customerRow(now))
	}
	return g.insertBatch(ctx, "customers", customerCols, rows)
}

func (g *generator) insertOrders(ctx context.Context, n int) error {
	now := time.Now()
	rows := make([][]any, 0, n)
	for range n {
		rows = append(rows, g.orderRow(now))
	}
	return g.insertBatch(ctx, "orders", orderCols, rows)
}

func (g *generator) insertPageViews(ctx context.Context, n int) error {
	now := time.Now()
	rows := make([][]any, 0, n)
	for range n {
		rows = append(rows, g.pageViewRow(now))
	}
	return g.insertBatch(ctx, "page_views", pageViewCols, rows)
}

func (g *generator) insertCarts(ctx context.Context, n int) error {
	now := time.Now()
	rows := make([][]any, 0, n)
	for range n {
		rows = append(rows, g.cartRow(now))
	}
	return g.insertBatch(ctx, "shopping_cart", cartCols, rows)
}

// insertBatch sends rows through the driver's batch interface: a prepared
// insert inside a transaction buffers appends and Commit ships one block.
func (g *generator) insertBatch(ctx context.Context, table string, cols []string, rows [][]any) error {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s batch: %w", table, err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s)", table, strings.Join(cols, ", ")))
	if err != nil {
		return fmt.Errorf("prepare %s insert: %w", table, err)
	}
	defer stmt.Close() //nolint:errcheck

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("append %s row: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s batch: %w", table, err)
	}
	return nil
}

func (g *generator) customerRow(now time.Time) []any {
	id := uuid.NewString()
	first, last := pick(firstNames), pick(lastNames)
	email := strings.ToLower(first) + "." + strings.ToLower(last) + strconv.Itoa(rand.IntN(1000)) + "@" + pick(emailDomains)
	segment := pick(customerSegments)

	totalOrders := rand.IntN(6)
	if segment == "regular" || segment == "vip" || segment == "high_value" {
		totalOrders = rand.IntN(51)
	}
	totalSpent := 0.0
	avgOrder := 0.0
	if totalOrders > 0 {
		totalSpent = round2(rand.Float64() * 10000)
		avgOrder = round2(totalSpent / float64(totalOrders))
	}

	registered := now.Add(-time.Duration(rand.IntN(730*24)) * time.Hour)
	lastLogin := randTimeBetween(registered, now)

	g.noteCustomer(customerRef{ID: id, Email: email, Segment: segment})

	return []any{
		id, email, first, last, pick(genders),
		registered, lastLogin,
		weightedPick(accountStatuses, []float64{0.85, 0.08, 0.02, 0.05}),
		chance(0.9), pick(cityNames), pick(countries), chance(0.7),
		pick(preferredChannels), segment,
		uint32(totalOrders), totalSpent, avgOrder,
		uint32(rand.IntN(10001)), pick(loyaltyTiers),
		now, now,
	}
}

func (g *generator) orderRow(now time.Time) []any {
	cust, ok := g.randomCustomer()
	if !ok {
		cust = customerRef{ID: uuid.NewString(), Email: "guest@" + pick(emailDomains), Segment: "new"}
	}

	orderDate := randTimeBetween(now.Add(-7*24*time.Hour), now)
	status := weightedPick(orderStatuses, []float64{0.1, 0.15, 0.15, 0.2, 0.3, 0.07, 0.03})

	var shipped, delivered any
	if status == "shipped" || status == "delivered" {
		shippedAt := orderDate.Add(time.Duration(1+rand.IntN(3)) * 24 * time.Hour)
		shipped = shippedAt
		if status == "delivered" {
			delivered = shippedAt.Add(time.Duration(1+rand.IntN(5)) * 24 * time.Hour)
		}
	}

	items := sampleProducts(1 + rand.IntN(5))
	ids := make([]string, len(items))
	qtys := make([]uint32, len(items))
	prices := make([]float64, len(items))
	cats := make([]string, len(items))
	subtotal := 0.0
	for i, p := range items {
		q := 1 + rand.IntN(3)
		ids[i], qtys[i], prices[i], cats[i] = p.ID, uint32(q), p.Price, p.Category
		subtotal += p.Price * float64(q)
	}
	subtotal = round2(subtotal)

	tax := round2(subtotal * (0.05 + rand.Float64()*0.07))
	shippingCost := 0.0
	if subtotal < 50 {
		shippingCost = round2(4.99 + rand.Float64()*11)
	}
	discount := 0.0
	var coupon any
	if rand.Float64() > 0.7 {
		discount = round2(subtotal * rand.Float64() * 0.2)
		coupon = fmt.Sprintf("%s%d", pick([]string{"SAVE", "DEAL", "PROMO", "VIP"}), 5+5*rand.IntN(4))
	}
	total := round2(subtotal + tax + shippingCost - discount)

	paymentStatus := "completed"
	if status == "pending" || status == "cancelled" {
		paymentStatus = pick([]string{"pending", "failed"})
	}
	var tracking any
	if status == "shipped" || status == "delivered" {
		tracking = fmt.Sprintf("TRK-%012d", rand.Int64N(1_000_000_000_000))
	}

	return []any{
		uuid.NewString(), fmt.Sprintf("ORD-%s-%05d", orderDate.Format("20060102"), rand.IntN(100000)),
		cust.ID, cust.Email, cust.Segment,
		status, orderDate, shipped, delivered,
		subtotal, tax, shippingCost, discount, total,
		weightedPick(currencies, []float64{0.6, 0.15, 0.1, 0.08, 0.07}),
		pick(paymentMethods), paymentStatus,
		pick(shippingMethods), pick(shippingCarriers), tracking,
		pick(cityNames), pick(countries),
		ids, qtys, prices, cats,
		pick(sourceChannels), coupon,
		now, now,
	}
}

func (g *generator) pageViewRow(now time.Time) []any {
	session, ok := g.randomSession()
	if !ok || rand.Float64() < 0.7 {
		session = uuid.NewString()
		g.noteSession(session)
	}

	var customerID any
	if cust, ok := g.randomCustomer(); ok && rand.Float64() < 0.6 {
		customerID = cust.ID
	}

	pageType := weightedPick(pageTypes, []float64{0.2, 0.15, 0.3, 0.1, 0.08, 0.05, 0.04, 0.03, 0.02, 0.03})
	path := "/" + pageType
	var productID, productCategory, productPrice any
	var searchQuery, searchResults any
	switch pageType {
	case "home":
		path = "/"
	case "product":
		p := products[rand.IntN(len(products))]
		path = "/product/" + strings.ReplaceAll(p.Name, " ", "-") + "-" + strings.ToLower(p.ID)
		productID, productCategory, productPrice = p.ID, p.Category, p.Price
	case "category":
		path = "/category/" + pick(productCategories)
	case "search":
		searchQuery = pick(adjectives) + " " + pick(nouns)
		searchResults = uint32(rand.IntN(120))
	}

	var referrer, utmSource, utmMedium, utmCampaign any
	if rand.Float64() < 0.5 {
		referrer = pick(referrerDomains)
	}
	if rand.Float64() < 0.4 {
		utmSource = pick(utmSources)
		utmMedium = pick(utmMediums)
		utmCampaign = pick(utmCampaigns)
	}

	viewedAt := randTimeBetween(now.Add(-24*time.Hour), now)

	return []any{
		uuid.NewString(), session, customerID,
		"https://shop.example.com" + path, path, pageType,
		productID, productCategory, productPrice,
		searchQuery, searchResults, referrer,
		utmSource, utmMedium, utmCampaign,
		weightedPick(deviceTypes, []float64{0.45, 0.45, 0.1}),
		pick(browsers), pick(operatingSystems),
		pick(countries), pick(cityNames),
		uint32(80 + rand.IntN(4000)), uint32(rand.IntN(600)),
		uint8(rand.IntN(101)), uint8(rand.IntN(30)),
		chance(0.15), chance(0.05),
		viewedAt, now,
	}
}

func (g *generator) cartRow(now time.Time) []any {
	session, ok := g.randomSession()
	if !ok {
		session = uuid.NewString()
		g.noteSession(session)
	}

	var customerID any
	if cust, ok := g.randomCustomer(); ok && rand.Float64() < 0.7 {
		customerID = cust.ID
	}

	status := weightedPick(cartStatuses, []float64{0.3, 0.4, 0.25, 0.05})
	createdAt := randTimeBetween(now.Add(-48*time.Hour), now)
	updatedAt := randTimeBetween(createdAt, now)

	var abandonedAt, convertedAt, convertedOrderID any
	var recoveryEmails uint8
	switch status {
	case "abandoned":
		abandonedAt = updatedAt
		recoveryEmails = uint8(rand.IntN(3))
	case "converted":
		convertedAt = updatedAt
		convertedOrderID = uuid.NewString()
	}

	items := sampleProducts(1 + rand.IntN(6))
	ids := make([]string, len(items))
	qtys := make([]uint32, len(items))
	prices := make([]float64, len(items))
	itemsCount := uint32(0)
	subtotal := 0.0
	for i, p := range items {
		q := 1 + rand.IntN(3)
		ids[i], qtys[i], prices[i] = p.ID, uint32(q), p.Price
		itemsCount += uint32(q)
		subtotal += p.Price * float64(q)
	}
	subtotal = round2(subtotal)

	tax := round2(subtotal * 0.08)
	shipping := 0.0
	if subtotal < 50 {
		shipping = 9.99
	}
	discount := 0.0
	if rand.Float64() > 0.8 {
		discount = round2(subtotal * 0.1)
	}
	total := round2(subtotal + tax + shipping - discount)

	return []any{
		uuid.NewString(), session, customerID, status,
		createdAt, updatedAt, abandonedAt, convertedAt,
		convertedOrderID,
		ids, qtys, prices,
		itemsCount, uint32(len(items)),
		subtotal, tax, shipping, discount, total,
		weightedPick(currencies, []float64{0.6, 0.15, 0.1, 0.08, 0.07}),
		pick(sourceChannels),
		weightedPick(deviceTypes, []float64{0.45, 0.45, 0.1}),
		pick(browsers),
		recoveryEmails,
		now, now,
	}
}

func pick[T any](values []T) T {
	return values[rand.IntN(len(values))]
}

// weightedPick draws one value with the given relative weights. Weights do
// not need to sum to one; a uniform draw is scaled to the total.
func weightedPick(values []string, weights []float64) string {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	roll := rand.Float64() * total
	for i, w := range weights {
		roll -= w
		if roll < 0 {
			return values[i]
		}
	}
	return values[len(values)-1]
}

// sampleProducts returns n distinct products from the catalog.
func sampleProducts(n int) []product {
	if n > len(products) {
		n = len(products)
	}
	out := make([]product, 0, n)
	for _, idx := range rand.Perm(len(products))[:n] {
		out = append(out, products[idx])
	}
	return out
}

func randBetween(lo, hi int) int {
	return lo + rand.IntN(hi-lo+1)
}

func randTimeBetween(a, b time.Time) time.Time {
	if !b.After(a) {
		return a
	}
	return a.Add(rand.N(b.Sub(a)))
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func chance(p float64) uint8 {
	if rand.Float64() < p {
		return 1
	}
	return 0
}
