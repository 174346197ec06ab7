package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// queryPattern is one named statement shape. build produces a fresh statement
// with randomized parameters so repeated runs do not hit the query cache.
type queryPattern struct {
	name  string
	build func() string
}

// randomWindow returns a start bound between one hour and maxDays back,
// formatted for interpolation into a DateTime comparison.
func randomWindow(maxDays int) string {
	hoursBack := 1 + rand.IntN(maxDays*24)
	return domain.FormatTime(time.Now().Add(-time.Duration(hoursBack) * time.Hour))
}

func randomLimit() int {
	return pick([]int{10, 25, 50, 100, 250, 500, 1000})
}

var selectPatterns = []queryPattern{
	{"orders_by_status", func() string {
		return fmt.Sprintf(`SELECT order_status, count() AS orders, sum(total_amount) AS revenue
FROM orders
WHERE order_date >= '%s'
GROUP BY order_status
ORDER BY orders DESC`, randomWindow(7))
	}},
	{"top_customers", func() string {
		return fmt.Sprintf(`SELECT customer_id, customer_email, count() AS orders, sum(total_amount) AS spent
FROM orders
WHERE order_date >= '%s'
GROUP BY customer_id, customer_email
ORDER BY spent DESC
LIMIT %d`, randomWindow(30), randomLimit())
	}},
	{"hourly_sales", func() string {
		return fmt.Sprintf(`SELECT toStartOfHour(order_date) AS hour, count() AS orders, sum(total_amount) AS revenue, uniqExact(customer_id) AS customers
FROM orders
WHERE order_date >= '%s'
GROUP BY hour
ORDER BY hour`, randomWindow(3))
	}},
	{"cart_abandonment_rate", func() string {
		return fmt.Sprintf(`SELECT device_type,
    countIf(cart_status = 'abandoned') AS abandoned,
    countIf(cart_status = 'converted') AS converted,
    round(abandoned / greatest(abandoned + converted, 1) * 100, 2) AS abandonment_pct
FROM shopping_cart
WHERE cart_created_at >= '%s'
GROUP BY device_type`, randomWindow(7))
	}},
	{"page_views_by_type", func() string {
		return fmt.Sprintf(`SELECT page_type, count() AS views, avg(time_on_page_seconds) AS avg_seconds, avg(scroll_depth_percent) AS avg_scroll
FROM page_views
WHERE view_timestamp >= '%s'
GROUP BY page_type
ORDER BY views DESC`, randomWindow(2))
	}},
	{"revenue_by_channel", func() string {
		return fmt.Sprintf(`SELECT source_channel, count() AS orders, sum(total_amount) AS revenue, sum(discount_amount) AS discounts
FROM orders
WHERE order_date >= '%s'
GROUP BY source_channel
ORDER BY revenue DESC`, randomWindow(14))
	}},
	{"customer_segments", func() string {
		return `SELECT customer_segment, count() AS customers, avg(total_spent) AS avg_spent, avg(total_orders) AS avg_orders
FROM customers
GROUP BY customer_segment
ORDER BY customers DESC`
	}},
	{"orders_by_country", func() string {
		return fmt.Sprintf(`SELECT shipping_address_country AS country, count() AS orders, sum(total_amount) AS revenue, avg(shipping_cost) AS avg_shipping
FROM orders
WHERE order_date >= '%s' AND order_status != 'cancelled'
GROUP BY country
ORDER BY revenue DESC
LIMIT %d`, randomWindow(30), randomLimit())
	}},
	{"product_category_performance", func() string {
		return fmt.Sprintf(`SELECT arrayJoin(item_categories) AS category, count() AS order_lines, sum(total_amount) AS attributed_revenue
FROM orders
WHERE order_date >= '%s'
GROUP BY category
ORDER BY order_lines DESC`, randomWindow(14))
	}},
	{"payment_method_analysis", func() string {
		return fmt.Sprintf(`SELECT payment_method, payment_status, count() AS orders, sum(total_amount) AS amount
FROM orders
WHERE order_date >= '%s'
GROUP BY payment_method, payment_status
ORDER BY orders DESC`, randomWindow(14))
	}},
	{"session_analysis", func() string {
		return fmt.Sprintf(`SELECT session_id,
    count() AS views,
    sum(time_on_page_seconds) AS session_seconds,
    max(add_to_cart_clicked) AS added_to_cart
FROM page_views
WHERE view_timestamp >= '%s'
GROUP BY session_id
HAVING views > 1
ORDER BY session_seconds DESC
LIMIT %d`, randomWindow(1), randomLimit())
	}},
	{"browser_performance", func() string {
		return fmt.Sprintf(`SELECT browser, device_type, count() AS views,
    avg(page_load_time_ms) AS avg_load_ms,
    quantile(0.95)(page_load_time_ms) AS p95_load_ms
FROM page_views
WHERE view_timestamp >= '%s'
GROUP BY browser, device_type
ORDER BY views DESC`, randomWindow(3))
	}},
	{"abandoned_cart_value", func() string {
		return fmt.Sprintf(`SELECT source_channel, count() AS carts, sum(estimated_total) AS stranded_value, avg(items_count) AS avg_items
FROM shopping_cart
WHERE cart_status = 'abandoned' AND cart_created_at >= '%s'
GROUP BY source_channel
ORDER BY stranded_value DESC`, randomWindow(7))
	}},
	{"customer_loyalty_distribution", func() string {
		return `SELECT loyalty_tier, count() AS customers, avg(loyalty_points) AS avg_points, sum(total_spent) AS lifetime_revenue
FROM customers
GROUP BY loyalty_tier
ORDER BY lifetime_revenue DESC`
	}},
	{"recent_orders", func() string {
		return fmt.Sprintf(`SELECT order_id, order_number, customer_email, order_status, total_amount, payment_method, order_date
FROM orders
ORDER BY order_date DESC
LIMIT %d`, randomLimit())
	}},
	{"conversion_funnel", func() string {
		return fmt.Sprintf(`SELECT countIf(page_type = 'product') AS product_views,
    countIf(add_to_cart_clicked = 1) AS add_to_cart,
    countIf(page_type = 'checkout') AS checkouts,
    countIf(buy_now_clicked = 1) AS buy_now
FROM page_views
WHERE view_timestamp >= '%s'`, randomWindow(7))
	}},
	{"geographic_distribution", func() string {
		return fmt.Sprintf(`SELECT geo_country, count() AS views, uniqExact(session_id) AS sessions, avg(time_on_page_seconds) AS avg_seconds
FROM page_views
WHERE view_timestamp >= '%s'
GROUP BY geo_country
ORDER BY views DESC
LIMIT %d`, randomWindow(7), randomLimit())
	}},
	{"search_analysis", func() string {
		return fmt.Sprintf(`SELECT search_query, count() AS searches, avg(search_results_count) AS avg_results, countIf(search_results_count = 0) AS zero_results
FROM page_views
WHERE page_type = 'search' AND search_query IS NOT NULL AND view_timestamp >= '%s'
GROUP BY search_query
ORDER BY searches DESC
LIMIT %d`, randomWindow(7), randomLimit())
	}},
	{"shipping_analysis", func() string {
		return fmt.Sprintf(`SELECT shipping_method, shipping_carrier, count() AS orders, avg(shipping_cost) AS avg_cost
FROM orders
WHERE order_date >= '%s' AND order_status IN ('shipped', 'delivered')
GROUP BY shipping_method, shipping_carrier
ORDER BY orders DESC`, randomWindow(30))
	}},
	{"daily_metrics", func() string {
		return fmt.Sprintf(`SELECT toDate(order_date) AS day,
    count() AS orders,
    uniqExact(customer_id) AS customers,
    sum(total_amount) AS revenue,
    sum(discount_amount) AS discounts
FROM orders
WHERE order_date >= '%s'
GROUP BY day
ORDER BY day DESC`, randomWindow(30))
	}},
}

var customerStatusTransitions = [][2]string{
	{"pending_verification", "active"},
	{"active", "inactive"},
	{"inactive", "active"},
}

var orderStatusTransitions = [][2]string{
	{"pending", "confirmed"},
	{"confirmed", "processing"},
	{"processing", "shipped"},
	{"shipped", "delivered"},
}

// updatePatterns issue ALTER UPDATE sweeps. Each carries a rand() sample so
// only a slice of the matching rows mutates per run, which keeps a steady
// trickle of mutation entries in the system tables without rewriting whole
// partitions.
var updatePatterns = []queryPattern{
	{"update_customer_status", func() string {
		t := pick(customerStatusTransitions)
		return fmt.Sprintf(`ALTER TABLE customers UPDATE account_status = '%s', updated_at = now()
WHERE account_status = '%s' AND rand() %% 100 < %d`, t[1], t[0], 5+rand.IntN(16))
	}},
	{"update_customer_loyalty", func() string {
		return fmt.Sprintf(`ALTER TABLE customers UPDATE loyalty_points = loyalty_points + %d, loyalty_tier = '%s', updated_at = now()
WHERE customer_segment = '%s' AND rand() %% 100 < %d`, 50+rand.IntN(451), pick(loyaltyTiers), pick(customerSegments), 5+rand.IntN(11))
	}},
	{"update_order_status", func() string {
		t := pick(orderStatusTransitions)
		return fmt.Sprintf(`ALTER TABLE orders UPDATE order_status = '%s', updated_at = now()
WHERE order_status = '%s' AND rand() %% 100 < %d`, t[1], t[0], 10+rand.IntN(21))
	}},
	{"update_cart_status", func() string {
		return fmt.Sprintf(`ALTER TABLE shopping_cart UPDATE cart_status = 'abandoned', cart_abandoned_at = now(), updated_at = now()
WHERE cart_status = 'active' AND cart_updated_at < now() - INTERVAL %d HOUR AND rand() %% 100 < %d`, 1+rand.IntN(24), 10+rand.IntN(21))
	}},
}

var deletePatterns = []queryPattern{
	{"delete_old_page_views", func() string {
		return fmt.Sprintf(`ALTER TABLE page_views DELETE
WHERE view_timestamp < now() - INTERVAL %d DAY AND rand() %% 100 < %d`, 30+rand.IntN(61), 5+rand.IntN(11))
	}},
	{"delete_expired_carts", func() string {
		return fmt.Sprintf(`ALTER TABLE shopping_cart DELETE
WHERE cart_status = 'expired' AND cart_updated_at < now() - INTERVAL %d HOUR AND rand() %% 100 < %d`, 24+rand.IntN(49), 10+rand.IntN(21))
	}},
	{"delete_cancelled_orders", func() string {
		return fmt.Sprintf(`ALTER TABLE orders DELETE
WHERE order_status = 'cancelled' AND order_date < now() - INTERVAL %d DAY AND rand() %% 100 < %d`, 30+rand.IntN(31), 5+rand.IntN(11))
	}},
	{"delete_inactive_customers", func() string {
		return fmt.Sprintf(`ALTER TABLE customers DELETE
WHERE account_status = 'inactive' AND last_login_date < now() - INTERVAL %d DAY AND rand() %% 100 < %d`, 180+rand.IntN(186), 2+rand.IntN(4))
	}},
}
