// Package sample generates the deterministic demo datasets that back table
// and chart widgets when a widget has no stored data and no external source.
package sample

import (
	"fmt"
	"math/rand"
	"time"
)

var (
	firstNames = []string{
		"John", "Jane", "Bob", "Alice", "Charlie", "Diana", "Eve", "Frank",
		"Grace", "Henry", "Ivy", "Jack", "Kate", "Liam", "Mia", "Noah",
		"Olivia", "Paul", "Quinn", "Ruby",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
		"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
		"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	}
	roles       = []string{"Admin", "User", "Editor", "Viewer", "Manager", "Analyst", "Developer", "Designer"}
	statuses    = []string{"Active", "Inactive", "Pending", "Suspended"}
	departments = []string{"Engineering", "Marketing", "Sales", "HR", "Finance", "Operations", "Support", "Legal"}
	companies   = []string{"TechCorp", "DataSys", "CloudNet", "DevTools", "AnalyticsPro", "SecureBase", "FastAPI", "WebFlow"}
	countries   = []string{"USA", "Canada", "UK", "Germany", "France", "Japan", "Australia", "Brazil"}
)

// Users returns count synthetic people rows shaped like the default
// data-table columns. The same seed always yields the same rows, so a table
// widget shows stable data across requests.
func Users(seed int64, count int) []map[string]interface{} {
	r := rand.New(rand.NewSource(seed))
	now := time.Now()

	rows := make([]map[string]interface{}, 0, count)
	for i := 0; i < count; i++ {
		first := firstNames[r.Intn(len(firstNames))]
		last := lastNames[r.Intn(len(lastNames))]
		company := companies[r.Intn(len(companies))]

		created := now.Add(-time.Duration(r.Intn(365*24)) * time.Hour)
		lastLogin := now.Add(-time.Duration(r.Intn(30*24)) * time.Hour)

		rows = append(rows, map[string]interface{}{
			"id":         i + 1,
			"name":       first + " " + last,
			"email":      fmt.Sprintf("%s.%s@%s.com", lower(first), lower(last), lower(company)),
			"role":       roles[r.Intn(len(roles))],
			"status":     statuses[r.Intn(len(statuses))],
			"created":    created.Format("2006-01-02"),
			"lastLogin":  lastLogin.Format("2006-01-02"),
			"department": departments[r.Intn(len(departments))],
			"company":    company,
			"country":    countries[r.Intn(len(countries))],
			"salary":     r.Intn(150000) + 40000,
			"experience": r.Intn(20) + 1,
			"rating":     float64(r.Intn(40)+10) / 10.0,
		})
	}
	return rows
}

// ChartSeries is the canned five-point series a chart widget falls back to
// when it has no stored data.
func ChartSeries() []map[string]interface{} {
	return []map[string]interface{}{
		{"name": "Jan", "value": 400},
		{"name": "Feb", "value": 300},
		{"name": "Mar", "value": 600},
		{"name": "Apr", "value": 800},
		{"name": "May", "value": 500},
	}
}

// MonthlySales returns a year of synthetic sales figures.
func MonthlySales(seed int64) []map[string]interface{} {
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	r := rand.New(rand.NewSource(seed))

	rows := make([]map[string]interface{}, 0, len(months))
	for _, m := range months {
		rows = append(rows, map[string]interface{}{
			"month":     m,
			"sales":     r.Intn(50000) + 20000,
			"profit":    r.Intn(15000) + 5000,
			"customers": r.Intn(1000) + 500,
		})
	}
	return rows
}

// Products returns a small synthetic product catalogue.
func Products(seed int64) []map[string]interface{} {
	products := []string{
		"Laptop Pro", "Smartphone X", "Tablet Air", "Headphones Max",
		"Watch Series", "Camera Pro", "Speaker Mini", "Monitor Ultra",
		"Keyboard Mech", "Mouse Wireless",
	}
	categories := []string{"Electronics", "Accessories", "Computers", "Mobile", "Audio"}
	r := rand.New(rand.NewSource(seed))

	rows := make([]map[string]interface{}, 0, len(products))
	for _, name := range products {
		rows = append(rows, map[string]interface{}{
			"name":     name,
			"category": categories[r.Intn(len(categories))],
			"sales":    r.Intn(1000) + 100,
			"revenue":  r.Intn(100000) + 10000,
			"stock":    r.Intn(500) + 50,
		})
	}
	return rows
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
