// Example: Using dataquery as an Embedded Library
//
// This example validates a few queries in-process, without starting the HTTP
// server, the way an editor backend or a CI check would.
//
// Run this example:
//
//	go run ./example/embedded
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/tazeverywhere/dataquery/pkg/connection"
	"github.com/tazeverywhere/dataquery/pkg/dsl"
	"github.com/tazeverywhere/dataquery/pkg/i18n"
	"github.com/tazeverywhere/dataquery/pkg/query"
	"github.com/tazeverywhere/dataquery/pkg/validate"
)

func main() {
	fmt.Println("=== dataquery Embedded Example ===")

	db, err := sql.Open("duckdb", "")
	if err != nil {
		log.Fatalf("Failed to open DuckDB: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	connMgr := connection.NewManager(db)
	if _, err := connMgr.Exec(ctx, `
		CREATE TABLE employees (
			id INTEGER,
			name VARCHAR,
			department VARCHAR,
			salary DECIMAL(10,2)
		)
	`); err != nil {
		log.Fatalf("Failed to create table: %v", err)
	}

	bundle, err := i18n.NewBundle("en")
	if err != nil {
		log.Fatalf("Failed to create catalog: %v", err)
	}

	validator := validate.New(dsl.NewCompiler(), query.NewExecutor(connMgr), bundle.Default())

	queries := []string{
		"SELECT name, IFF(salary >= 90000, 'Senior', 'Junior') AS level FROM employees",
		"SELECT department, LISTAGG(name, ', ') FROM employees GROUP BY department",
		"SELECT NVL(department, 'none') FROM employees",
		"SELECT * FROM employes",
		"DELETE FROM employees",
		"SELEC name FROM employees",
	}

	for i, q := range queries {
		fmt.Printf("\n%d. %s\n", i+1, q)
		report := validator.Validate(ctx, q)
		for _, d := range report.Diagnostics {
			if d.Title != "" {
				fmt.Printf("   [%-7s] %s: %s\n", d.Severity, d.Title, d.Message)
			} else {
				fmt.Printf("   [%-7s] %s\n", d.Severity, d.Message)
			}
		}
		if report.ExecutedSQL != "" {
			fmt.Printf("   executed: %s\n", report.ExecutedSQL)
		}
	}

	fmt.Println("\n=== Example completed ===")
}
