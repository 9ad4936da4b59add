package seed

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/askdb/askdb/config"
)

var relationalDDL = []string{
	`DROP TABLE IF EXISTS project_assignments`,
	`DROP TABLE IF EXISTS projects`,
	`DROP TABLE IF EXISTS employees`,
	`DROP TABLE IF EXISTS departments`,
	`CREATE TABLE departments (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE employees (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		department_id INTEGER REFERENCES departments(id)
	)`,
	`CREATE TABLE projects (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		status TEXT NOT NULL
	)`,
	`CREATE TABLE project_assignments (
		employee_id INTEGER REFERENCES employees(id),
		project_id INTEGER REFERENCES projects(id),
		PRIMARY KEY (employee_id, project_id)
	)`,
}

var relationalRows = []string{
	`INSERT INTO departments (id, name) VALUES
		(1, 'Engineering'), (2, 'Data Science'), (3, 'Customer Success')`,
	`INSERT INTO employees (id, name, role, department_id) VALUES
		(1, 'Priya Sharma', 'Backend Engineer', 1),
		(2, 'Marcus Webb', 'Engineering Manager', 1),
		(3, 'Elena Volkov', 'Data Scientist', 2),
		(4, 'Tomás Rivera', 'ML Engineer', 2),
		(5, 'Aisha Bello', 'Support Lead', 3),
		(6, 'Jack O''Neill', 'Site Reliability Engineer', 1)`,
	`INSERT INTO projects (id, name, status) VALUES
		(1, 'Billing Revamp', 'In Progress'),
		(2, 'Search Relevance', 'In Progress'),
		(3, 'Legacy Migration', 'Completed'),
		(4, 'Mobile Onboarding', 'Planned')`,
	`INSERT INTO project_assignments (employee_id, project_id) VALUES
		(1, 1), (2, 1), (6, 1),
		(3, 2), (4, 2),
		(1, 3), (2, 3),
		(5, 4)`,
}

// Relational rebuilds the company SQLite file from scratch.
func Relational(ctx context.Context, cfg config.RelationalConfig) error {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, stmt := range relationalDDL {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:min(40, len(stmt))], err)
		}
	}
	for _, stmt := range relationalRows {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("insert sample rows: %w", err)
		}
	}
	return nil
}
