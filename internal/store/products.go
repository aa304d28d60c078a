package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/existflow/ironstore/internal/model"
)

// CreateProduct inserts a new product
func (s *Store) CreateProduct(ctx context.Context, p *model.Product) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, title, price, in_stock, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Title, p.Price, p.InStock, nullable(p.Description), encodeTime(p.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetProductByID fetches a product by identifier
func (s *Store) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, price, in_stock, description, created_at
		FROM products WHERE id = $1`,
		id,
	)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListProducts returns all products, newest first
func (s *Store) ListProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, price, in_stock, description, created_at
		FROM products ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// CountProducts returns the total number of products
func (s *Store) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// UpdateProduct applies a partial update as a single conditional statement.
// ErrNotFound is returned when no row matched, so a concurrent delete is
// reported correctly instead of racing a separate existence check.
func (s *Store) UpdateProduct(ctx context.Context, id string, patch *model.ProductPatch) error {
	sets := []string{}
	args := []interface{}{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.InStock != nil {
		add("in_stock", *patch.InStock)
	}
	if patch.Description != nil {
		add("description", nullable(*patch.Description))
	}

	if len(sets) == 0 {
		// Nothing to change; still report whether the row exists.
		_, err := s.GetProductByID(ctx, id)
		return err
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product. ErrNotFound is returned when the row
// was already gone.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row rowScanner) (*model.Product, error) {
	var p model.Product
	var description sql.NullString
	var createdAt string

	err := row.Scan(&p.ID, &p.Title, &p.Price, &p.InStock, &description, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	p.Description = description.String
	p.CreatedAt = decodeTime(createdAt)
	return &p, nil
}
