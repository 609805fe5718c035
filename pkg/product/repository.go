package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, product Product) error
	Get(ctx context.Context, id string) (Product, error)
	List(ctx context.Context, vendorUid string, category string) ([]Product, error)
	Update(ctx context.Context, product Product) error
	Delete(ctx context.Context, id string) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const productColumns = `id, vendor_id, name, category, price, stock, image_url, available`

func (r *RepositoryImpl) Store(ctx context.Context, product Product) error {
	query := `INSERT INTO product (` + productColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		product.ID,
		product.VendorID,
		product.Name,
		product.Category,
		product.Price,
		product.Stock,
		product.ImageUrl,
		product.Available,
	)
	if err != nil {
		err := fmt.Errorf("could not store product: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id string) (Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM product WHERE id = $1`, id)
	product, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return product, err
}

// List returns products, optionally filtered by vendor and by category.
// Empty filter values match everything.
func (r *RepositoryImpl) List(ctx context.Context, vendorUid string, category string) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM product
              WHERE ($1 = '' OR vendor_id = $1) AND ($2 = '' OR category = $2) ORDER BY name`
	rows, err := r.db.Query(ctx, query, vendorUid, category)
	if err != nil {
		err := fmt.Errorf("could not query products: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0, 16)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			log.Errorf("could not scan product row: %v", err)
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *RepositoryImpl) Update(ctx context.Context, product Product) error {
	query := `UPDATE product SET name = $1, category = $2, price = $3, stock = $4, image_url = $5, available = $6
              WHERE id = $7`
	tag, err := r.db.Exec(ctx, query,
		product.Name,
		product.Category,
		product.Price,
		product.Stock,
		product.ImageUrl,
		product.Available,
		product.ID,
	)
	if err != nil {
		log.Errorf("could not update product %s: %v", product.ID, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM product WHERE id = $1`, id)
	if err != nil {
		log.Errorf("could not delete product %s: %v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var product Product
	err := row.Scan(&product.ID, &product.VendorID, &product.Name, &product.Category,
		&product.Price, &product.Stock, &product.ImageUrl, &product.Available)
	if err != nil {
		return Product{}, err
	}
	return product, nil
}
