package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var productColumns = []string{"id", "name", "description", "price", "image_url", "category", "created_at"}

func TestSQLRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewSQLRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(productColumns).
		AddRow("b", "Herrajes", "desc", nil, "/bucket/b.webp", "Accesorios", now).
		AddRow("a", "Cemento", nil, "Consulte", nil, nil, now.Add(-time.Minute))
	mock.ExpectQuery("SELECT id, name, description, price, image_url, category, created_at FROM products ORDER BY created_at DESC").
		WillReturnRows(rows)

	all, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 products, got %d", len(all))
	}
	if all[0].ImageURL == nil || *all[0].ImageURL != "/bucket/b.webp" {
		t.Fatalf("unexpected image url %v", all[0].ImageURL)
	}
	if all[1].Description != nil || all[1].Price == nil {
		t.Fatalf("nullable columns not mapped: %+v", all[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSQLRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewSQLRepository(db)

	mock.ExpectQuery("FROM products WHERE id = ").WithArgs("zzz").WillReturnRows(sqlmock.NewRows(productColumns))

	if _, err := repo.GetByID(context.Background(), "zzz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSQLRepository_CreateUpdateDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewSQLRepository(db)
	ctx := context.Background()

	img := "/bucket/x.webp"
	p := Product{ID: "x", Name: "Pisos", ImageURL: &img, CreatedAt: time.Now().UTC()}

	mock.ExpectExec("INSERT INTO products").
		WithArgs("x", "Pisos", nil, nil, img, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE products").
		WithArgs("Pisos", nil, nil, img, nil, "x").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE products").
		WithArgs("Pisos", nil, nil, img, nil, "x").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM products").WithArgs("x").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := repo.Update(ctx, p); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound when no row matches, got %v", err)
	}
	if err := repo.Delete(ctx, "x"); err != nil {
		t.Fatalf("delete of missing row must not fail: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSQLRepository_ListError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM products").WillReturnError(errors.New("database is locked"))

	if _, err := NewSQLRepository(db).List(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
