package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const stockImage = "/images/photo-1541888946425-d81bb19240f5.jfif"

type seed struct {
	table   string
	columns []string
	rows    [][]any
}

func seeds() []seed {
	return []seed{
		{
			table:   "products",
			columns: []string{"name", "description", "price", "image_url", "category"},
			rows: [][]any{
				{"Materiales de Construcción", "Cemento, bloques, varillas y morteros de primeras marcas. Entregas bajo pedido.", "Consulte volumen", stockImage, "Materiales"},
				{"Herrajes y Accesorios", "Tornillería técnica, bisagras reforzadas y cerraduras de alta seguridad.", "Desde S/ 15.00", stockImage, "Accesorios"},
				{"Acabados y Revestimientos", "Pisos de alto tránsito, cerámicos y selladores industriales.", "Por m2", stockImage, "Acabados"},
			},
		},
		{
			table:   "services",
			columns: []string{"title", "description", "tag", "icon_name"},
			rows: [][]any{
				{"Obras y Proyectos", "Planificación y ejecución completa de obras residenciales, comerciales e industriales con los más altos estándares.", "Ingeniería", "Construction"},
				{"Instalaciones Técnicas", "Sistemas eléctricos, hidráulicos e integrados de alta eficiencia diseñados para durar.", "Especializado", "Zap"},
				{"Acabados Premium", "Detalles arquitectónicos, revestimientos y carpintería fina para entregar espacios con distinción.", "Arquitectura", "Hammer"},
			},
		},
	}
}

// apply inserts the seed rows when the table is empty and returns how many
// rows were written. The first row gets the newest timestamp so listings show
// seeds in declaration order.
func (s seed) apply(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+pq.QuoteIdentifier(s.table)).Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	query := s.insertQuery()
	now := time.Now().UTC()
	for i, row := range s.rows {
		args := make([]any, 0, len(row)+2)
		args = append(args, uuid.NewString())
		args = append(args, row...)
		args = append(args, now.Add(-time.Duration(i)*time.Second))
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return i, err
		}
	}
	return len(s.rows), nil
}

func (s seed) insertQuery() string {
	cols := append([]string{"id"}, s.columns...)
	cols = append(cols, "created_at")
	marks := make([]string, len(cols))
	for i := range cols {
		marks[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pq.QuoteIdentifier(s.table), strings.Join(cols, ", "), strings.Join(marks, ", "))
}
