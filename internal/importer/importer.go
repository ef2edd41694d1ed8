package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV exports and upserts products.
//
// Columns: id, name, description, category, subCategory, price, sizes,
// bestseller, image. sizes is a ";" list of labels, each optionally
// carrying its own price ("S;M;XL=54.99"). A row with only image set
// adds another image to the product above it.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

type csvRow struct {
	line     int
	product  domain.Product
	priceRaw string
	sizesRaw string
}

// Run parses CSV rows and upserts one product per non-continuation row.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("missing required column \"name\"")
	}

	var (
		current  *csvRow
		imported int
		line     = 1
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		row := parseRow(record, index, line)
		if row == nil {
			continue
		}

		if row.product.Name != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		if current != nil {
			current.product.Images = append(current.product.Images, row.product.Images...)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	p := row.product
	price, err := parsePrice(row.priceRaw)
	if err != nil {
		return fmt.Errorf("line %d (%s): price: %w", row.line, p.Name, err)
	}
	p.PriceCents = price
	variants, err := parseSizes(row.sizesRaw)
	if err != nil {
		return fmt.Errorf("line %d (%s): sizes: %w", row.line, p.Name, err)
	}
	p.Variants = variants

	if _, err := i.productRepo.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert product %q: %w", p.Name, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int, line int) *csvRow {
	name := pick(record, index, "name")
	image := pick(record, index, "image")
	if name == "" && image == "" {
		return nil
	}

	bestseller, _ := strconv.ParseBool(pick(record, index, "bestseller"))
	row := &csvRow{
		line: line,
		product: domain.Product{
			ID:          pick(record, index, "id"),
			Name:        name,
			Description: pick(record, index, "description"),
			Category:    pick(record, index, "category"),
			SubCategory: pick(record, index, "subCategory"),
			Bestseller:  bestseller,
		},
		priceRaw: pick(record, index, "price"),
		sizesRaw: pick(record, index, "sizes"),
	}
	if image != "" {
		row.product.Images = []string{image}
	}
	return row
}

func parsePrice(raw string) (int64, error) {
	if raw == "" {
		return 0, errors.New("required")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("negative price %s", raw)
	}
	return domain.ToCents(d), nil
}

func parseSizes(raw string) ([]domain.Variant, error) {
	var variants []domain.Variant
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		label, price, hasPrice := strings.Cut(part, "=")
		v := domain.Variant{Label: strings.TrimSpace(label)}
		if hasPrice {
			cents, err := parsePrice(strings.TrimSpace(price))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", v.Label, err)
			}
			v.PriceCents = &cents
		}
		variants = append(variants, v)
	}
	return variants, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
