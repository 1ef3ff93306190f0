package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"opname/models"
)

// ProductInput describes a manually added product.
type ProductInput struct {
	Code           string `json:"kode_produk"`
	Name           string `json:"nama_produk"`
	InitialBalance int64  `json:"saldo_awal"`
}

// ImportResult summarizes a bulk product import. Row-level errors are kept
// for diagnostics only.
type ImportResult struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
}

// ListProducts returns one catalog page, optionally filtered by a search
// term over name, code and category.
func (c *Client) ListProducts(ctx context.Context, page, perPage int, search string) ([]models.Product, *models.Pagination, error) {
	query := map[string]string{
		"page":     strconv.Itoa(page),
		"per_page": strconv.Itoa(perPage),
		"search":   search,
	}
	products := make([]models.Product, 0)
	pagination, err := c.getJSON(ctx, "/api/products", query, &products)
	if err != nil {
		return nil, nil, err
	}
	return products, pagination, nil
}

// CreateProduct adds one product to the catalog.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) error {
	_, err := c.sendJSON(ctx, http.MethodPost, "/api/products", input, nil)
	return err
}

// SearchProducts performs a substring search with a bounded result count.
func (c *Client) SearchProducts(ctx context.Context, q string, limit int) ([]models.Product, error) {
	query := map[string]string{
		"q":     q,
		"limit": strconv.Itoa(limit),
	}
	products := make([]models.Product, 0)
	if _, err := c.getJSON(ctx, "/api/products/search", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ImportProducts relays an uploaded spreadsheet to the backend bulk
// importer. The import endpoint reports its counts at the top level rather
// than inside the usual data wrapper.
func (c *Client) ImportProducts(ctx context.Context, filename string, file io.Reader) (*ImportResult, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, file).
		Post("/api/import/products")
	if err != nil {
		return nil, fmt.Errorf("call backend: %w", err)
	}

	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		ImportResult
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		if resp.IsError() {
			return nil, fmt.Errorf("backend returned status %d", resp.StatusCode())
		}
		return nil, fmt.Errorf("decode backend response: %w", err)
	}
	if !result.Success {
		message := strings.TrimSpace(result.Message)
		if message == "" {
			message = http.StatusText(resp.StatusCode())
		}
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: message}
	}
	return &result.ImportResult, nil
}

// ExportProducts streams the catalog export.
func (c *Client) ExportProducts(ctx context.Context) (*Download, error) {
	return c.download(ctx, "/api/export/products")
}

// ProductTemplate streams the import template file.
func (c *Client) ProductTemplate(ctx context.Context) (*Download, error) {
	return c.download(ctx, "/api/template/products")
}
