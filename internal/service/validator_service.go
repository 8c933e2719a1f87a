package service

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Validator consulta los microservicios de usuarios y productos.
type Validator interface {
	ValidateUser(ctx context.Context, idUsuario int) error
	ValidateProductos(ctx context.Context, ids []int) error
}

// ValidatorService verifica existencia de usuarios y productos contra los
// microservicios externos (MS1 y MS2).
type ValidatorService struct {
	usersURL    string
	productsURL string
	client      *http.Client
}

func NewValidatorService(usersURL, productsURL string) *ValidatorService {
	return &ValidatorService{
		usersURL:    usersURL,
		productsURL: productsURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// ValidateUser hace GET /usuarios/:id al microservicio de usuarios.
// 200 → existe, 404 → NotFound, error de transporte → Unavailable, otro → Internal.
func (v *ValidatorService) ValidateUser(ctx context.Context, idUsuario int) error {
	status, err := v.lookup(ctx, fmt.Sprintf("%s/usuarios/%d", v.usersURL, idUsuario))
	if err != nil {
		return unavailablef("user service unreachable: %v", err)
	}

	switch status {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return notFoundf("user %d not found", idUsuario)
	default:
		return internalf("user service returned status %d", status)
	}
}

// ValidateProductos consulta cada producto distinto una sola vez y junta todos
// los ids que no existen en un único error, en lugar de cortar en el primero.
func (v *ValidatorService) ValidateProductos(ctx context.Context, ids []int) error {
	seen := make(map[int]bool, len(ids))
	var missing []int

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		status, err := v.lookup(ctx, fmt.Sprintf("%s/productos/%d", v.productsURL, id))
		if err != nil {
			return unavailablef("product service unreachable: %v", err)
		}

		switch status {
		case http.StatusOK:
			// ok
		case http.StatusNotFound:
			missing = append(missing, id)
		default:
			return internalf("product service returned status %d", status)
		}
	}

	if len(missing) > 0 {
		sort.Ints(missing)
		parts := make([]string, len(missing))
		for i, id := range missing {
			parts[i] = fmt.Sprintf("%d", id)
		}
		return notFoundf("products not found: %s", strings.Join(parts, ", "))
	}
	return nil
}

func (v *ValidatorService) lookup(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
