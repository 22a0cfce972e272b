package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rmg-labs/incident-service/internal/models"
)

// ErrNoMatch - провайдер ответил корректно, но не нашел индекс
var ErrNoMatch = errors.New("pincode not matched by provider")

// PostalPincodeClient - клиент внешнего API почтовых индексов (формат api.postalpincode.in)
type PostalPincodeClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPostalPincodeClient создает клиента с ограниченным таймаутом на исходящий запрос
func NewPostalPincodeClient(baseURL string, timeout time.Duration) *PostalPincodeClient {
	return &PostalPincodeClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// postalPincodeEntry - элемент ответа внешнего API
type postalPincodeEntry struct {
	Message    string `json:"Message"`
	Status     string `json:"Status"`
	PostOffice []struct {
		Name     string `json:"Name"`
		District string `json:"District"`
		State    string `json:"State"`
		Country  string `json:"Country"`
	} `json:"PostOffice"`
}

// Lookup запрашивает индекс у внешнего провайдера и валидирует форму ответа
func (c *PostalPincodeClient) Lookup(ctx context.Context, pincode string) (*models.PincodeData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+url.PathEscape(pincode), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create pincode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call pincode provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pincode provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read pincode provider response: %w", err)
	}

	var entries []postalPincodeEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pincode provider response: %w", err)
	}

	// Форма ответа: непустой список, Status == "Success", хотя бы одно отделение
	if len(entries) == 0 || entries[0].Status != "Success" || len(entries[0].PostOffice) == 0 {
		return nil, ErrNoMatch
	}

	office := entries[0].PostOffice[0]
	data := &models.PincodeData{
		Pincode: pincode,
		City:    office.District,
		State:   office.State,
		Country: office.Country,
	}
	if data.Country == "" {
		data.Country = "India"
	}
	return data, nil
}
