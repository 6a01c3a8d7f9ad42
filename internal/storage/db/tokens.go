package db

import (
	"database/sql"
	"fmt"
	"time"
)

// StoredToken represents a provider API token stored in the database.
type StoredToken struct {
	ProviderID string
	APIKey     string
	UpdatedAt  time.Time
}

// SaveToken saves or updates an API token for a provider.
func (d *DB) SaveToken(providerID, apiKey string) error {
	_, err := d.Exec(`
        INSERT INTO auth_tokens (provider_id, token_data, updated_at)
        VALUES (?, ?, CURRENT_TIMESTAMP)
        ON CONFLICT(provider_id) DO UPDATE SET
            token_data = excluded.token_data,
            updated_at = CURRENT_TIMESTAMP
    `, providerID, apiKey)
	if err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

// GetToken retrieves an API token for a provider. Returns nil when no token
// is stored.
func (d *DB) GetToken(providerID string) (*StoredToken, error) {
	var token StoredToken
	err := d.QueryRow(`
        SELECT provider_id, token_data, updated_at
        FROM auth_tokens
        WHERE provider_id = ?
    `, providerID).Scan(&token.ProviderID, &token.APIKey, &token.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting token: %w", err)
	}
	return &token, nil
}

// DeleteToken removes an API token for a provider.
func (d *DB) DeleteToken(providerID string) error {
	_, err := d.Exec("DELETE FROM auth_tokens WHERE provider_id = ?", providerID)
	if err != nil {
		return fmt.Errorf("deleting token: %w", err)
	}
	return nil
}

// HasToken checks if a token exists for a provider.
func (d *DB) HasToken(providerID string) (bool, error) {
	var count int
	err := d.QueryRow("SELECT COUNT(*) FROM auth_tokens WHERE provider_id = ?", providerID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking token: %w", err)
	}
	return count > 0, nil
}
